package ordering

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderNumberPrefix leads every generated order number
const OrderNumberPrefix = "ORD"

// FormatOrderNumber renders a number like ORD-20260830-042 from a day and a
// per-restaurant daily sequence. The disambiguator is zero-padded to three
// digits and grows naturally past 999.
func FormatOrderNumber(day time.Time, sequence int64) string {
	return fmt.Sprintf("%s-%s-%03d", OrderNumberPrefix, day.Format("20060102"), sequence)
}

// NumberGenerator issues unique per-restaurant per-day order numbers.
// Implementations must be safe under concurrent submissions: two orders
// placed for the same restaurant on the same day never share a number.
type NumberGenerator interface {
	NextOrderNumber(ctx context.Context, restaurantID uuid.UUID, day time.Time) (string, error)
}
