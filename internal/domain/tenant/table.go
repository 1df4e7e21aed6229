package tenant

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/shared"
)

// TableStatus is the informational occupancy state of a dining table.
// It is advisory for the floor staff, not a concurrency lock.
type TableStatus string

const (
	TableStatusAvailable     TableStatus = "available"
	TableStatusOccupied      TableStatus = "occupied"
	TableStatusNeedsCleaning TableStatus = "needs_cleaning"
)

// DiningTable is a physical table in a restaurant. Guests reach the menu by
// scanning a QR code that encodes the table's opaque token.
type DiningTable struct {
	shared.RestaurantAggregateRoot
	TableNumber string      `gorm:"type:varchar(20);not null;uniqueIndex:idx_table_restaurant_number,priority:2"`
	Capacity    int         `gorm:"not null;default:2"`
	QRToken     string      `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status      TableStatus `gorm:"type:varchar(20);not null;default:'available'"`
	IsActive    bool        `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DiningTable) TableName() string {
	return "restaurant_tables"
}

// NewDiningTable creates a table with a freshly generated QR token
func NewDiningTable(restaurantID uuid.UUID, tableNumber string, capacity int) (*DiningTable, error) {
	if strings.TrimSpace(tableNumber) == "" {
		return nil, shared.NewDomainError("INVALID_TABLE_NUMBER", "Table number cannot be empty")
	}
	if len(tableNumber) > 20 {
		return nil, shared.NewDomainError("INVALID_TABLE_NUMBER", "Table number cannot exceed 20 characters")
	}
	if capacity < 1 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Table capacity must be at least 1")
	}

	token, err := generateQRToken()
	if err != nil {
		return nil, err
	}

	table := &DiningTable{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		TableNumber:             tableNumber,
		Capacity:                capacity,
		QRToken:                 token,
		Status:                  TableStatusAvailable,
		IsActive:                true,
	}

	table.AddDomainEvent(NewTableCreatedEvent(table))

	return table, nil
}

// RotateToken invalidates the printed QR code by issuing a new token.
// Used when a code leaks or tables are re-numbered.
func (t *DiningTable) RotateToken() error {
	token, err := generateQRToken()
	if err != nil {
		return err
	}

	t.QRToken = token
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTableTokenRotatedEvent(t))

	return nil
}

// SetStatus records the occupancy state reported by staff
func (t *DiningTable) SetStatus(status TableStatus) error {
	switch status {
	case TableStatusAvailable, TableStatusOccupied, TableStatusNeedsCleaning:
	default:
		return shared.NewDomainError("INVALID_TABLE_STATUS", "Unknown table status")
	}

	t.Status = status
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetCapacity updates the seat count
func (t *DiningTable) SetCapacity(capacity int) error {
	if capacity < 1 {
		return shared.NewDomainError("INVALID_CAPACITY", "Table capacity must be at least 1")
	}

	t.Capacity = capacity
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Deactivate soft-deletes the table. Orders referencing it remain valid.
func (t *DiningTable) Deactivate() error {
	if !t.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Table is already inactive")
	}

	t.IsActive = false
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Activate restores a soft-deleted table
func (t *DiningTable) Activate() error {
	if t.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Table is already active")
	}

	t.IsActive = true
	t.Touch()
	t.IncrementVersion()

	return nil
}

func generateQRToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", shared.NewDomainError("TOKEN_GENERATION_FAILED", "Could not generate QR token")
	}
	return hex.EncodeToString(buf), nil
}
