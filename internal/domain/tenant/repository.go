package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/shared"
)

// RestaurantRepository persists restaurant tenants
type RestaurantRepository interface {
	shared.Repository[Restaurant]
	// FindBySlug resolves a restaurant by its public routing slug
	FindBySlug(ctx context.Context, slug string) (*Restaurant, error)
	// ExistsBySlug reports whether the slug is already taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// TableRepository persists dining tables, scoped per restaurant
type TableRepository interface {
	shared.RestaurantScopedRepository[DiningTable]
	// FindByQRToken resolves a table from the opaque token embedded in a QR
	// code. The restaurant id must match the token's owner or the lookup
	// fails with ErrNotFound.
	FindByQRToken(ctx context.Context, restaurantID uuid.UUID, token string) (*DiningTable, error)
	// FindByNumber resolves a table by its number within the restaurant
	FindByNumber(ctx context.Context, restaurantID uuid.UUID, tableNumber string) (*DiningTable, error)
}
