package tenant

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/shared/valueobject"
	"github.com/tableside/backend/internal/domain/tenant"
)

// RestaurantService manages restaurant tenants
type RestaurantService struct {
	restaurantRepo tenant.RestaurantRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(restaurantRepo tenant.RestaurantRepository, logger *zap.Logger) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *RestaurantService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates a new restaurant tenant. The slug must be unique across
// the platform, it becomes the public storefront path.
func (s *RestaurantService) Register(ctx context.Context, req RegisterRestaurantRequest) (*RestaurantResponse, error) {
	exists, err := s.restaurantRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	restaurant, err := tenant.NewRestaurant(req.Name, req.Slug, valueobject.Currency(req.Currency), req.TaxPercentage)
	if err != nil {
		return nil, err
	}
	restaurant.Description = req.Description
	restaurant.Address = req.Address
	restaurant.Phone = req.Phone

	if err := s.restaurantRepo.Save(ctx, restaurant); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, restaurant)

	resp := ToRestaurantResponse(restaurant)
	return &resp, nil
}

// Get returns a restaurant by id
func (s *RestaurantService) Get(ctx context.Context, id uuid.UUID) (*RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToRestaurantResponse(restaurant)
	return &resp, nil
}

// UpdateProfile updates display information
func (s *RestaurantService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateRestaurantRequest) (*RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := restaurant.UpdateProfile(req.Name, req.Description, req.Address, req.Phone); err != nil {
		return nil, err
	}

	if err := s.restaurantRepo.Save(ctx, restaurant); err != nil {
		return nil, err
	}

	resp := ToRestaurantResponse(restaurant)
	return &resp, nil
}

// SetTax changes the tax rate applied to new orders
func (s *RestaurantService) SetTax(ctx context.Context, id uuid.UUID, req SetTaxRequest) (*RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := restaurant.SetTaxPercentage(req.TaxPercentage); err != nil {
		return nil, err
	}

	if err := s.restaurantRepo.Save(ctx, restaurant); err != nil {
		return nil, err
	}

	resp := ToRestaurantResponse(restaurant)
	return &resp, nil
}

// Activate reopens the restaurant for ordering
func (s *RestaurantService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, true)
}

// Deactivate soft-deletes the restaurant
func (s *RestaurantService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, false)
}

func (s *RestaurantService) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if active {
		err = restaurant.Activate()
	} else {
		err = restaurant.Deactivate()
	}
	if err != nil {
		return err
	}

	return s.restaurantRepo.Save(ctx, restaurant)
}

func (s *RestaurantService) publishEvents(ctx context.Context, restaurant *tenant.Restaurant) {
	if s.eventPublisher == nil {
		return
	}
	events := restaurant.GetDomainEvents()
	restaurant.ClearDomainEvents()
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish tenant event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}
