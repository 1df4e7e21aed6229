package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/tenant"
)

// QRCodeGenerator renders content into a QR code image
type QRCodeGenerator interface {
	GeneratePNG(content string, size int) ([]byte, error)
}

// TableService manages dining tables and their QR codes
type TableService struct {
	tableRepo      tenant.TableRepository
	restaurantRepo tenant.RestaurantRepository
	qrGenerator    QRCodeGenerator
	menuBaseURL    string
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTableService creates a new table service. menuBaseURL is the public
// origin the QR codes point guests at, e.g. https://menu.example.com.
func NewTableService(
	tableRepo tenant.TableRepository,
	restaurantRepo tenant.RestaurantRepository,
	qrGenerator QRCodeGenerator,
	menuBaseURL string,
	logger *zap.Logger,
) *TableService {
	return &TableService{
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		qrGenerator:    qrGenerator,
		menuBaseURL:    strings.TrimRight(menuBaseURL, "/"),
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *TableService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create adds a dining table. Table numbers are unique per restaurant.
func (s *TableService) Create(ctx context.Context, restaurantID uuid.UUID, req CreateTableRequest) (*TableResponse, error) {
	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	existing, err := s.tableRepo.FindByNumber(ctx, restaurantID, req.TableNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	table, err := tenant.NewDiningTable(restaurantID, req.TableNumber, req.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, table)

	resp := ToTableResponse(table)
	return &resp, nil
}

// Get returns a table by id within the restaurant
func (s *TableService) Get(ctx context.Context, restaurantID, tableID uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	resp := ToTableResponse(table)
	return &resp, nil
}

// List returns all tables for a restaurant
func (s *TableService) List(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]TableResponse, error) {
	filter.Normalize()
	if filter.OrderBy == "" || filter.OrderBy == "created_at" {
		filter.OrderBy = "table_number"
		filter.OrderDir = "asc"
	}

	tables, err := s.tableRepo.FindAllForRestaurant(ctx, restaurantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TableResponse, len(tables))
	for i := range tables {
		responses[i] = ToTableResponse(&tables[i])
	}
	return responses, nil
}

// SetStatus records the occupancy state reported by staff
func (s *TableService) SetStatus(ctx context.Context, restaurantID, tableID uuid.UUID, req SetTableStatusRequest) (*TableResponse, error) {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	if err := table.SetStatus(req.Status); err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	resp := ToTableResponse(table)
	return &resp, nil
}

// RotateToken invalidates the printed QR code by issuing a new token
func (s *TableService) RotateToken(ctx context.Context, restaurantID, tableID uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	if err := table.RotateToken(); err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, table)

	resp := ToTableResponse(table)
	return &resp, nil
}

// Deactivate soft-deletes a table
func (s *TableService) Deactivate(ctx context.Context, restaurantID, tableID uuid.UUID) error {
	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return err
	}

	if err := table.Deactivate(); err != nil {
		return err
	}

	return s.tableRepo.Save(ctx, table)
}

// QRCodePNG renders the guest menu URL for a table as a QR code image.
// The encoded URL carries the restaurant slug and the table token.
func (s *TableService) QRCodePNG(ctx context.Context, restaurantID, tableID uuid.UUID, size int) ([]byte, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = 256
	}

	url := fmt.Sprintf("%s/m/%s?table=%s", s.menuBaseURL, restaurant.Slug, table.QRToken)
	return s.qrGenerator.GeneratePNG(url, size)
}

func (s *TableService) publishEvents(ctx context.Context, table *tenant.DiningTable) {
	if s.eventPublisher == nil {
		return
	}
	events := table.GetDomainEvents()
	table.ClearDomainEvents()
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish table event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}
