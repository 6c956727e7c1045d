package services

import (
	"context"
	"fmt"
	"time"

	"lostfound-backend/internal/models"
	"lostfound-backend/internal/repository"
)

// ItemService handles item report business logic
type ItemService struct {
	itemRepo *repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo *repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ReportRequest represents a request to report a lost or found item
type ReportRequest struct {
	ItemType               string   `json:"item_type"`
	DateLost               string   `json:"date_lost"`
	LocationKnown          bool     `json:"location_known"`
	KnownLocation          string   `json:"known_location"`
	Locations              []string `json:"locations"`
	DistinguishingFeatures string   `json:"distinguishing_features"`
	LongDescription        string   `json:"long_description"`
	Status                 string   `json:"status"`
}

// Report validates and stores a new item report for a user
func (s *ItemService) Report(ctx context.Context, ownerID string, req ReportRequest) (*models.ItemReport, error) {
	dateLost, err := time.Parse("2006-01-02", req.DateLost)
	if err != nil {
		return nil, fmt.Errorf("invalid date_lost")
	}

	item, err := models.NewItemReport(
		ownerID, req.ItemType, dateLost, req.LocationKnown, req.KnownLocation,
		req.Locations, req.DistinguishingFeatures, req.LongDescription, req.Status,
	)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to store item report: %w", err)
	}

	return item, nil
}

// ListByOwner retrieves all reports filed by a user
func (s *ItemService) ListByOwner(ctx context.Context, ownerID string) ([]*models.ItemReport, error) {
	return s.itemRepo.FindByOwner(ctx, ownerID)
}

// Get retrieves a single item report
func (s *ItemService) Get(ctx context.Context, itemID string) (*models.ItemReport, error) {
	return s.itemRepo.GetByID(ctx, itemID)
}
