package repository

import (
	"context"
	"fmt"

	"lostfound-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemRepository handles database operations for item reports
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `
	i.id, i.owner_id, u.name, i.item_type, i.date_lost, i.location_known,
	i.known_location, i.locations, i.distinguishing_features, i.long_description,
	i.photo_url, i.status, i.date_reported
`

func scanItem(row pgx.Row) (*models.ItemReport, error) {
	var item models.ItemReport
	var knownLocation, longDescription, photoURL *string
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.OwnerName, &item.ItemType, &item.DateLost,
		&item.LocationKnown, &knownLocation, &item.Locations,
		&item.DistinguishingFeatures, &longDescription, &photoURL,
		&item.Status, &item.DateReported,
	)
	if err != nil {
		return nil, err
	}
	if knownLocation != nil {
		item.KnownLocation = *knownLocation
	}
	if longDescription != nil {
		item.LongDescription = *longDescription
	}
	if photoURL != nil {
		item.PhotoURL = *photoURL
	}
	return &item, nil
}

// Create creates a new item report
func (r *ItemRepository) Create(ctx context.Context, item *models.ItemReport) error {
	query := `
		INSERT INTO items (id, owner_id, item_type, date_lost, location_known,
			known_location, locations, distinguishing_features, long_description,
			photo_url, status, date_reported)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.OwnerID, item.ItemType, item.DateLost, item.LocationKnown,
		nullable(item.KnownLocation), item.Locations, item.DistinguishingFeatures,
		nullable(item.LongDescription), nullable(item.PhotoURL),
		item.Status, item.DateReported,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetByID retrieves an item report by ID
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.ItemReport, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.id = $1
	`
	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("item not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// FindByOwner retrieves all item reports owned by a user
func (r *ItemRepository) FindByOwner(ctx context.Context, ownerID string) ([]*models.ItemReport, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.owner_id = $1
		ORDER BY i.date_reported DESC
	`
	return r.queryItems(ctx, query, ownerID)
}

// FindByOwnerAndStatus retrieves item reports owned by a user with the given status
func (r *ItemRepository) FindByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]*models.ItemReport, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.owner_id = $1 AND i.status = $2
		ORDER BY i.date_reported
	`
	return r.queryItems(ctx, query, ownerID, status)
}

// FindByStatusExcludingOwner retrieves item reports with the given status
// owned by anyone except the given user
func (r *ItemRepository) FindByStatusExcludingOwner(ctx context.Context, ownerID, status string) ([]*models.ItemReport, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.owner_id <> $1 AND i.status = $2
		ORDER BY i.date_reported
	`
	return r.queryItems(ctx, query, ownerID, status)
}

// UpdatePhotoURL sets the photo URL for an item report
func (r *ItemRepository) UpdatePhotoURL(ctx context.Context, itemID, photoURL string) error {
	query := `UPDATE items SET photo_url = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, photoURL, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item photo_url: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item not found")
	}
	return nil
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*models.ItemReport, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.ItemReport
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
