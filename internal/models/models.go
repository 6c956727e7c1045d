package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Item report statuses
const (
	StatusLost  = "lost"
	StatusFound = "found"
)

// MaxLocations is the maximum number of candidate locations on a report
// whose location is not known.
const MaxLocations = 3

// User represents a registered user
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	CreatedAt    time.Time `json:"created_at"`
}

// ItemReport represents one lost or found item claim
type ItemReport struct {
	ID                     string    `json:"id"`
	OwnerID                string    `json:"owner_id"`
	OwnerName              string    `json:"owner_name,omitempty"`
	ItemType               string    `json:"item_type"`
	DateLost               time.Time `json:"date_lost"`
	LocationKnown          bool      `json:"location_known"`
	KnownLocation          string    `json:"known_location,omitempty"`
	Locations              []string  `json:"locations,omitempty"`
	DistinguishingFeatures string    `json:"distinguishing_features"`
	LongDescription        string    `json:"long_description,omitempty"`
	PhotoURL               string    `json:"photo_url,omitempty"`
	Status                 string    `json:"status"`
	DateReported           time.Time `json:"date_reported"`
}

// NewItemReport builds a validated item report. Exactly one of
// knownLocation / locations is populated, governed by locationKnown.
func NewItemReport(ownerID, itemType string, dateLost time.Time, locationKnown bool, knownLocation string, locations []string, features, longDescription, status string) (*ItemReport, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if itemType == "" {
		return nil, fmt.Errorf("item_type is required")
	}
	if features == "" {
		return nil, fmt.Errorf("distinguishing_features is required")
	}
	if status != StatusLost && status != StatusFound {
		return nil, fmt.Errorf("status must be %q or %q", StatusLost, StatusFound)
	}
	if locationKnown {
		if knownLocation == "" {
			return nil, fmt.Errorf("known_location is required when location_known is true")
		}
		if len(locations) > 0 {
			return nil, fmt.Errorf("locations must be empty when location_known is true")
		}
	} else {
		if knownLocation != "" {
			return nil, fmt.Errorf("known_location must be empty when location_known is false")
		}
		if len(locations) == 0 {
			return nil, fmt.Errorf("locations are required when location_known is false")
		}
		if len(locations) > MaxLocations {
			return nil, fmt.Errorf("maximum of %d possible locations allowed", MaxLocations)
		}
	}

	return &ItemReport{
		ID:                     uuid.New().String(),
		OwnerID:                ownerID,
		ItemType:               itemType,
		DateLost:               dateLost,
		LocationKnown:          locationKnown,
		KnownLocation:          knownLocation,
		Locations:              locations,
		DistinguishingFeatures: features,
		LongDescription:        longDescription,
		Status:                 status,
		DateReported:           time.Now(),
	}, nil
}

// MatchCandidate pairs one lost report with one found report and the
// computed similarity score. Built per query, never persisted.
type MatchCandidate struct {
	LostItem          *ItemReport `json:"lost_item"`
	FoundItem         *ItemReport `json:"found_item"`
	MatchScore        float64     `json:"match_score"`
	LostItemUserID    string      `json:"lost_item_user_id"`
	FoundItemUserID   string      `json:"found_item_user_id"`
	LostItemUserName  string      `json:"lost_item_user_name"`
	FoundItemUserName string      `json:"found_item_user_name"`
}

// ChatMessage represents one chat message exchanged about an item
type ChatMessage struct {
	ID         string    `json:"id" bson:"_id"`
	SenderID   string    `json:"sender_id" bson:"sender_id"`
	ReceiverID string    `json:"receiver_id" bson:"receiver_id"`
	ItemID     string    `json:"item_id" bson:"item_id"`
	Message    string    `json:"message" bson:"message"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
