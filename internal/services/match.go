package services

import (
	"context"
	"fmt"
	"strings"

	"lostfound-backend/internal/models"
)

// Scoring weights. The three checks are independent and sum to 1.0.
const (
	itemTypeWeight = 0.4
	locationWeight = 0.3
	featuresWeight = 0.3

	// matchThreshold is the strict lower bound a pair must exceed to be
	// reported as a candidate.
	matchThreshold = 0.6
)

// ItemStore is the query surface the match finder needs. Reports returned
// by its methods carry the owning user's display name.
type ItemStore interface {
	FindByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]*models.ItemReport, error)
	FindByStatusExcludingOwner(ctx context.Context, ownerID, status string) ([]*models.ItemReport, error)
}

// Score computes the similarity between a lost report and a found report.
// It is pure and total: missing optional fields count as "criterion not
// met", never an error. The result is always in [0, 1].
func Score(lost, found *models.ItemReport) float64 {
	score := 0.0

	if lost.ItemType != "" && lost.ItemType == found.ItemType {
		score += itemTypeWeight
	}

	// Only exact known-location matches count. Reports without a known
	// location contribute nothing, regardless of their candidate locations.
	if lost.LocationKnown && found.LocationKnown &&
		lost.KnownLocation != "" && lost.KnownLocation == found.KnownLocation {
		score += locationWeight
	}

	// Directional: the lost report's features must contain the found
	// report's features, lowercased.
	if lost.DistinguishingFeatures != "" && found.DistinguishingFeatures != "" &&
		strings.Contains(
			strings.ToLower(lost.DistinguishingFeatures),
			strings.ToLower(found.DistinguishingFeatures),
		) {
		score += featuresWeight
	}

	return score
}

// MatchService produces scored match candidates between a user's reports
// and other users' reports.
type MatchService struct {
	store ItemStore
}

// NewMatchService creates a new match service
func NewMatchService(store ItemStore) *MatchService {
	return &MatchService{store: store}
}

// FindMatches returns every candidate pairing of the user's lost reports
// against others' found reports, and the user's found reports against
// others' lost reports, whose score exceeds the threshold.
//
// The two cross products are evaluated in order and no dedup is applied:
// the exclusion filters keep a user's own reports out of the opposing
// sets, so duplicates cannot arise from correct set construction.
//
// Candidate sets are small; the pairwise scan is O(|A|·|B| + |C|·|D|) and
// unpaginated, which is a scaling limit if report volume ever grows.
func (s *MatchService) FindMatches(ctx context.Context, userID string) ([]*models.MatchCandidate, error) {
	ownLost, err := s.store.FindByOwnerAndStatus(ctx, userID, models.StatusLost)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user's lost items: %w", err)
	}
	othersFound, err := s.store.FindByStatusExcludingOwner(ctx, userID, models.StatusFound)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve others' found items: %w", err)
	}
	ownFound, err := s.store.FindByOwnerAndStatus(ctx, userID, models.StatusFound)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user's found items: %w", err)
	}
	othersLost, err := s.store.FindByStatusExcludingOwner(ctx, userID, models.StatusLost)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve others' lost items: %w", err)
	}

	candidates := []*models.MatchCandidate{}

	for _, lost := range ownLost {
		for _, found := range othersFound {
			if score := Score(lost, found); score > matchThreshold {
				candidates = append(candidates, newCandidate(lost, found, score))
			}
		}
	}

	for _, found := range ownFound {
		for _, lost := range othersLost {
			if score := Score(lost, found); score > matchThreshold {
				candidates = append(candidates, newCandidate(lost, found, score))
			}
		}
	}

	return candidates, nil
}

func newCandidate(lost, found *models.ItemReport, score float64) *models.MatchCandidate {
	return &models.MatchCandidate{
		LostItem:          lost,
		FoundItem:         found,
		MatchScore:        score,
		LostItemUserID:    lost.OwnerID,
		FoundItemUserID:   found.OwnerID,
		LostItemUserName:  lost.OwnerName,
		FoundItemUserName: found.OwnerName,
	}
}
