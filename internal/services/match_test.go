package services

import (
	"context"
	"errors"
	"testing"

	"lostfound-backend/internal/models"
)

// fakeItemStore serves canned result sets for the four match finder queries.
type fakeItemStore struct {
	ownLost     []*models.ItemReport
	ownFound    []*models.ItemReport
	othersLost  []*models.ItemReport
	othersFound []*models.ItemReport
	err         error
}

func (f *fakeItemStore) FindByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]*models.ItemReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	if status == models.StatusLost {
		return f.ownLost, nil
	}
	return f.ownFound, nil
}

func (f *fakeItemStore) FindByStatusExcludingOwner(ctx context.Context, ownerID, status string) ([]*models.ItemReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	if status == models.StatusLost {
		return f.othersLost, nil
	}
	return f.othersFound, nil
}

func report(id, owner, ownerName, itemType, knownLocation, features string) *models.ItemReport {
	return &models.ItemReport{
		ID:                     id,
		OwnerID:                owner,
		OwnerName:              ownerName,
		ItemType:               itemType,
		LocationKnown:          knownLocation != "",
		KnownLocation:          knownLocation,
		DistinguishingFeatures: features,
	}
}

func TestScorePerfectMatch(t *testing.T) {
	lost := report("l1", "u1", "Alice", "wallet", "Library", "black leather")
	found := report("f1", "u2", "Bob", "wallet", "Library", "black")

	if score := Score(lost, found); score != 1.0 {
		t.Errorf("expected score 1.0, got %v", score)
	}
}

func TestScoreNoOverlap(t *testing.T) {
	lost := report("l1", "u1", "Alice", "wallet", "Library", "black leather")
	found := report("f1", "u2", "Bob", "umbrella", "Cafeteria", "red plastic")

	if score := Score(lost, found); score != 0.0 {
		t.Errorf("expected score 0.0, got %v", score)
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	reports := []*models.ItemReport{
		report("a", "u1", "", "wallet", "Library", "black leather"),
		report("b", "u2", "", "wallet", "", ""),
		report("c", "u3", "", "", "Library", "black"),
		{},
	}

	for _, lost := range reports {
		for _, found := range reports {
			score := Score(lost, found)
			if score < 0.0 || score > 1.0 {
				t.Errorf("score %v out of range for %q vs %q", score, lost.ID, found.ID)
			}
		}
	}
}

func TestScoreFeaturesDirectional(t *testing.T) {
	narrow := report("l1", "u1", "", "wallet", "", "black")
	wide := report("f1", "u2", "", "wallet", "", "Black Leather")

	// The lost report's features must contain the found report's, not the
	// other way around.
	if score := Score(narrow, wide); score != 0.4 {
		t.Errorf("expected 0.4 when lost features do not contain found features, got %v", score)
	}
	if score := Score(wide, narrow); score != 0.7 {
		t.Errorf("expected 0.7 with containment, got %v", score)
	}
}

func TestScoreMissingFeatures(t *testing.T) {
	lost := report("l1", "u1", "", "wallet", "Library", "black leather")
	found := report("f1", "u2", "", "wallet", "Library", "")

	if score := Score(lost, found); score != 0.7 {
		t.Errorf("expected 0.7 with missing found features, got %v", score)
	}

	if score := Score(found, lost); score != 0.7 {
		t.Errorf("expected 0.7 with missing lost features, got %v", score)
	}
}

func TestScoreLocationNotKnown(t *testing.T) {
	lost := report("l1", "u1", "", "wallet", "", "black leather")
	lost.Locations = []string{"Library", "Cafeteria"}
	found := report("f1", "u2", "", "wallet", "Library", "keys attached")

	// Candidate locations never count, only exact known locations.
	if score := Score(lost, found); score != 0.4 {
		t.Errorf("expected 0.4 without known location, got %v", score)
	}
}

func TestScoreEmptyKnownLocation(t *testing.T) {
	lost := report("l1", "u1", "", "wallet", "", "black")
	found := report("f1", "u2", "", "wallet", "", "black")
	lost.LocationKnown = true
	found.LocationKnown = true

	// A report claiming a known location without one gets no location
	// credit, and scoring proceeds over the remaining criteria.
	if score := Score(lost, found); score != 0.7 {
		t.Errorf("expected 0.7 for malformed known location, got %v", score)
	}
}

func TestFindMatchesPerfectPair(t *testing.T) {
	store := &fakeItemStore{
		ownLost:     []*models.ItemReport{report("l1", "u1", "Alice", "wallet", "Library", "black leather")},
		othersFound: []*models.ItemReport{report("f1", "u2", "Bob", "wallet", "Library", "black")},
	}
	svc := NewMatchService(store)

	candidates, err := svc.FindMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}

	c := candidates[0]
	if c.MatchScore != 1.0 {
		t.Errorf("expected score 1.0, got %v", c.MatchScore)
	}
	if c.LostItemUserID != "u1" || c.FoundItemUserID != "u2" {
		t.Errorf("unexpected user ids: %s, %s", c.LostItemUserID, c.FoundItemUserID)
	}
	if c.LostItemUserName != "Alice" || c.FoundItemUserName != "Bob" {
		t.Errorf("unexpected user names: %s, %s", c.LostItemUserName, c.FoundItemUserName)
	}
	if c.LostItem.ID != "l1" || c.FoundItem.ID != "f1" {
		t.Errorf("unexpected items: %s, %s", c.LostItem.ID, c.FoundItem.ID)
	}
}

func TestFindMatchesThresholdBoundary(t *testing.T) {
	// Location and features match, types differ: exactly 0.6, which the
	// strict threshold excludes.
	store := &fakeItemStore{
		ownLost:     []*models.ItemReport{report("l1", "u1", "Alice", "wallet", "Library", "black leather")},
		othersFound: []*models.ItemReport{report("f1", "u2", "Bob", "purse", "Library", "black")},
	}
	svc := NewMatchService(store)

	if score := Score(store.ownLost[0], store.othersFound[0]); score != 0.6 {
		t.Fatalf("expected boundary score 0.6, got %v", score)
	}

	candidates, err := svc.FindMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected pair scoring exactly 0.6 to be excluded, got %d candidates", len(candidates))
	}
}

func TestFindMatchesReverseDirection(t *testing.T) {
	// The user found an item; someone else lost a matching one.
	store := &fakeItemStore{
		ownFound:   []*models.ItemReport{report("f1", "u1", "Alice", "phone", "Gym", "cracked screen")},
		othersLost: []*models.ItemReport{report("l1", "u2", "Bob", "phone", "Gym", "cracked")},
	}
	svc := NewMatchService(store)

	candidates, err := svc.FindMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}

	c := candidates[0]
	if c.LostItem.ID != "l1" || c.FoundItem.ID != "f1" {
		t.Errorf("expected lost item from others and found item from user, got %s, %s", c.LostItem.ID, c.FoundItem.ID)
	}
	if c.LostItemUserID != "u2" || c.FoundItemUserID != "u1" {
		t.Errorf("unexpected user ids: %s, %s", c.LostItemUserID, c.FoundItemUserID)
	}
}

func TestFindMatchesOrdering(t *testing.T) {
	store := &fakeItemStore{
		ownLost: []*models.ItemReport{
			report("l1", "u1", "Alice", "wallet", "Library", "black leather"),
			report("l2", "u1", "Alice", "wallet", "Library", "brown leather"),
		},
		othersFound: []*models.ItemReport{
			report("f1", "u2", "Bob", "wallet", "Library", "black"),
			report("f2", "u3", "Carol", "wallet", "Library", "leather"),
		},
		ownFound:   []*models.ItemReport{report("f3", "u1", "Alice", "phone", "Gym", "cracked screen")},
		othersLost: []*models.ItemReport{report("l3", "u2", "Bob", "phone", "Gym", "cracked")},
	}
	svc := NewMatchService(store)

	candidates, err := svc.FindMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All four lost-direction pairs clear the threshold, then the single
	// found-direction pair. Outer loop order must be preserved.
	var got []string
	for _, c := range candidates {
		got = append(got, c.LostItem.ID+"x"+c.FoundItem.ID)
	}

	want := []string{"l1xf1", "l1xf2", "l2xf1", "l2xf2", "l3xf3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates %v, got %v", len(want), want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestFindMatchesNoItems(t *testing.T) {
	svc := NewMatchService(&fakeItemStore{})

	candidates, err := svc.FindMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(candidates) != 0 {
		t.Errorf("expected 0 candidates, got %d", len(candidates))
	}
}

func TestFindMatchesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewMatchService(&fakeItemStore{err: storeErr})

	candidates, err := svc.FindMatches(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
	if candidates != nil {
		t.Errorf("expected no partial results, got %d candidates", len(candidates))
	}
}
