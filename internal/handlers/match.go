package handlers

import (
	"net/http"

	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// MatchHandler handles match-related HTTP requests
type MatchHandler struct {
	matchService *services.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// FindMatches handles GET /api/v1/matches.
// An empty match list is a successful result, not an error; only a store
// retrieval failure produces a 500.
func (h *MatchHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	candidates, err := h.matchService.FindMatches(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to find matches")
		respondError(w, "Failed to find matches", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Msg("Match candidates computed")

	respondJSON(w, candidates, http.StatusOK)
}
