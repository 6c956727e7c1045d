package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/models"
	"lostfound-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ItemHandler handles item report HTTP requests
type ItemHandler struct {
	itemService  *services.ItemService
	photoService *services.PhotoService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *services.ItemService, photoService *services.PhotoService) *ItemHandler {
	return &ItemHandler{
		itemService:  itemService,
		photoService: photoService,
	}
}

// Report handles POST /api/v1/items
func (h *ItemHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.itemService.Report(ctx, userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to report item")

		statusCode := http.StatusBadRequest
		if strings.Contains(err.Error(), "failed to") {
			statusCode = http.StatusInternalServerError
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("item_id", item.ID).
		Str("status", item.Status).
		Msg("Item reported")

	respondJSON(w, item, http.StatusCreated)
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	items, err := h.itemService.ListByOwner(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list items")
		respondError(w, "Failed to list items", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*models.ItemReport{}
	}

	respondJSON(w, items, http.StatusOK)
}

// Get handles GET /api/v1/items/{item_id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "item_id")

	item, err := h.itemService.Get(ctx, itemID)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID).Msg("Failed to get item")

		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	respondJSON(w, item, http.StatusOK)
}

// PhotoUploadRequest represents the request body for a photo upload URL
type PhotoUploadRequest struct {
	ContentType string `json:"content_type"`
}

// UploadPhoto handles POST /api/v1/items/{item_id}/photo
func (h *ItemHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	itemID := chi.URLParam(r, "item_id")

	var req PhotoUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	resp, err := h.photoService.GetPreSignedURL(ctx, userID, itemID, req.ContentType)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("item_id", itemID).
			Msg("Failed to generate upload URL")

		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		} else if strings.Contains(err.Error(), "not the owner") {
			statusCode = http.StatusForbidden
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("item_id", itemID).
		Msg("Photo upload URL generated")

	respondJSON(w, resp, http.StatusOK)
}
