package handlers

import (
	"net/http"

	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ChatHandler handles chat history HTTP requests
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// History handles GET /api/v1/chats/{item_id}?peer_id=
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	itemID := chi.URLParam(r, "item_id")
	peerID := r.URL.Query().Get("peer_id")

	if peerID == "" {
		respondError(w, "peer_id is required", http.StatusBadRequest)
		return
	}

	messages, err := h.chatService.History(ctx, itemID, userID, peerID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("item_id", itemID).
			Msg("Failed to get chat history")
		respondError(w, "Failed to get chat history", http.StatusInternalServerError)
		return
	}

	respondJSON(w, messages, http.StatusOK)
}
