package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"lostfound-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

// WebSocketHandler handles WebSocket chat connections
type WebSocketHandler struct {
	hub         *services.WSHub
	userService *services.UserService
	chatService *services.ChatService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	userService *services.UserService,
	chatService *services.ChatService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
		chatService: chatService,
	}
}

// HandleWebSocket handles GET /ws?token=
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.userService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	// Cancelling this context tears down every relay subscription the
	// connection holds.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	subscriptions := make(map[string]context.CancelFunc)

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(client, "Invalid message format")
			continue
		}

		if err := h.handleMessage(ctx, client, subscriptions, msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", msg.Type).Msg("Failed to handle message")
			h.sendError(client, err.Error())
		}
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(ctx context.Context, client *services.WSClient, subscriptions map[string]context.CancelFunc, msg services.WSMessage) error {
	switch msg.Type {
	case "join":
		return h.handleJoin(ctx, client, subscriptions, msg)
	case "leave":
		return h.handleLeave(client, subscriptions, msg)
	case "chat":
		return h.handleChat(ctx, client, msg)
	default:
		return h.sendError(client, "Unknown message type")
	}
}

// handleJoin subscribes the connection to an item's chat topic
func (h *WebSocketHandler) handleJoin(ctx context.Context, client *services.WSClient, subscriptions map[string]context.CancelFunc, msg services.WSMessage) error {
	if msg.ItemID == "" {
		return h.sendError(client, "item_id is required")
	}
	if _, ok := subscriptions[msg.ItemID]; ok {
		return nil
	}

	subCtx, cancel := context.WithCancel(ctx)
	stream, err := h.chatService.Subscribe(subCtx, msg.ItemID)
	if err != nil {
		cancel()
		return h.sendError(client, "Failed to join item chat")
	}
	subscriptions[msg.ItemID] = cancel

	go func() {
		for message := range stream {
			frame := services.WSMessage{
				Type:   "chat",
				ItemID: message.ItemID,
				Data:   message,
			}
			if err := client.Send(frame); err != nil {
				log.Error().
					Err(err).
					Str("user_id", client.UserID).
					Str("item_id", message.ItemID).
					Msg("Failed to deliver chat message")
				return
			}
		}
	}()

	log.Info().
		Str("user_id", client.UserID).
		Str("item_id", msg.ItemID).
		Msg("Joined item chat")

	return client.Send(services.WSMessage{Type: "joined", ItemID: msg.ItemID})
}

// handleLeave unsubscribes the connection from an item's chat topic
func (h *WebSocketHandler) handleLeave(client *services.WSClient, subscriptions map[string]context.CancelFunc, msg services.WSMessage) error {
	if msg.ItemID == "" {
		return h.sendError(client, "item_id is required")
	}

	cancel, ok := subscriptions[msg.ItemID]
	if !ok {
		return nil
	}
	cancel()
	delete(subscriptions, msg.ItemID)

	return client.Send(services.WSMessage{Type: "left", ItemID: msg.ItemID})
}

// handleChat persists a chat message and relays it to topic subscribers
func (h *WebSocketHandler) handleChat(ctx context.Context, client *services.WSClient, msg services.WSMessage) error {
	if msg.ItemID == "" || msg.ReceiverID == "" || msg.Message == "" {
		return h.sendError(client, "item_id, receiver_id and message are required")
	}

	message, err := h.chatService.Send(ctx, client.UserID, msg.ReceiverID, msg.ItemID, msg.Message)
	if err != nil {
		return err
	}

	log.Info().
		Str("sender_id", message.SenderID).
		Str("receiver_id", message.ReceiverID).
		Str("item_id", message.ItemID).
		Msg("Chat message relayed")

	return nil
}

// sendError sends an error frame to the client
func (h *WebSocketHandler) sendError(client *services.WSClient, message string) error {
	return client.Send(services.WSMessage{Type: "error", Message: message})
}
