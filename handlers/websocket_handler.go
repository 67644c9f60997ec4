package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/aoe4tourney/engine/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler serves GET /ws/tournaments/{id}, pushing build/schedule
// lifecycle events as they happen instead of making clients poll.
type WebSocketHandler struct {
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *realtime.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	if _, err := strconv.Atoi(idStr); err != nil {
		http.Error(w, "invalid tournament id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "websocket upgrade failed", slog.String("tournament_id", idStr), slog.Any("error", err))
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: idStr,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
