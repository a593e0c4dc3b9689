package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/finbridge-app/advisory-service/internal/domain"
)

// ClientMessage is a frame sent by the chat client.
type ClientMessage struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Culture  string `json:"culture"`
	UserID   string `json:"userId"`
}

// ServerMessage is a frame sent to the chat client.
type ServerMessage struct {
	Type    string               `json:"type"`
	Reply   string               `json:"reply,omitempty"`
	UI      *domain.AdviceResult `json:"ui,omitempty"`
	Content string               `json:"content,omitempty"`
}

const wsReadLimit = 64 << 10

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("WebSocket error")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			h.sendError(conn, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "advice":
			resp, err := h.svc.Advise(r.Context(), domain.AdviceRequest{
				Message:  msg.Message,
				Language: msg.Language,
				Culture:  msg.Culture,
				UserID:   msg.UserID,
			})
			if err != nil {
				h.log.Error().Err(err).Str("user_id", msg.UserID).Msg("advice failed")
				h.sendError(conn, "Error generating advice")
				continue
			}
			h.send(conn, ServerMessage{Type: "advice", Reply: resp.Reply, UI: &resp.UI})
		default:
			h.sendError(conn, fmt.Sprintf("Unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, msg ServerMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		h.log.Warn().Err(err).Msg("WebSocket write failed")
	}
}

func (h *Handler) sendError(conn *websocket.Conn, content string) {
	h.send(conn, ServerMessage{Type: "error", Content: content})
}
