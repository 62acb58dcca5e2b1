package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/thereayou/teamtodo/internal/middleware"
	"github.com/thereayou/teamtodo/internal/services"
	ws "github.com/thereayou/teamtodo/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub      *ws.Hub
	authz    *services.AuthorizationService
	upgrader websocket.Upgrader
}

// NewWebSocketHandler создает новый WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, authz *services.AuthorizationService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:   hub,
		authz: authz,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket обрабатывает WebSocket соединения
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	// Получаем userID из контекста
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uint))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h)
}

// HandleMessage обрабатывает команды клиента. Вход в комнату команды
// разрешен только ее участникам.
func (h *WebSocketHandler) HandleMessage(client *ws.Client, msg *ws.InboundMessage) error {
	switch msg.Type {
	case ws.TypeRoomJoin:
		if msg.TeamID == 0 {
			return ws.ErrInvalidMessage
		}

		isMember, err := h.authz.IsTeamMember(client.UserID, msg.TeamID)
		if err != nil {
			return err
		}
		if !isMember {
			return ws.ErrNotTeamMember
		}

		h.hub.Join(client, ws.TeamRoom(msg.TeamID))
		return nil

	case ws.TypeRoomLeave:
		if msg.TeamID == 0 {
			return ws.ErrInvalidMessage
		}

		h.hub.Leave(client, ws.TeamRoom(msg.TeamID))
		return nil

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		return nil
	}
}
