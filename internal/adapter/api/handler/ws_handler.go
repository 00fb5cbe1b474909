package handler

import (
	"net/http"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "idstore/internal/infrastructure/websocket"
	"idstore/internal/usecase"
	"idstore/pkg/errors"
	"idstore/pkg/logger"
	"idstore/pkg/response"
)

type WebSocketHandler struct {
	hub            *ws.Hub
	catalogUseCase *usecase.CatalogUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var wsHandler *WebSocketHandler

func NewWebSocketHandler(hub *ws.Hub, catalogUseCase *usecase.CatalogUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		catalogUseCase: catalogUseCase,
	}
}

func SetupWebSocketHandler(hub *ws.Hub, catalogUseCase *usecase.CatalogUseCase) {
	wsHandler = NewWebSocketHandler(hub, catalogUseCase)
}

func GetWebSocketHandler() *WebSocketHandler {
	return wsHandler
}

// HandleWebSocket upgrades the connection, seeds it with the current
// snapshot and then lets the hub push every rebuild.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upgrade connection", err))
	}

	client := &ws.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.hub.Register <- client

	if payload, err := h.catalogUseCase.SnapshotPayload(); err == nil {
		client.Send <- payload
	} else {
		logger.Warn("Failed to seed viewer %s: %v", client.ID, err)
	}

	go client.ReadPump(h.hub)
	go client.WritePump()

	return nil
}
