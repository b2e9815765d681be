package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/code"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
	"github.com/vivekvardhan78/JalRakshak/internal/realtime"
	"github.com/vivekvardhan78/JalRakshak/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard origins vary per deployment; auth happens via the token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamController upgrades dashboard connections to the realtime feed.
type StreamController struct {
	Container *container.ServiceContainer
}

// NewStreamController creates a new stream controller.
func NewStreamController(container *container.ServiceContainer) *StreamController {
	return &StreamController{Container: container}
}

// authorizeStream validates the token query parameter. Browsers cannot set
// websocket headers, so the feed authenticates on the upgrade request itself.
func authorizeStream(c *gin.Context, jwtService services.InterfaceJWTService) bool {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c)
		return false
	}
	if jwtService == nil {
		response.Unauthorized(c)
		return false
	}
	if _, err := jwtService.ExtractClaims(token); err != nil {
		response.Unauthorized(c)
		return false
	}
	return true
}

// Serve upgrades the connection and joins the realtime feed
// @Summary      Realtime stream
// @Description  Websocket feed of readings and alerts, framed as {type, payload}; pass the JWT as a token query parameter
// @Tags         Stream
// @Param        token query string true "JWT"
// @Success      101  {string}  string
// @Failure      401  {object}  ErrorResponse
// @Router       /stream [get]
func (s *StreamController) Serve(c *gin.Context) {
	jwtService, _ := s.Container.GetService("jwt").(services.InterfaceJWTService)
	if !authorizeStream(c, jwtService) {
		return
	}

	hub, ok := s.Container.GetService("hub").(*realtime.Hub)
	if !ok || hub == nil {
		response.FailWithMessage(c, code.ErrUnknown, "realtime feed unavailable", nil)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warning("Websocket upgrade failed: %v", err)
		return
	}

	client := realtime.NewClient(hub, conn)
	hub.RegisterClient(client)

	go client.WritePump()
	go client.ReadPump()
}
