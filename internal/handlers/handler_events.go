package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/events"
	"github.com/JuanPescoran/bond-valuation-app/internal/middleware"
	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
)

const (
	eventBuffer       = 32
	eventWriteTimeout = 5 * time.Second
)

type eventsHandler struct {
	bus            *events.Bus
	originPatterns []string
}

func registerEventRoutes(rg *gin.RouterGroup, bus *events.Bus, frontendBaseURL string) {
	h := &eventsHandler{bus: bus}
	if u, err := url.Parse(frontendBaseURL); err == nil && u.Host != "" {
		h.originPatterns = []string{u.Host}
	}
	rg.GET("/events", h.stream)
}

// stream godoc
// @Summary Live valuation events
// @Description Upgrades to a websocket and pushes valuation.created, valuation.deleted and history.saved events of the current user as JSON text messages.
// @Tags events
// @Success 101 {object} events.Event
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events [get]
func (h *eventsHandler) stream(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Subscribe before the upgrade so no event published after the handshake is missed.
	ch, dropped, cancel := h.bus.Channel(session.ID, eventBuffer, events.AllTypes...)
	defer cancel()

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		// Accept already wrote the HTTP error.
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.CloseNow()

	// The client never sends data; CloseRead handles control frames and cancels ctx on disconnect.
	ctx := conn.CloseRead(c.Request.Context())
	logger.Info("Event stream opened")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Event stream closed", slog.Int("dropped", dropped()))
			return
		case e := <-ch:
			if err := writeEvent(ctx, conn, e); err != nil {
				logger.Warn("Failed to push event", slog.String("event", string(e.Type)), slog.String("error", err.Error()))
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, eventWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
