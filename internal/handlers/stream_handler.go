package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/middleware"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler pushes newly created registrations to connected admin
// dashboards over a websocket, fanned out through the redis pub/sub
// channel the repository publishes to.
type StreamHandler struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewStreamHandler(rdb *redis.Client, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{rdb: rdb, logger: logger}
}

// Stream upgrades the connection and relays registration events until the
// client goes away. Auth has already run in the admin route group.
func (h *StreamHandler) Stream(c *gin.Context) {
	logger := middleware.ContextLogger(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, repository.RegistrationsChannel)
	defer sub.Close()

	// Reader goroutine: we never expect client messages, but reading is
	// what surfaces the close frame.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	events := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				logger.Debug("dropping admin stream client", zap.Error(err))
				return
			}
		}
	}
}
