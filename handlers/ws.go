package handlers

import (
	"net/http"
	"net/url"
	"time"

	"roomservice/middleware"
	"roomservice/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// WSHandler upgrades authenticated staff connections and registers them
// with the notification hub.
type WSHandler struct {
	Hub      *notification.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler accepts connections from clientURL's origin, or any origin
// when clientURL is empty.
func NewWSHandler(hub *notification.Hub, clientURL string) *WSHandler {
	allowed := ""
	if u, err := url.Parse(clientURL); err == nil && u.Host != "" {
		allowed = u.Scheme + "://" + u.Host
	}
	return &WSHandler{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowed == "" || origin == "" || origin == allowed
			},
		},
	}
}

func (h *WSHandler) ServeWS(c *gin.Context) {
	logger := getLogger(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.Hub.AddClient(conn)
	logger.Info("staff websocket connected",
		zap.String("userID", c.GetString(middleware.CtxUserID)), zap.Int("clients", h.Hub.ClientCount()))

	go h.readPump(conn)
}

// readPump discards client messages and drops the client once it stops
// answering pings.
func (h *WSHandler) readPump(conn *websocket.Conn) {
	defer h.Hub.RemoveClient(conn)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
