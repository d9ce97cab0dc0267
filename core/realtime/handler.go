package realtime

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/middleware"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// Handler upgrades authenticated requests and attaches the connection to
// the hub. An empty allowedOrigins list accepts any origin.
func Handler(hub *Hub, allowedOrigins []string) echo.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
		},
	}

	return func(c echo.Context) error {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrUnauthorized)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			logger.Warn("Realtime:Upgrade", "user_id", userID, "error", err)
			return nil
		}

		client := NewClient(userID)
		if !hub.Register(client) {
			conn.Close()
			return nil
		}

		go writePump(conn, client)
		go readPump(conn, client, hub)
		return nil
	}
}

// writePump drains the client queue into the connection and keeps it alive
// with pings.
func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn, client *Client, hub *Hub) {
	defer func() {
		hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Realtime:Read", "user_id", client.userID, "error", err)
			}
			return
		}

		var in Message
		if err := json.Unmarshal(raw, &in); err != nil || in.Type != TypePing {
			hub.SendToUser(client.userID, NewMessage(TypeError, "unsupported message"))
			continue
		}
		hub.SendToUser(client.userID, NewMessage(TypePong, nil))
	}
}
