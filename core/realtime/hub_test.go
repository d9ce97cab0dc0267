package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw, ok := <-c.Send():
		if !ok {
			t.Fatal("client channel closed")
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHub_SendToUser(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	a1, a2, b := NewClient(alice), NewClient(alice), NewClient(bob)
	hub.Register(a1)
	hub.Register(a2)
	hub.Register(b)
	if n := hub.ClientCount(); n != 3 {
		t.Fatalf("client count = %d, want 3", n)
	}

	hub.SendToUser(alice, NewMessage(TypeOverlapUpdated, OverlapPayload{Slots: []string{"27 Aralık Cumartesi - 14:00"}}))

	for _, c := range []*Client{a1, a2} {
		if msg := receive(t, c); msg.Type != TypeOverlapUpdated {
			t.Errorf("type = %s", msg.Type)
		}
	}
	select {
	case <-b.Send():
		t.Fatal("message leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub := startHub(t)
	c := NewClient(uuid.New())
	hub.Register(c)
	hub.Unregister(c)

	select {
	case _, ok := <-c.Send():
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
	if n := hub.ClientCount(); n != 0 {
		t.Fatalf("client count = %d, want 0", n)
	}
	// second unregister is a no-op
	hub.Unregister(c)
}

func TestHub_StoppedHubRejectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if hub.Register(NewClient(uuid.New())) {
		t.Fatal("register succeeded on stopped hub")
	}
	if n := hub.ClientCount(); n != 0 {
		t.Fatalf("client count = %d", n)
	}
}

func TestHandler_PingPong(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()

	e := echo.New()
	e.GET("/ws", Handler(hub, nil), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(constants.ContextTokenData, &utils.TokenClaims{UserID: userID})
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(Message{Type: TypePing}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != TypePong {
		t.Fatalf("type = %s, want pong", msg.Type)
	}

	hub.SendToUser(userID, NewMessage(TypeNotification, map[string]string{"title": "Ortak zaman bulundu"}))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != TypeNotification {
		t.Fatalf("type = %s", msg.Type)
	}
}

func TestHandler_RequiresUser(t *testing.T) {
	hub := startHub(t)
	e := echo.New()
	e.GET("/ws", Handler(hub, nil))
	srv := httptest.NewServer(e)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err == nil {
		t.Fatal("expected dial failure")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("resp = %v", resp)
	}
}
