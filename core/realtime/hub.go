package realtime

import (
	"context"

	"yildizli-agac-api/core/logger"

	"github.com/google/uuid"
)

const sendBufferSize = 64

// Publisher is what the rest of the service uses to push to a user.
type Publisher interface {
	SendToUser(userID uuid.UUID, msg Message)
}

type envelope struct {
	userID uuid.UUID
	data   []byte
}

// Hub keeps every open connection grouped by user. All map access happens
// on the Run goroutine.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	direct     chan envelope
	count      chan chan int
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan envelope, 256),
		count:      make(chan chan int),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = map[uuid.UUID]map[*Client]struct{}{}
			return

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			logger.Debug("Realtime:Register", "user_id", c.userID, "connections", len(set))

		case c := <-h.unregister:
			h.remove(c)

		case env := <-h.direct:
			for c := range h.clients[env.userID] {
				select {
				case c.send <- env.data:
				default:
					logger.Warn("Realtime:SlowClient", "user_id", env.userID)
					h.remove(c)
				}
			}

		case reply := <-h.count:
			n := 0
			for _, set := range h.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

// SendToUser queues msg for every connection of userID. It never blocks; a
// full queue drops the message.
func (h *Hub) SendToUser(userID uuid.UUID, msg Message) {
	data, err := msg.JSON()
	if err != nil {
		logger.Error("Realtime:SendToUser:Marshal", err)
		return
	}
	select {
	case h.direct <- envelope{userID: userID, data: data}:
	default:
		logger.Warn("Realtime:SendToUser:Dropped", "user_id", userID, "type", msg.Type)
	}
}

// Register returns false once the hub has stopped; the client is then
// closed immediately.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		close(c.send)
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns 0 after the hub has stopped.
func (h *Hub) ClientCount() int {
	reply := make(chan int)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Client is one websocket connection owned by a user.
type Client struct {
	userID uuid.UUID
	send   chan []byte
}

func NewClient(userID uuid.UUID) *Client {
	return &Client{
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) Send() <-chan []byte {
	return c.send
}
