package realtime

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Server -> client
	TypeOverlapUpdated       MessageType = "overlap.updated"
	TypeCounterpartProposals MessageType = "counterpart_proposals.updated"
	TypeNotification         MessageType = "notification"
	TypePong                 MessageType = "pong"
	TypeError                MessageType = "error"

	// Client -> server
	TypePing MessageType = "ping"
)

// Message is the envelope for everything sent over the socket.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// OverlapPayload is sent with overlap.updated. Slots use the display form,
// e.g. "27 Aralık Cumartesi - 14:00".
type OverlapPayload struct {
	SubmissionID string   `json:"submission_id"`
	Slots        []string `json:"slots"`
}
