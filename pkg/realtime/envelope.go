package realtime

import "encoding/json"

// Live envelope types
const (
	EnvelopeConnectionEstablished = "connection_established"
	EnvelopeUnreadCount           = "unread_count"
	EnvelopeNewMessage            = "new_message"
	EnvelopeConversationUpdate    = "conversation_update"
	EnvelopeNotification          = "notification"
)

// Envelope wire message for all live channels
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewEnvelope constructor
func NewEnvelope(envelopeType string, data interface{}) Envelope {
	return Envelope{Type: envelopeType, Data: data}
}

// Marshal serialize message, []byte and json.RawMessage are used as is
func Marshal(message interface{}) ([]byte, error) {
	switch m := message.(type) {
	case []byte:
		return m, nil
	case json.RawMessage:
		return m, nil
	}
	return json.Marshal(message)
}
