package domain

import "encoding/json"

// Outcome result of best-effort delivery
type Outcome string

const (
	// OutcomeDelivered reached at least one live channel
	OutcomeDelivered Outcome = "delivered"
	// OutcomePushed no live channel, at least one web push accepted
	OutcomePushed Outcome = "pushed"
	// OutcomeQueued nobody reached, recipient will find it on next poll
	OutcomeQueued Outcome = "queued"
	// OutcomeFailed push was attempted and none accepted
	OutcomeFailed Outcome = "failed"
)

// DispatchRequest request from domain features
type DispatchRequest struct {
	RecipientID string          `json:"recipientId" validate:"required"`
	Type        Type            `json:"type" validate:"required"`
	Title       string          `json:"title" validate:"required,max=255"`
	Message     string          `json:"message" validate:"max=4000"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// DispatchResult outcome of dispatch, notification is persisted whatever the outcome
type DispatchResult struct {
	Notification  Notification `json:"notification"`
	Outcome       Outcome      `json:"outcome"`
	Reason        string       `json:"reason,omitempty"`
	LiveReceivers int          `json:"liveReceivers"`
	PushSent      int          `json:"pushSent"`
	PushPruned    int          `json:"pushPruned"`
	PushFailed    int          `json:"pushFailed"`
}
