package domain

import (
	"encoding/json"
	"strings"
)

// Payload structured payload, one variant per notification type family
type Payload interface {
	isPayload()
}

// MessagePayload for MESSAGE
type MessagePayload struct {
	ConversationID string `json:"conversationId,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
}

// ClientJoinPayload for CLIENT_JOIN_REQUEST
type ClientJoinPayload struct {
	ClientID  string `json:"clientId,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// LessonPayload for LESSON_SCHEDULED, LESSON_CANCELLED, LESSON_REMINDER
type LessonPayload struct {
	EventID  string `json:"eventId,omitempty"`
	StartsAt string `json:"startsAt,omitempty"`
}

// TimeSwapPayload for TIME_SWAP_REQUEST
type TimeSwapPayload struct {
	SwapRequestID string `json:"swapRequestId,omitempty"`
	EventID       string `json:"eventId,omitempty"`
}

// ProgramPayload for WORKOUT_ASSIGNED, PROGRAM_ASSIGNED
type ProgramPayload struct {
	ProgramID string `json:"programId,omitempty"`
	WorkoutID string `json:"workoutId,omitempty"`
}

// VideoPayload for VIDEO_SUBMISSION, VIDEO_FEEDBACK
type VideoPayload struct {
	SubmissionID string `json:"submissionId,omitempty"`
	VideoID      string `json:"videoId,omitempty"`
}

// SystemPayload for SYSTEM
type SystemPayload struct {
	Link string `json:"link,omitempty"`
}

// EmptyPayload for unknown type
type EmptyPayload struct{}

func (MessagePayload) isPayload()    {}
func (ClientJoinPayload) isPayload() {}
func (LessonPayload) isPayload()     {}
func (TimeSwapPayload) isPayload()   {}
func (ProgramPayload) isPayload()    {}
func (VideoPayload) isPayload()      {}
func (SystemPayload) isPayload()     {}
func (EmptyPayload) isPayload()      {}

// NewPayload zero variant of type
func NewPayload(t Type) Payload {
	switch t {
	case TypeMessage:
		return MessagePayload{}
	case TypeClientJoinRequest:
		return ClientJoinPayload{}
	case TypeLessonScheduled, TypeLessonCancelled, TypeLessonReminder:
		return LessonPayload{}
	case TypeTimeSwapRequest:
		return TimeSwapPayload{}
	case TypeWorkoutAssigned, TypeProgramAssigned:
		return ProgramPayload{}
	case TypeVideoSubmission, TypeVideoFeedback:
		return VideoPayload{}
	case TypeSystem:
		return SystemPayload{}
	}
	return EmptyPayload{}
}

// DecodePayload decode raw json into variant of type.
// Malformed or empty input yield zero variant, never error
func DecodePayload(t Type, raw []byte) Payload {
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" {
		return NewPayload(t)
	}

	switch t {
	case TypeMessage:
		var p MessagePayload
		json.Unmarshal(raw, &p)
		return p
	case TypeClientJoinRequest:
		var p ClientJoinPayload
		json.Unmarshal(raw, &p)
		return p
	case TypeLessonScheduled, TypeLessonCancelled, TypeLessonReminder:
		var p LessonPayload
		json.Unmarshal(raw, &p)
		return p
	case TypeTimeSwapRequest:
		var p TimeSwapPayload
		json.Unmarshal(raw, &p)
		return p
	case TypeWorkoutAssigned, TypeProgramAssigned:
		var p ProgramPayload
		json.Unmarshal(raw, &p)
		return p
	case TypeVideoSubmission, TypeVideoFeedback:
		var p VideoPayload
		json.Unmarshal(raw, &p)
		return p
	case TypeSystem:
		var p SystemPayload
		json.Unmarshal(raw, &p)
		return p
	}
	return EmptyPayload{}
}

// EncodePayload serialize payload for storage, nil payload encoded as empty object
func EncodePayload(p Payload) []byte {
	if p == nil {
		return []byte("{}")
	}
	b, err := json.Marshal(p)
	if err != nil {
		return []byte("{}")
	}
	return b
}
