package dto

import "github.com/google/uuid"

// PublishAnalyticsEventMessage is the payload carried on the in-process
// event bus between services and the analytics consumer.
type PublishAnalyticsEventMessage struct {
	EventType      string                 `json:"event_type"`
	VisitorId      *uuid.UUID             `json:"visitor_id,omitempty"`
	ConversationId *uuid.UUID             `json:"conversation_id,omitempty"`
	EventData      map[string]interface{} `json:"event_data,omitempty"`
}
