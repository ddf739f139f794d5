package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartConversationRequest struct {
	SessionToken string     `json:"session_token" validate:"required,min=8,max=128"`
	VisitorId    *uuid.UUID `json:"visitor_id"`
	Topic        string     `json:"topic" validate:"omitempty,oneof=restaurant beach activity free-chat"`
}

type LinkConversationRequest struct {
	VisitorId uuid.UUID `json:"visitor_id" validate:"required"`
}

type ConversationResponse struct {
	Id             uuid.UUID  `json:"id"`
	SessionToken   string     `json:"session_token"`
	VisitorId      *uuid.UUID `json:"visitor_id,omitempty"`
	Topic          string     `json:"topic"`
	Status         string     `json:"status"`
	MessageCount   int        `json:"message_count"`
	UserMessages   int        `json:"user_messages"`
	AssistantMsgs  int        `json:"assistant_messages"`
	Summary        *string    `json:"summary,omitempty"`
	KeyTopics      []string   `json:"key_topics,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
}

type AppendMessageRequest struct {
	Sender         string  `json:"sender" validate:"required,oneof=user assistant"`
	Content        string  `json:"content" validate:"required"`
	MessageType    string  `json:"message_type" validate:"omitempty,oneof=text selection rating reaction"`
	RatingValue    *int    `json:"rating_value" validate:"omitempty,min=1,max=5"`
	SelectionValue *string `json:"selection_value"`
	AiGenerated    bool    `json:"ai_generated"`
}

type MessageResponse struct {
	Id             uuid.UUID `json:"id"`
	ConversationId uuid.UUID `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	MessageType    string    `json:"message_type"`
	RatingValue    *int      `json:"rating_value,omitempty"`
	SelectionValue *string   `json:"selection_value,omitempty"`
	AiGenerated    bool      `json:"ai_generated"`
	CreatedAt      time.Time `json:"created_at"`
}

type CompleteConversationRequest struct {
	Summary   *string  `json:"summary"`
	KeyTopics []string `json:"key_topics" validate:"omitempty,max=10"`
}

type TopicInfoResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
