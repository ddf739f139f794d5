package dto

import "github.com/google/uuid"

type ChatTurnRequest struct {
	SessionToken string     `json:"session_token" validate:"required,min=8,max=128"`
	Fingerprint  string     `json:"fingerprint" validate:"omitempty,min=8,max=128"`
	VisitorId    *uuid.UUID `json:"visitor_id"`
	Message      string     `json:"message" validate:"required,min=1,max=4000"`
}

type ChatTurnResponse struct {
	ConversationId uuid.UUID  `json:"conversation_id"`
	VisitorId      *uuid.UUID `json:"visitor_id,omitempty"`
	Topic          string     `json:"topic"`
	Reply          string     `json:"reply"`
	// Cached indicates the reply came from the shared answer cache rather
	// than a fresh model call.
	Cached bool `json:"cached"`
}

type CacheStatsResponse struct {
	Entries      int64    `json:"entries"`
	TotalHits    int64    `json:"total_hits"`
	TopQuestions []string `json:"top_questions,omitempty"`
}
