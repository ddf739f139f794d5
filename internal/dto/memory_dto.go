package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveMemoryRequest struct {
	VisitorId      uuid.UUID  `json:"visitor_id" validate:"required"`
	ConversationId *uuid.UUID `json:"conversation_id"`
	MemoryType     string     `json:"memory_type" validate:"required,oneof=rating preference mention complaint recommendation"`
	Category       *string    `json:"category"`
	Subject        *string    `json:"subject"`
	Sentiment      *string    `json:"sentiment" validate:"omitempty,oneof=positive negative neutral mixed"`
	Rating         *int       `json:"rating" validate:"omitempty,min=1,max=5"`
	RawText        *string    `json:"raw_text"`
	Importance     *int       `json:"importance" validate:"omitempty,min=1,max=10"`
	// TTLDays soft-expires the memory after N days; zero means no expiry.
	TTLDays int `json:"ttl_days" validate:"omitempty,min=0,max=3650"`
}

type MemoryResponse struct {
	Id             uuid.UUID  `json:"id"`
	VisitorId      uuid.UUID  `json:"visitor_id"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	MemoryType     string     `json:"memory_type"`
	Category       *string    `json:"category,omitempty"`
	Subject        *string    `json:"subject,omitempty"`
	Sentiment      *string    `json:"sentiment,omitempty"`
	Rating         *int       `json:"rating,omitempty"`
	RawText        *string    `json:"raw_text,omitempty"`
	Importance     *int       `json:"importance,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// QueryMemoriesRequest mirrors the supported query-string filters.
type QueryMemoriesRequest struct {
	MemoryType    string `json:"memory_type" validate:"omitempty,oneof=rating preference mention complaint recommendation"`
	Category      string `json:"category"`
	Subject       string `json:"subject"`
	MinImportance int    `json:"min_importance" validate:"omitempty,min=1,max=10"`
	Limit         int    `json:"limit" validate:"omitempty,min=1,max=100"`
}
