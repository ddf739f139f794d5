package dto

import (
	"time"

	"github.com/google/uuid"
)

type ResolveVisitorRequest struct {
	Fingerprint   string  `json:"fingerprint" validate:"required,min=8,max=128"`
	Name          string  `json:"name" validate:"omitempty,min=1,max=255"`
	Email         *string `json:"email" validate:"omitempty,email"`
	ArrivalMethod *string `json:"arrival_method" validate:"omitempty,oneof=plane cruise ferry"`
	UserAgent     *string `json:"user_agent"`
	IpAddress     *string `json:"ip_address"`
}

type VisitorResponse struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            *string   `json:"email,omitempty"`
	ArrivalMethod    *string   `json:"arrival_method,omitempty"`
	VisitCount       int       `json:"visit_count"`
	PersonalityTags  []string  `json:"personality_tags,omitempty"`
	PersonalityNotes *string   `json:"personality_notes,omitempty"`
	FirstSeenAt      time.Time `json:"first_seen_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	// IsReturning is true when the visitor was recognized rather than
	// freshly created.
	IsReturning bool `json:"is_returning"`
}

// ResolveVisitorResponse carries a nil Visitor when the client has not yet
// supplied enough profile detail to create an identity; the device
// signature is still recorded so the next resolve is cheap.
type ResolveVisitorResponse struct {
	Visitor     *VisitorResponse `json:"visitor"`
	IsReturning bool             `json:"is_returning"`
	// IsNewDevice is false only when the fingerprint already mapped to
	// this visitor; an email merge or a first sighting both set it.
	IsNewDevice bool `json:"is_new_device"`
}

type UpdateVisitorRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email         *string `json:"email" validate:"omitempty,email"`
	ArrivalMethod *string `json:"arrival_method" validate:"omitempty,oneof=plane cruise ferry"`
}

// LookupVisitorResponse is a read-only existence probe; it never creates or
// mutates anything.
type LookupVisitorResponse struct {
	Found   bool             `json:"found"`
	Visitor *VisitorResponse `json:"visitor,omitempty"`
}

type VisitorStatsResponse struct {
	VisitorId     uuid.UUID        `json:"visitor_id"`
	VisitCount    int              `json:"visit_count"`
	MemberSince   time.Time        `json:"member_since"`
	Conversations int64            `json:"conversations"`
	Memories      int64            `json:"memories"`
	Ratings       int64            `json:"ratings"`
	EventCounts   map[string]int64 `json:"event_counts"`
}

type SentimentResponse struct {
	Overall   string         `json:"overall"`
	Score     float64        `json:"score"`
	Breakdown map[string]int `json:"breakdown"`
}

type SuggestionsResponse struct {
	VisitorId   uuid.UUID `json:"visitor_id"`
	Traits      []string  `json:"traits"`
	Suggestions []string  `json:"suggestions"`
	// AiTip is a single model-written line personalized to the traits.
	AiTip string `json:"ai_tip,omitempty"`
}
