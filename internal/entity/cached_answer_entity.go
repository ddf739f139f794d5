package entity

import (
	"time"

	"github.com/google/uuid"
)

// CachedAnswer stores a previously generated reply keyed by the normalized
// form of the question. Consulted only for single-turn conversations, where
// no per-visitor context has accumulated yet.
type CachedAnswer struct {
	Id             uuid.UUID
	QuestionHash   string
	QuestionText   string
	Answer         string
	HitCount       int
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// CacheStats summarizes the answer cache: how many distinct questions are
// stored and how many lookups they have absorbed.
type CacheStats struct {
	Entries   int64
	TotalHits int64
	// TopQuestions are the most-hit cached questions, strongest first.
	TopQuestions []string
}

// AnalyticsEvent is a fire-and-forget audit record emitted by the services
// and persisted by the event consumer.
type AnalyticsEvent struct {
	Id             uuid.UUID
	EventType      string
	VisitorId      *uuid.UUID
	ConversationId *uuid.UUID
	EventData      map[string]interface{}
	CreatedAt      time.Time
}
