package entity

import (
	"time"

	"github.com/google/uuid"
)

type MemoryType string

const (
	MemoryRating         MemoryType = "rating"
	MemoryPreference     MemoryType = "preference"
	MemoryMention        MemoryType = "mention"
	MemoryComplaint      MemoryType = "complaint"
	MemoryRecommendation MemoryType = "recommendation"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// Memory is a durable fact learned about a Visitor, independent of any one
// conversation. Repeated mentions accumulate as separate rows; ranking by
// importance at read time keeps the noise out of context assembly.
type Memory struct {
	Id             uuid.UUID
	VisitorId      uuid.UUID
	ConversationId *uuid.UUID
	MemoryType     MemoryType
	Category       *string
	Subject        *string
	Sentiment      *Sentiment
	Rating         *int
	RawText        *string
	Importance     *int // 1-10; nil means unranked
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

// Expired reports whether the memory is past its soft-expiry.
func (m *Memory) Expired(now time.Time) bool {
	return m.ExpiresAt != nil && m.ExpiresAt.Before(now)
}
