package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConversationStatus string

const (
	ConversationActive    ConversationStatus = "active"
	ConversationCompleted ConversationStatus = "completed"
	ConversationAbandoned ConversationStatus = "abandoned"
)

// IsTerminal reports whether the status admits no further transition.
func (s ConversationStatus) IsTerminal() bool {
	return s == ConversationCompleted || s == ConversationAbandoned
}

// Conversation is one chat session keyed by a client session token.
// It may start anonymous and be linked to a Visitor later.
type Conversation struct {
	Id             uuid.UUID
	SessionToken   string
	VisitorId      *uuid.UUID
	Topic          string
	Status         ConversationStatus
	MessageCount   int
	UserMessages   int
	AssistantMsgs  int
	Summary        *string
	KeyTopics      []string
	StartedAt      time.Time
	LastActivityAt time.Time
	EndedAt        *time.Time
}

type MessageSender string

const (
	SenderUser      MessageSender = "user"
	SenderAssistant MessageSender = "assistant"
)

type MessageType string

const (
	MessageText      MessageType = "text"
	MessageSelection MessageType = "selection"
	MessageRating    MessageType = "rating"
	MessageReaction  MessageType = "reaction"
)

// Message is one immutable turn in a Conversation.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Sender         MessageSender
	Content        string
	MessageType    MessageType
	RatingValue    *int
	SelectionValue *string
	AiGenerated    bool
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
