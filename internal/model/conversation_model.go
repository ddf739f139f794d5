package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Conversation struct {
	Id                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionToken          string     `gorm:"type:varchar(128);uniqueIndex;not null"`
	VisitorId             *uuid.UUID `gorm:"type:uuid;index"`
	Topic                 string     `gorm:"type:varchar(50);not null;default:'free-chat'"`
	Status                string     `gorm:"type:varchar(20);not null;default:'active';index"`
	MessageCount          int        `gorm:"not null;default:0"`
	UserMessageCount      int        `gorm:"not null;default:0"`
	AssistantMessageCount int        `gorm:"not null;default:0"`
	Summary               *string    `gorm:"type:text"`
	KeyTopics             datatypes.JSON
	StartedAt             time.Time `gorm:"autoCreateTime"`
	LastActivityAt        time.Time `gorm:"not null;index"`
	EndedAt               *time.Time
}

func (Conversation) TableName() string {
	return "conversations"
}

type Message struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender         string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	MessageType    string    `gorm:"type:varchar(20);not null;default:'text'"`
	RatingValue    *int
	SelectionValue *string `gorm:"type:varchar(255)"`
	AiGenerated    bool    `gorm:"not null;default:false"`
	Metadata       datatypes.JSON
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
