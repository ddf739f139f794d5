package model

import (
	"time"

	"github.com/google/uuid"
)

type Memory struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VisitorId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ConversationId *uuid.UUID `gorm:"type:uuid;index"`
	MemoryType     string     `gorm:"type:varchar(20);not null;index"`
	Category       *string    `gorm:"type:varchar(50);index"`
	Subject        *string    `gorm:"type:varchar(255)"`
	Sentiment      *string    `gorm:"type:varchar(20)"`
	Rating         *int
	RawText        *string `gorm:"type:text"`
	Importance     *int    `gorm:"index"`
	ExpiresAt      *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (Memory) TableName() string {
	return "memories"
}
