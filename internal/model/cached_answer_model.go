package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CachedAnswer struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuestionHash   string    `gorm:"type:varchar(512);uniqueIndex;not null"`
	QuestionText   string    `gorm:"type:text;not null"`
	Answer         string    `gorm:"type:text;not null"`
	HitCount       int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	LastAccessedAt time.Time `gorm:"not null"`
}

func (CachedAnswer) TableName() string {
	return "cached_answers"
}

type AnalyticsEvent struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType      string     `gorm:"type:varchar(100);not null;index"`
	VisitorId      *uuid.UUID `gorm:"type:uuid;index"`
	ConversationId *uuid.UUID `gorm:"type:uuid"`
	EventData      datatypes.JSON
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
