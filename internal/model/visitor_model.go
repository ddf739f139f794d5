package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Visitor struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Email            *string   `gorm:"type:varchar(255);uniqueIndex"`
	ArrivalMethod    *string   `gorm:"type:varchar(50)"`
	VisitCount       int       `gorm:"not null;default:1"`
	PersonalityTags  datatypes.JSON
	PersonalityNotes *string   `gorm:"type:text"`
	FirstSeenAt      time.Time `gorm:"not null"`
	LastSeenAt       time.Time `gorm:"not null;index"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Visitor) TableName() string {
	return "visitors"
}

type DeviceSignature struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fingerprint string     `gorm:"type:varchar(128);uniqueIndex;not null"`
	VisitorId   *uuid.UUID `gorm:"type:uuid;index"`
	UserAgent   *string    `gorm:"type:text"`
	IpAddress   *string    `gorm:"type:varchar(45)"`
	UseCount    int        `gorm:"not null;default:1"`
	FirstSeenAt time.Time  `gorm:"autoCreateTime"`
	LastSeenAt  time.Time  `gorm:"not null"`
}

func (DeviceSignature) TableName() string {
	return "device_signatures"
}
