package model

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VisitorId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ConversationId *uuid.UUID `gorm:"type:uuid"`
	Category       string     `gorm:"type:varchar(50);not null;index"`
	PlaceName      string     `gorm:"type:varchar(255);not null;index"`
	OverallRating  int        `gorm:"not null"`
	FoodRating     *int
	ServiceRating  *int
	AmbianceRating *int
	ValueRating    *int
	ReviewText     *string `gorm:"type:text"`
	WouldRecommend *bool
	VisitedAt      *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}
