package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveRatingRequest struct {
	VisitorId      uuid.UUID  `json:"visitor_id" validate:"required"`
	ConversationId *uuid.UUID `json:"conversation_id"`
	Category       string     `json:"category" validate:"required,oneof=restaurant beach activity transport accommodation general"`
	PlaceName      string     `json:"place_name" validate:"required,min=1,max=255"`
	OverallRating  int        `json:"overall_rating" validate:"required,min=1,max=5"`
	FoodRating     *int       `json:"food_rating" validate:"omitempty,min=1,max=5"`
	ServiceRating  *int       `json:"service_rating" validate:"omitempty,min=1,max=5"`
	AmbianceRating *int       `json:"ambiance_rating" validate:"omitempty,min=1,max=5"`
	ValueRating    *int       `json:"value_rating" validate:"omitempty,min=1,max=5"`
	ReviewText     *string    `json:"review_text"`
	WouldRecommend *bool      `json:"would_recommend"`
	VisitedAt      *time.Time `json:"visited_at"`
}

type RatingResponse struct {
	Id             uuid.UUID  `json:"id"`
	VisitorId      uuid.UUID  `json:"visitor_id"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	Category       string     `json:"category"`
	PlaceName      string     `json:"place_name"`
	OverallRating  int        `json:"overall_rating"`
	FoodRating     *int       `json:"food_rating,omitempty"`
	ServiceRating  *int       `json:"service_rating,omitempty"`
	AmbianceRating *int       `json:"ambiance_rating,omitempty"`
	ValueRating    *int       `json:"value_rating,omitempty"`
	ReviewText     *string    `json:"review_text,omitempty"`
	WouldRecommend *bool      `json:"would_recommend,omitempty"`
	VisitedAt      *time.Time `json:"visited_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type PlaceScoreResponse struct {
	PlaceName    string  `json:"place_name"`
	Category     string  `json:"category"`
	AverageScore float64 `json:"average_score"`
	RatingCount  int64   `json:"rating_count"`
}
