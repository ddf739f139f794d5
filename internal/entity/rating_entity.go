package entity

import (
	"time"

	"github.com/google/uuid"
)

type PlaceCategory string

const (
	CategoryRestaurant    PlaceCategory = "restaurant"
	CategoryBeach         PlaceCategory = "beach"
	CategoryActivity      PlaceCategory = "activity"
	CategoryTransport     PlaceCategory = "transport"
	CategoryAccommodation PlaceCategory = "accommodation"
	CategoryGeneral       PlaceCategory = "general"
)

// Rating is a structured review of a named place. Saving one always writes
// a companion Memory so context assembly and structured rating queries read
// from a single source of truth.
type Rating struct {
	Id             uuid.UUID
	VisitorId      uuid.UUID
	ConversationId *uuid.UUID
	Category       PlaceCategory
	PlaceName      string
	OverallRating  int // 1-5
	FoodRating     *int
	ServiceRating  *int
	AmbianceRating *int
	ValueRating    *int
	ReviewText     *string
	WouldRecommend *bool
	VisitedAt      *time.Time
	CreatedAt      time.Time
}

// PlaceScore is an aggregate over all ratings of a single place.
type PlaceScore struct {
	PlaceName    string
	Category     PlaceCategory
	AverageScore float64
	RatingCount  int64
}

// DerivedSentiment maps the overall score to the sentiment recorded on the
// companion memory: 4-5 positive, 3 neutral, 1-2 negative.
func (r *Rating) DerivedSentiment() Sentiment {
	switch {
	case r.OverallRating >= 4:
		return SentimentPositive
	case r.OverallRating >= 3:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}

// DerivedImportance: extreme scores are the ones worth remembering most.
func (r *Rating) DerivedImportance() int {
	if r.OverallRating == 5 || r.OverallRating == 1 {
		return 9
	}
	return 7
}
