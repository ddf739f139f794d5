package contract

import (
	"context"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Rating, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Queries/Stats
	PlaceAverages(ctx context.Context, category *entity.PlaceCategory, limit int) ([]*entity.PlaceScore, error)
}
