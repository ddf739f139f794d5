package contract

import (
	"context"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"
)

type AnalyticsRepository interface {
	Create(ctx context.Context, event *entity.AnalyticsEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalyticsEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByType(ctx context.Context, eventType string) (int64, error)
}
