package contract

import (
	"context"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"
)

type CachedAnswerRepository interface {
	// Upsert inserts the answer, or refreshes the stored answer text when the
	// question hash already exists.
	Upsert(ctx context.Context, answer *entity.CachedAnswer) error
	FindByHash(ctx context.Context, hash string) (*entity.CachedAnswer, error)
	RecordHit(ctx context.Context, hash string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CachedAnswer, error)
	Stats(ctx context.Context) (*entity.CacheStats, error)
	Clear(ctx context.Context) error
}
