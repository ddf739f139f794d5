package contract

import (
	"context"
	"time"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MemoryRepository interface {
	Create(ctx context.Context, memory *entity.Memory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByVisitorId(ctx context.Context, visitorId uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
