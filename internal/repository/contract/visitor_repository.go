package contract

import (
	"context"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VisitorRepository interface {
	Create(ctx context.Context, visitor *entity.Visitor) error
	Update(ctx context.Context, visitor *entity.Visitor) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visitor, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Visitor, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	RecordVisit(ctx context.Context, id uuid.UUID) error
	AddTraitTags(ctx context.Context, id uuid.UUID, tags []string) error
	UpdatePersonalityNotes(ctx context.Context, id uuid.UUID, notes string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}
