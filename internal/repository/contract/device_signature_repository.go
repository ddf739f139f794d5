package contract

import (
	"context"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DeviceSignatureRepository interface {
	// Save inserts the signature, or leaves the existing row untouched when the
	// fingerprint is already known.
	Save(ctx context.Context, signature *entity.DeviceSignature) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeviceSignature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeviceSignature, error)

	LinkToVisitor(ctx context.Context, fingerprint string, visitorId uuid.UUID) error
	Touch(ctx context.Context, fingerprint string) error
}
