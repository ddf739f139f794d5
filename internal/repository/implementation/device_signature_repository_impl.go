package implementation

import (
	"context"
	"errors"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/mapper"
	"tobago-concierge-be/internal/model"
	"tobago-concierge-be/internal/repository/contract"
	"tobago-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceSignatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VisitorMapper
}

func NewDeviceSignatureRepository(db *gorm.DB) contract.DeviceSignatureRepository {
	return &DeviceSignatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewVisitorMapper(),
	}
}

func (r *DeviceSignatureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DeviceSignatureRepositoryImpl) Save(ctx context.Context, signature *entity.DeviceSignature) error {
	m := r.mapper.DeviceToModel(signature)
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO device_signatures (fingerprint, visitor_id, user_agent, ip_address, use_count, first_seen_at, last_seen_at)
		VALUES (?, ?, ?, ?, 1, NOW(), NOW())
		ON CONFLICT (fingerprint) DO NOTHING
	`, m.Fingerprint, m.VisitorId, m.UserAgent, m.IpAddress).Error
	if err != nil {
		return err
	}

	// Read the row back so the caller sees the canonical record whether
	// the insert won or lost the race.
	var stored model.DeviceSignature
	if err := r.db.WithContext(ctx).Where("fingerprint = ?", m.Fingerprint).First(&stored).Error; err != nil {
		return err
	}
	*signature = *r.mapper.DeviceToEntity(&stored)
	return nil
}

func (r *DeviceSignatureRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeviceSignature, error) {
	var m model.DeviceSignature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.DeviceToEntity(&m), nil
}

func (r *DeviceSignatureRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeviceSignature, error) {
	var models []*model.DeviceSignature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.DeviceSignature, len(models))
	for i, m := range models {
		entities[i] = r.mapper.DeviceToEntity(m)
	}
	return entities, nil
}

func (r *DeviceSignatureRepositoryImpl) LinkToVisitor(ctx context.Context, fingerprint string, visitorId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.DeviceSignature{}).
		Where("fingerprint = ?", fingerprint).
		Update("visitor_id", visitorId).Error
}

// Touch bumps use_count and last_seen_at atomically.
func (r *DeviceSignatureRepositoryImpl) Touch(ctx context.Context, fingerprint string) error {
	return r.db.WithContext(ctx).Model(&model.DeviceSignature{}).
		Where("fingerprint = ?", fingerprint).
		Updates(map[string]interface{}{
			"use_count":    gorm.Expr("use_count + 1"),
			"last_seen_at": gorm.Expr("NOW()"),
		}).Error
}
