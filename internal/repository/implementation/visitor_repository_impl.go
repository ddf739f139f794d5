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

type VisitorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VisitorMapper
}

func NewVisitorRepository(db *gorm.DB) contract.VisitorRepository {
	return &VisitorRepositoryImpl{
		db:     db,
		mapper: mapper.NewVisitorMapper(),
	}
}

func (r *VisitorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VisitorRepositoryImpl) Create(ctx context.Context, visitor *entity.Visitor) error {
	m := r.mapper.ToModel(visitor)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*visitor = *r.mapper.ToEntity(m)
	return nil
}

func (r *VisitorRepositoryImpl) Update(ctx context.Context, visitor *entity.Visitor) error {
	m := r.mapper.ToModel(visitor)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*visitor = *r.mapper.ToEntity(m)
	return nil
}

func (r *VisitorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visitor, error) {
	var m model.Visitor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *VisitorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Visitor, error) {
	var models []*model.Visitor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *VisitorRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Visitor{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RecordVisit bumps the visit counter and last_seen_at in one statement so
// concurrent recognitions never lose an increment.
func (r *VisitorRepositoryImpl) RecordVisit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Visitor{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"visit_count":  gorm.Expr("visit_count + 1"),
			"last_seen_at": gorm.Expr("NOW()"),
		}).Error
}

// AddTraitTags merges tags into personality_tags without duplicates. The
// read-merge-write runs inside a row lock so two classifications landing at
// once cannot drop each other's tags.
func (r *VisitorRepositoryImpl) AddTraitTags(ctx context.Context, id uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Visitor
		if err := tx.Clauses(lockForUpdate()).Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}

		visitor := r.mapper.ToEntity(&m)
		existing := make(map[string]bool, len(visitor.PersonalityTags))
		for _, t := range visitor.PersonalityTags {
			existing[t] = true
		}
		merged := visitor.PersonalityTags
		for _, t := range tags {
			if !existing[t] {
				merged = append(merged, t)
				existing[t] = true
			}
		}
		if len(merged) == len(visitor.PersonalityTags) {
			return nil
		}

		visitor.PersonalityTags = merged
		updated := r.mapper.ToModel(visitor)
		return tx.Model(&model.Visitor{}).Where("id = ?", id).
			Update("personality_tags", updated.PersonalityTags).Error
	})
}

func (r *VisitorRepositoryImpl) UpdatePersonalityNotes(ctx context.Context, id uuid.UUID, notes string) error {
	return r.db.WithContext(ctx).Model(&model.Visitor{}).Where("id = ?", id).
		Update("personality_notes", notes).Error
}

func (r *VisitorRepositoryImpl) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Visitor{}).Where("id = ?", id).
		Updates(fields).Error
}
