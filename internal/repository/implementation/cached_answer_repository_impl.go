package implementation

import (
	"context"
	"errors"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/mapper"
	"tobago-concierge-be/internal/model"
	"tobago-concierge-be/internal/repository/contract"
	"tobago-concierge-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CachedAnswerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CacheMapper
}

func NewCachedAnswerRepository(db *gorm.DB) contract.CachedAnswerRepository {
	return &CachedAnswerRepositoryImpl{
		db:     db,
		mapper: mapper.NewCacheMapper(),
	}
}

func (r *CachedAnswerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CachedAnswerRepositoryImpl) Upsert(ctx context.Context, answer *entity.CachedAnswer) error {
	m := r.mapper.ToModel(answer)
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO cached_answers (question_hash, question_text, answer, hit_count, created_at, last_accessed_at)
		VALUES (?, ?, ?, 0, NOW(), NOW())
		ON CONFLICT (question_hash)
		DO UPDATE SET answer = EXCLUDED.answer, last_accessed_at = NOW()
	`, m.QuestionHash, m.QuestionText, m.Answer).Error
	if err != nil {
		return err
	}

	var stored model.CachedAnswer
	if err := r.db.WithContext(ctx).Where("question_hash = ?", m.QuestionHash).First(&stored).Error; err != nil {
		return err
	}
	*answer = *r.mapper.ToEntity(&stored)
	return nil
}

func (r *CachedAnswerRepositoryImpl) FindByHash(ctx context.Context, hash string) (*entity.CachedAnswer, error) {
	var m model.CachedAnswer
	if err := r.db.WithContext(ctx).Where("question_hash = ?", hash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// RecordHit bumps the hit counter in one statement, so parallel lookups of a
// popular question all count.
func (r *CachedAnswerRepositoryImpl) RecordHit(ctx context.Context, hash string) error {
	return r.db.WithContext(ctx).Model(&model.CachedAnswer{}).
		Where("question_hash = ?", hash).
		Updates(map[string]interface{}{
			"hit_count":        gorm.Expr("hit_count + 1"),
			"last_accessed_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *CachedAnswerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CachedAnswer, error) {
	var models []*model.CachedAnswer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.CachedAnswer, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CachedAnswerRepositoryImpl) Stats(ctx context.Context) (*entity.CacheStats, error) {
	var row struct {
		Entries   int64
		TotalHits int64
	}
	err := r.db.WithContext(ctx).Table("cached_answers").
		Select("COUNT(*) as entries, COALESCE(SUM(hit_count), 0) as total_hits").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	var top []string
	err = r.db.WithContext(ctx).Table("cached_answers").
		Where("hit_count > 0").
		Order("hit_count DESC").
		Limit(5).
		Pluck("question_text", &top).Error
	if err != nil {
		return nil, err
	}

	return &entity.CacheStats{Entries: row.Entries, TotalHits: row.TotalHits, TopQuestions: top}, nil
}

func (r *CachedAnswerRepositoryImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM cached_answers`).Error
}
