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

type RatingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RatingMapper
}

func NewRatingRepository(db *gorm.DB) contract.RatingRepository {
	return &RatingRepositoryImpl{
		db:     db,
		mapper: mapper.NewRatingMapper(),
	}
}

func (r *RatingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RatingRepositoryImpl) Create(ctx context.Context, rating *entity.Rating) error {
	m := r.mapper.ToModel(rating)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*rating = *r.mapper.ToEntity(m)
	return nil
}

func (r *RatingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Rating, error) {
	var m model.Rating
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *RatingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error) {
	var models []*model.Rating
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *RatingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Rating{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PlaceAverages groups ratings by place and returns the best-rated places
// first. Category is optional.
func (r *RatingRepositoryImpl) PlaceAverages(ctx context.Context, category *entity.PlaceCategory, limit int) ([]*entity.PlaceScore, error) {
	var rows []struct {
		PlaceName    string
		Category     string
		AverageScore float64
		RatingCount  int64
	}

	query := r.db.WithContext(ctx).Table("ratings").
		Select("place_name, MIN(category) as category, AVG(overall_rating) as average_score, COUNT(*) as rating_count").
		Group("place_name").
		Order("average_score DESC, rating_count DESC")
	if category != nil {
		query = query.Where("category = ?", string(*category))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	scores := make([]*entity.PlaceScore, len(rows))
	for i, row := range rows {
		scores[i] = &entity.PlaceScore{
			PlaceName:    row.PlaceName,
			Category:     entity.PlaceCategory(row.Category),
			AverageScore: row.AverageScore,
			RatingCount:  row.RatingCount,
		}
	}
	return scores, nil
}
