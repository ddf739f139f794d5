package service

import (
	"context"
	"fmt"

	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/memory"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IRatingService interface {
	// Save persists the rating and its derived memory atomically, so the
	// structured and conversational views of a review never disagree.
	Save(ctx context.Context, req *dto.SaveRatingRequest) (*dto.RatingResponse, error)
	ListForVisitor(ctx context.Context, visitorId uuid.UUID, limit int) ([]*dto.RatingResponse, error)
	TopPlaces(ctx context.Context, category string, limit int) ([]*dto.PlaceScoreResponse, error)
}

type ratingService struct {
	uowFactory   unitofwork.RepositoryFactory
	analytics    IAnalyticsService
	contextCache *memory.ContextCache
}

func NewRatingService(
	uowFactory unitofwork.RepositoryFactory,
	analytics IAnalyticsService,
	contextCache *memory.ContextCache,
) IRatingService {
	return &ratingService{
		uowFactory:   uowFactory,
		analytics:    analytics,
		contextCache: contextCache,
	}
}

func (s *ratingService) Save(ctx context.Context, req *dto.SaveRatingRequest) (*dto.RatingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: req.VisitorId})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, fmt.Errorf("visitor %s: %w", req.VisitorId, ErrNotFound)
	}

	rating := &entity.Rating{
		VisitorId:      req.VisitorId,
		ConversationId: req.ConversationId,
		Category:       entity.PlaceCategory(req.Category),
		PlaceName:      req.PlaceName,
		OverallRating:  req.OverallRating,
		FoodRating:     req.FoodRating,
		ServiceRating:  req.ServiceRating,
		AmbianceRating: req.AmbianceRating,
		ValueRating:    req.ValueRating,
		ReviewText:     req.ReviewText,
		WouldRecommend: req.WouldRecommend,
		VisitedAt:      req.VisitedAt,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.RatingRepository().Create(ctx, rating); err != nil {
		return nil, err
	}

	sentiment := rating.DerivedSentiment()
	importance := rating.DerivedImportance()
	category := string(rating.Category)
	mem := &entity.Memory{
		VisitorId:      rating.VisitorId,
		ConversationId: rating.ConversationId,
		MemoryType:     entity.MemoryRating,
		Category:       &category,
		Subject:        &rating.PlaceName,
		Sentiment:      &sentiment,
		Rating:         &rating.OverallRating,
		RawText:        rating.ReviewText,
		Importance:     &importance,
	}
	if err := uow.MemoryRepository().Create(ctx, mem); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.contextCache.Invalidate(req.VisitorId.String())

	s.analytics.Emit(ctx, constant.EventRatingSaved, &req.VisitorId, req.ConversationId, map[string]interface{}{
		"place_name": rating.PlaceName,
		"category":   category,
		"rating":     rating.OverallRating,
	})

	return toRatingResponse(rating), nil
}

func (s *ratingService) ListForVisitor(ctx context.Context, visitorId uuid.UUID, limit int) ([]*dto.RatingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedByVisitor{VisitorID: visitorId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}

	ratings, err := uow.RatingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.RatingResponse, len(ratings))
	for i, r := range ratings {
		out[i] = toRatingResponse(r)
	}
	return out, nil
}

func (s *ratingService) TopPlaces(ctx context.Context, category string, limit int) ([]*dto.PlaceScoreResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var cat *entity.PlaceCategory
	if category != "" {
		c := entity.PlaceCategory(category)
		cat = &c
	}
	if limit <= 0 {
		limit = 10
	}

	scores, err := uow.RatingRepository().PlaceAverages(ctx, cat, limit)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PlaceScoreResponse, len(scores))
	for i, score := range scores {
		out[i] = &dto.PlaceScoreResponse{
			PlaceName:    score.PlaceName,
			Category:     string(score.Category),
			AverageScore: score.AverageScore,
			RatingCount:  score.RatingCount,
		}
	}
	return out, nil
}

func toRatingResponse(r *entity.Rating) *dto.RatingResponse {
	return &dto.RatingResponse{
		Id:             r.Id,
		VisitorId:      r.VisitorId,
		ConversationId: r.ConversationId,
		Category:       string(r.Category),
		PlaceName:      r.PlaceName,
		OverallRating:  r.OverallRating,
		FoodRating:     r.FoodRating,
		ServiceRating:  r.ServiceRating,
		AmbianceRating: r.AmbianceRating,
		ValueRating:    r.ValueRating,
		ReviewText:     r.ReviewText,
		WouldRecommend: r.WouldRecommend,
		VisitedAt:      r.VisitedAt,
		CreatedAt:      r.CreatedAt,
	}
}
