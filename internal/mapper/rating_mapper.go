package mapper

import (
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/model"
)

type RatingMapper struct{}

func NewRatingMapper() *RatingMapper {
	return &RatingMapper{}
}

func (m *RatingMapper) ToEntity(r *model.Rating) *entity.Rating {
	if r == nil {
		return nil
	}
	return &entity.Rating{
		Id:             r.Id,
		VisitorId:      r.VisitorId,
		ConversationId: r.ConversationId,
		Category:       entity.PlaceCategory(r.Category),
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

func (m *RatingMapper) ToModel(r *entity.Rating) *model.Rating {
	if r == nil {
		return nil
	}
	return &model.Rating{
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

func (m *RatingMapper) ToEntities(models []*model.Rating) []*entity.Rating {
	entities := make([]*entity.Rating, len(models))
	for i, r := range models {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

// Cache / Analytics Mappers

type CacheMapper struct{}

func NewCacheMapper() *CacheMapper {
	return &CacheMapper{}
}

func (m *CacheMapper) ToEntity(c *model.CachedAnswer) *entity.CachedAnswer {
	if c == nil {
		return nil
	}
	return &entity.CachedAnswer{
		Id:             c.Id,
		QuestionHash:   c.QuestionHash,
		QuestionText:   c.QuestionText,
		Answer:         c.Answer,
		HitCount:       c.HitCount,
		CreatedAt:      c.CreatedAt,
		LastAccessedAt: c.LastAccessedAt,
	}
}

func (m *CacheMapper) ToModel(c *entity.CachedAnswer) *model.CachedAnswer {
	if c == nil {
		return nil
	}
	return &model.CachedAnswer{
		Id:             c.Id,
		QuestionHash:   c.QuestionHash,
		QuestionText:   c.QuestionText,
		Answer:         c.Answer,
		HitCount:       c.HitCount,
		CreatedAt:      c.CreatedAt,
		LastAccessedAt: c.LastAccessedAt,
	}
}

func (m *CacheMapper) EventToEntity(e *model.AnalyticsEvent) *entity.AnalyticsEvent {
	if e == nil {
		return nil
	}
	return &entity.AnalyticsEvent{
		Id:             e.Id,
		EventType:      e.EventType,
		VisitorId:      e.VisitorId,
		ConversationId: e.ConversationId,
		EventData:      jsonToMap(e.EventData),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *CacheMapper) EventToModel(e *entity.AnalyticsEvent) *model.AnalyticsEvent {
	if e == nil {
		return nil
	}
	return &model.AnalyticsEvent{
		Id:             e.Id,
		EventType:      e.EventType,
		VisitorId:      e.VisitorId,
		ConversationId: e.ConversationId,
		EventData:      mapToJSON(e.EventData),
		CreatedAt:      e.CreatedAt,
	}
}
