package service

import (
	"context"
	"fmt"
	"time"

	"tobago-concierge-be/internal/config"
	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/memory"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMemoryService interface {
	Save(ctx context.Context, req *dto.SaveMemoryRequest) (*dto.MemoryResponse, error)
	Query(ctx context.Context, visitorId uuid.UUID, req *dto.QueryMemoriesRequest) ([]*dto.MemoryResponse, error)
	// PruneExpired clears soft-expired memories; returns how many were
	// removed.
	PruneExpired(ctx context.Context) (int64, error)
}

type memoryService struct {
	uowFactory   unitofwork.RepositoryFactory
	analytics    IAnalyticsService
	contextCache *memory.ContextCache
	engine       config.EngineConfig
}

func NewMemoryService(
	uowFactory unitofwork.RepositoryFactory,
	analytics IAnalyticsService,
	contextCache *memory.ContextCache,
	engine config.EngineConfig,
) IMemoryService {
	return &memoryService{
		uowFactory:   uowFactory,
		analytics:    analytics,
		contextCache: contextCache,
		engine:       engine,
	}
}

const defaultMemoryImportance = 5

func (s *memoryService) Save(ctx context.Context, req *dto.SaveMemoryRequest) (*dto.MemoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: req.VisitorId})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, fmt.Errorf("visitor %s: %w", req.VisitorId, ErrNotFound)
	}

	importance := req.Importance
	if importance == nil {
		d := defaultMemoryImportance
		importance = &d
	}

	mem := &entity.Memory{
		VisitorId:      req.VisitorId,
		ConversationId: req.ConversationId,
		MemoryType:     entity.MemoryType(req.MemoryType),
		Category:       req.Category,
		Subject:        req.Subject,
		Rating:         req.Rating,
		RawText:        req.RawText,
		Importance:     importance,
	}
	if req.Sentiment != nil {
		sent := entity.Sentiment(*req.Sentiment)
		mem.Sentiment = &sent
	}
	if req.TTLDays > 0 {
		expires := time.Now().AddDate(0, 0, req.TTLDays)
		mem.ExpiresAt = &expires
	}

	if err := uow.MemoryRepository().Create(ctx, mem); err != nil {
		return nil, err
	}

	// The visitor's context block is stale now.
	s.contextCache.Invalidate(req.VisitorId.String())

	s.analytics.Emit(ctx, constant.EventMemorySaved, &req.VisitorId, req.ConversationId, map[string]interface{}{
		"memory_type": req.MemoryType,
		"importance":  *importance,
	})

	return toMemoryResponse(mem), nil
}

func (s *memoryService) Query(ctx context.Context, visitorId uuid.UUID, req *dto.QueryMemoriesRequest) ([]*dto.MemoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedByVisitor{VisitorID: visitorId},
		specification.NotExpired{Now: time.Now()},
		specification.OrderBy{Field: "importance", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if req.MemoryType != "" {
		specs = append(specs, specification.ByMemoryType{MemoryType: req.MemoryType})
	}
	if req.Category != "" {
		specs = append(specs, specification.ByCategory{Category: req.Category})
	}
	if req.Subject != "" {
		specs = append(specs, specification.SubjectContains{Subject: req.Subject})
	}
	if req.MinImportance > 0 {
		specs = append(specs, specification.MinImportance{Floor: req.MinImportance})
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	specs = append(specs, specification.Limit{N: limit})

	memories, err := uow.MemoryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.MemoryResponse, len(memories))
	for i, m := range memories {
		out[i] = toMemoryResponse(m)
	}
	return out, nil
}

func (s *memoryService) PruneExpired(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MemoryRepository().DeleteExpired(ctx, time.Now())
}

func toMemoryResponse(m *entity.Memory) *dto.MemoryResponse {
	var sentiment *string
	if m.Sentiment != nil {
		s := string(*m.Sentiment)
		sentiment = &s
	}
	return &dto.MemoryResponse{
		Id:             m.Id,
		VisitorId:      m.VisitorId,
		ConversationId: m.ConversationId,
		MemoryType:     string(m.MemoryType),
		Category:       m.Category,
		Subject:        m.Subject,
		Sentiment:      sentiment,
		Rating:         m.Rating,
		RawText:        m.RawText,
		Importance:     m.Importance,
		ExpiresAt:      m.ExpiresAt,
		CreatedAt:      m.CreatedAt,
	}
}
