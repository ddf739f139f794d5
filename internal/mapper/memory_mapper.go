package mapper

import (
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/model"
)

type MemoryMapper struct{}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func (m *MemoryMapper) ToEntity(mem *model.Memory) *entity.Memory {
	if mem == nil {
		return nil
	}

	var sentiment *entity.Sentiment
	if mem.Sentiment != nil {
		s := entity.Sentiment(*mem.Sentiment)
		sentiment = &s
	}

	return &entity.Memory{
		Id:             mem.Id,
		VisitorId:      mem.VisitorId,
		ConversationId: mem.ConversationId,
		MemoryType:     entity.MemoryType(mem.MemoryType),
		Category:       mem.Category,
		Subject:        mem.Subject,
		Sentiment:      sentiment,
		Rating:         mem.Rating,
		RawText:        mem.RawText,
		Importance:     mem.Importance,
		ExpiresAt:      mem.ExpiresAt,
		CreatedAt:      mem.CreatedAt,
	}
}

func (m *MemoryMapper) ToModel(mem *entity.Memory) *model.Memory {
	if mem == nil {
		return nil
	}

	var sentiment *string
	if mem.Sentiment != nil {
		s := string(*mem.Sentiment)
		sentiment = &s
	}

	return &model.Memory{
		Id:             mem.Id,
		VisitorId:      mem.VisitorId,
		ConversationId: mem.ConversationId,
		MemoryType:     string(mem.MemoryType),
		Category:       mem.Category,
		Subject:        mem.Subject,
		Sentiment:      sentiment,
		Rating:         mem.Rating,
		RawText:        mem.RawText,
		Importance:     mem.Importance,
		ExpiresAt:      mem.ExpiresAt,
		CreatedAt:      mem.CreatedAt,
	}
}

func (m *MemoryMapper) ToEntities(models []*model.Memory) []*entity.Memory {
	entities := make([]*entity.Memory, len(models))
	for i, mem := range models {
		entities[i] = m.ToEntity(mem)
	}
	return entities
}
