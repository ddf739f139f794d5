package mapper

import (
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:             c.Id,
		SessionToken:   c.SessionToken,
		VisitorId:      c.VisitorId,
		Topic:          c.Topic,
		Status:         entity.ConversationStatus(c.Status),
		MessageCount:   c.MessageCount,
		UserMessages:   c.UserMessageCount,
		AssistantMsgs:  c.AssistantMessageCount,
		Summary:        c.Summary,
		KeyTopics:      jsonToStrings(c.KeyTopics),
		StartedAt:      c.StartedAt,
		LastActivityAt: c.LastActivityAt,
		EndedAt:        c.EndedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:                    c.Id,
		SessionToken:          c.SessionToken,
		VisitorId:             c.VisitorId,
		Topic:                 c.Topic,
		Status:                string(c.Status),
		MessageCount:          c.MessageCount,
		UserMessageCount:      c.UserMessages,
		AssistantMessageCount: c.AssistantMsgs,
		Summary:               c.Summary,
		KeyTopics:             stringsToJSON(c.KeyTopics),
		StartedAt:             c.StartedAt,
		LastActivityAt:        c.LastActivityAt,
		EndedAt:               c.EndedAt,
	}
}

func (m *ConversationMapper) ToEntities(models []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

// Message Mappers

func (m *ConversationMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Sender:         entity.MessageSender(msg.Sender),
		Content:        msg.Content,
		MessageType:    entity.MessageType(msg.MessageType),
		RatingValue:    msg.RatingValue,
		SelectionValue: msg.SelectionValue,
		AiGenerated:    msg.AiGenerated,
		Metadata:       jsonToMap(msg.Metadata),
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Sender:         string(msg.Sender),
		Content:        msg.Content,
		MessageType:    string(msg.MessageType),
		RatingValue:    msg.RatingValue,
		SelectionValue: msg.SelectionValue,
		AiGenerated:    msg.AiGenerated,
		Metadata:       mapToJSON(msg.Metadata),
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessagesToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, msg := range models {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
