package service

import (
	"context"
	"fmt"

	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"
	"tobago-concierge-be/pkg/concierge/topics"

	"github.com/google/uuid"
)

type IConversationService interface {
	// Start creates the conversation for a session token, or returns the
	// existing one; retried requests never fork a session.
	Start(ctx context.Context, req *dto.StartConversationRequest) (*dto.ConversationResponse, error)
	GetBySessionToken(ctx context.Context, token string) (*dto.ConversationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ConversationResponse, error)
	// Link attaches a resolved visitor to a conversation that started
	// anonymously. Linking to a different visitor than the one already
	// attached is a conflict.
	Link(ctx context.Context, conversationId, visitorId uuid.UUID) (*dto.ConversationResponse, error)
	AppendMessage(ctx context.Context, conversationId uuid.UUID, req *dto.AppendMessageRequest) (*dto.MessageResponse, error)
	History(ctx context.Context, conversationId uuid.UUID, limit int) ([]*dto.MessageResponse, error)
	Complete(ctx context.Context, id uuid.UUID, req *dto.CompleteConversationRequest) (*dto.ConversationResponse, error)
	Abandon(ctx context.Context, id uuid.UUID) (*dto.ConversationResponse, error)
	ListForVisitor(ctx context.Context, visitorId uuid.UUID, limit int) ([]*dto.ConversationResponse, error)
	AvailableTopics() []*dto.TopicInfoResponse
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	analytics  IAnalyticsService
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory, analytics IAnalyticsService) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		analytics:  analytics,
	}
}

func (s *conversationService) Start(ctx context.Context, req *dto.StartConversationRequest) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	topic := req.Topic
	if topic == "" {
		topic = topics.DefaultTopicID
	}

	conversation := &entity.Conversation{
		SessionToken: req.SessionToken,
		VisitorId:    req.VisitorId,
		Topic:        topic,
		Status:       entity.ConversationActive,
	}
	// Save is create-or-get by session token. An existing row comes back
	// unchanged, even when this call carries a visitor the row lacks;
	// adopting a visitor is Link's job.
	if err := uow.ConversationRepository().Save(ctx, conversation); err != nil {
		return nil, err
	}

	if conversation.MessageCount == 0 {
		s.analytics.Emit(ctx, constant.EventConversationStarted, conversation.VisitorId, &conversation.Id, map[string]interface{}{
			"topic": conversation.Topic,
		})
	}

	return toConversationResponse(conversation), nil
}

func (s *conversationService) GetBySessionToken(ctx context.Context, token string) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionToken{Token: token})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation for session: %w", ErrNotFound)
	}
	return toConversationResponse(conversation), nil
}

func (s *conversationService) Get(ctx context.Context, id uuid.UUID) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	return toConversationResponse(conversation), nil
}

func (s *conversationService) Link(ctx context.Context, conversationId, visitorId uuid.UUID) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation %s: %w", conversationId, ErrNotFound)
	}

	if conversation.VisitorId != nil {
		if *conversation.VisitorId == visitorId {
			return toConversationResponse(conversation), nil
		}
		return nil, fmt.Errorf("conversation already belongs to another visitor: %w", ErrConflict)
	}

	if err := uow.ConversationRepository().LinkVisitor(ctx, conversationId, visitorId); err != nil {
		return nil, err
	}
	conversation.VisitorId = &visitorId

	return toConversationResponse(conversation), nil
}

// AppendMessage writes the message and bumps the conversation counters in
// one transaction, so counts and rows can never drift apart.
func (s *conversationService) AppendMessage(ctx context.Context, conversationId uuid.UUID, req *dto.AppendMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation %s: %w", conversationId, ErrNotFound)
	}
	if conversation.Status.IsTerminal() {
		return nil, fmt.Errorf("cannot append to %s conversation: %w", conversation.Status, ErrTerminalState)
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = string(entity.MessageText)
	}

	message := &entity.Message{
		ConversationId: conversationId,
		Sender:         entity.MessageSender(req.Sender),
		Content:        req.Content,
		MessageType:    entity.MessageType(messageType),
		RatingValue:    req.RatingValue,
		SelectionValue: req.SelectionValue,
		AiGenerated:    req.AiGenerated,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}
	if err := uow.ConversationRepository().RecordMessageAppended(ctx, conversationId, message.Sender); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toMessageResponse(message), nil
}

func (s *conversationService) History(ctx context.Context, conversationId uuid.UUID, limit int) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = toMessageResponse(m)
	}
	return out, nil
}

func (s *conversationService) Complete(ctx context.Context, id uuid.UUID, req *dto.CompleteConversationRequest) (*dto.ConversationResponse, error) {
	return s.end(ctx, id, func(ctx context.Context, uow unitofwork.UnitOfWork) error {
		return uow.ConversationRepository().Complete(ctx, id, req.Summary, req.KeyTopics)
	})
}

func (s *conversationService) Abandon(ctx context.Context, id uuid.UUID) (*dto.ConversationResponse, error) {
	return s.end(ctx, id, func(ctx context.Context, uow unitofwork.UnitOfWork) error {
		return uow.ConversationRepository().Abandon(ctx, id)
	})
}

func (s *conversationService) end(ctx context.Context, id uuid.UUID, close func(context.Context, unitofwork.UnitOfWork) error) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	conversation, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	// Ending twice is a no-op, not an error.
	if conversation.Status.IsTerminal() {
		return toConversationResponse(conversation), nil
	}

	if err := close(ctx, uow); err != nil {
		return nil, err
	}

	updated, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}

	s.analytics.Emit(ctx, constant.EventConversationEnded, updated.VisitorId, &updated.Id, map[string]interface{}{
		"status":        string(updated.Status),
		"message_count": updated.MessageCount,
	})

	return toConversationResponse(updated), nil
}

func (s *conversationService) ListForVisitor(ctx context.Context, visitorId uuid.UUID, limit int) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedByVisitor{VisitorID: visitorId},
		specification.OrderBy{Field: "started_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ConversationResponse, len(conversations))
	for i, c := range conversations {
		out[i] = toConversationResponse(c)
	}
	return out, nil
}

func (s *conversationService) AvailableTopics() []*dto.TopicInfoResponse {
	available := topics.Available()
	out := make([]*dto.TopicInfoResponse, len(available))
	for i, t := range available {
		out[i] = &dto.TopicInfoResponse{
			Id:          t.ID,
			Name:        t.Name,
			Description: t.Description,
		}
	}
	return out
}

func toConversationResponse(c *entity.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		Id:             c.Id,
		SessionToken:   c.SessionToken,
		VisitorId:      c.VisitorId,
		Topic:          c.Topic,
		Status:         string(c.Status),
		MessageCount:   c.MessageCount,
		UserMessages:   c.UserMessages,
		AssistantMsgs:  c.AssistantMsgs,
		Summary:        c.Summary,
		KeyTopics:      c.KeyTopics,
		StartedAt:      c.StartedAt,
		LastActivityAt: c.LastActivityAt,
		EndedAt:        c.EndedAt,
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Sender:         string(m.Sender),
		Content:        m.Content,
		MessageType:    string(m.MessageType),
		RatingValue:    m.RatingValue,
		SelectionValue: m.SelectionValue,
		AiGenerated:    m.AiGenerated,
		CreatedAt:      m.CreatedAt,
	}
}
