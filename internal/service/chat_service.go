package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tobago-concierge-be/internal/config"
	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/pkg/logger"
	"tobago-concierge-be/internal/repository/memory"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"
	"tobago-concierge-be/pkg/concierge/prompt"
	"tobago-concierge-be/pkg/concierge/topics"
	"tobago-concierge-be/pkg/llm"
	"tobago-concierge-be/pkg/qcache"

	"github.com/google/uuid"
)

type IChatService interface {
	// ProcessTurn runs one full chat exchange: conversation resolution,
	// topic detection, cache probe, context assembly, model call, and
	// message persistence.
	ProcessTurn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error)
	// ContextFor returns the context block the model would see for this
	// visitor right now.
	ContextFor(ctx context.Context, visitorId uuid.UUID) (string, error)
	CacheStats(ctx context.Context) (*dto.CacheStatsResponse, error)
	ClearCache(ctx context.Context) error
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	llmProvider  llm.LLMProvider
	analytics    IAnalyticsService
	contextCache *memory.ContextCache
	builder      *prompt.Builder
	engine       config.EngineConfig
	logger       logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	analytics IAnalyticsService,
	contextCache *memory.ContextCache,
	engine config.EngineConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:   uowFactory,
		llmProvider:  llmProvider,
		analytics:    analytics,
		contextCache: contextCache,
		builder:      prompt.NewBuilder(engine.ContextCharBudget, engine.ImportanceFloor),
		engine:       engine,
		logger:       log,
	}
}

const historyWindow = 10

func (s *chatService) ProcessTurn(ctx context.Context, req *dto.ChatTurnRequest) (*dto.ChatTurnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visitorId, err := s.resolveVisitorId(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	conversation, err := s.resolveConversation(ctx, uow, req, visitorId)
	if err != nil {
		return nil, err
	}
	if conversation.Status.IsTerminal() {
		return nil, fmt.Errorf("cannot chat in %s conversation: %w", conversation.Status, ErrTerminalState)
	}

	firstUserMessage := conversation.UserMessages == 0

	if err := s.appendMessage(ctx, uow, conversation.Id, entity.SenderUser, req.Message, false); err != nil {
		return nil, err
	}

	// Only a conversation's opening question may be served from the shared
	// cache: later turns carry context that a canned answer would ignore.
	if firstUserMessage {
		if cached, err := s.probeCache(ctx, uow, req.Message); err != nil {
			s.logger.Warn("chat", "Answer cache probe failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if cached != nil {
			if err := s.appendMessage(ctx, uow, conversation.Id, entity.SenderAssistant, cached.Answer, false); err != nil {
				return nil, err
			}
			s.analytics.Emit(ctx, constant.EventCacheHit, visitorId, &conversation.Id, map[string]interface{}{
				"hit_count": cached.HitCount + 1,
			})
			return &dto.ChatTurnResponse{
				ConversationId: conversation.Id,
				VisitorId:      visitorId,
				Topic:          conversation.Topic,
				Reply:          cached.Answer,
				Cached:         true,
			}, nil
		}
	}

	contextBlock := s.contextBlockFor(ctx, uow, visitorId)
	history, err := s.recentHistory(ctx, uow, conversation.Id)
	if err != nil {
		return nil, err
	}

	reply, aiGenerated := s.generateReply(ctx, contextBlock, history, req.Message)

	if err := s.appendMessage(ctx, uow, conversation.Id, entity.SenderAssistant, reply, aiGenerated); err != nil {
		return nil, err
	}

	// A fresh answer to an opening question with no personal context is
	// reusable for the next visitor who asks the same thing.
	if aiGenerated && firstUserMessage && visitorId == nil {
		answer := &entity.CachedAnswer{
			QuestionHash: qcache.Normalize(req.Message),
			QuestionText: req.Message,
			Answer:       reply,
		}
		if err := uow.CachedAnswerRepository().Upsert(ctx, answer); err != nil {
			s.logger.Warn("chat", "Failed to store cached answer", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.analytics.Emit(ctx, constant.EventChatTurnCompleted, visitorId, &conversation.Id, map[string]interface{}{
		"topic":        conversation.Topic,
		"ai_generated": aiGenerated,
	})

	return &dto.ChatTurnResponse{
		ConversationId: conversation.Id,
		VisitorId:      visitorId,
		Topic:          conversation.Topic,
		Reply:          reply,
		Cached:         false,
	}, nil
}

func (s *chatService) resolveVisitorId(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ChatTurnRequest) (*uuid.UUID, error) {
	if req.VisitorId != nil {
		return req.VisitorId, nil
	}
	if req.Fingerprint == "" {
		return nil, nil
	}
	sig, err := uow.DeviceSignatureRepository().FindOne(ctx, specification.ByFingerprint{Fingerprint: req.Fingerprint})
	if err != nil {
		return nil, err
	}
	if sig == nil {
		return nil, nil
	}
	return sig.VisitorId, nil
}

func (s *chatService) resolveConversation(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ChatTurnRequest, visitorId *uuid.UUID) (*entity.Conversation, error) {
	topic := topics.DefaultTopicID
	if match := topics.FindByTrigger(req.Message); match != nil {
		topic = match.ID
	}

	conversation := &entity.Conversation{
		SessionToken: req.SessionToken,
		VisitorId:    visitorId,
		Topic:        topic,
		Status:       entity.ConversationActive,
	}
	if err := uow.ConversationRepository().Save(ctx, conversation); err != nil {
		return nil, err
	}

	// The turn handler owns the explicit link step for its own session: a
	// conversation that predates the identity adopts the resolved visitor,
	// and a conversation held by someone else is an upstream identity bug.
	if visitorId != nil {
		switch {
		case conversation.VisitorId == nil:
			if err := uow.ConversationRepository().LinkVisitor(ctx, conversation.Id, *visitorId); err != nil {
				return nil, err
			}
			conversation.VisitorId = visitorId
		case *conversation.VisitorId != *visitorId:
			return nil, fmt.Errorf("conversation already belongs to another visitor: %w", ErrConflict)
		}
	}

	// An existing free-chat conversation upgrades to the first concrete
	// topic the visitor lands on; a concrete topic never downgrades.
	if conversation.Topic == topics.DefaultTopicID && topic != topics.DefaultTopicID {
		if err := uow.ConversationRepository().UpdateTopic(ctx, conversation.Id, topic); err != nil {
			return nil, err
		}
		conversation.Topic = topic
	}

	return conversation, nil
}

func (s *chatService) appendMessage(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, sender entity.MessageSender, content string, aiGenerated bool) error {
	message := &entity.Message{
		ConversationId: conversationId,
		Sender:         sender,
		Content:        content,
		MessageType:    entity.MessageText,
		AiGenerated:    aiGenerated,
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return err
	}
	if err := uow.ConversationRepository().RecordMessageAppended(ctx, conversationId, sender); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *chatService) probeCache(ctx context.Context, uow unitofwork.UnitOfWork, question string) (*entity.CachedAnswer, error) {
	hash := qcache.Normalize(question)
	cached, err := uow.CachedAnswerRepository().FindByHash(ctx, hash)
	if err != nil || cached == nil {
		return nil, err
	}
	if err := uow.CachedAnswerRepository().RecordHit(ctx, hash); err != nil {
		return nil, err
	}
	return cached, nil
}

// contextBlockFor assembles (or reuses) the visitor context block. All four
// reads are independent, so they run concurrently.
func (s *chatService) contextBlockFor(ctx context.Context, uow unitofwork.UnitOfWork, visitorId *uuid.UUID) string {
	if visitorId == nil {
		return s.builder.Build(nil, nil, nil, nil)
	}
	if block, ok := s.contextCache.Get(visitorId.String()); ok {
		return block
	}

	var (
		wg            sync.WaitGroup
		visitor       *entity.Visitor
		memories      []*entity.Memory
		ratings       []*entity.Rating
		conversations []*entity.Conversation
		errs          [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		visitor, errs[0] = uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: *visitorId})
	}()
	go func() {
		defer wg.Done()
		memories, errs[1] = uow.MemoryRepository().FindAll(ctx,
			specification.OwnedByVisitor{VisitorID: *visitorId},
			specification.NotExpired{Now: time.Now()},
			specification.MinImportance{Floor: s.engine.ImportanceFloor},
			specification.OrderBy{Field: "importance", Desc: true},
			specification.Limit{N: s.engine.ContextTopMemories},
		)
	}()
	go func() {
		defer wg.Done()
		ratings, errs[2] = uow.RatingRepository().FindAll(ctx,
			specification.OwnedByVisitor{VisitorID: *visitorId},
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Limit{N: s.engine.ContextTopRatings},
		)
	}()
	go func() {
		defer wg.Done()
		conversations, errs[3] = uow.ConversationRepository().FindAll(ctx,
			specification.OwnedByVisitor{VisitorID: *visitorId},
			specification.OrderBy{Field: "started_at", Desc: true},
			specification.Limit{N: 5},
		)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.logger.Warn("chat", "Context assembly read failed", map[string]interface{}{
				"error": err.Error(),
			})
			return s.builder.Build(nil, nil, nil, nil)
		}
	}
	if visitor == nil {
		return s.builder.Build(nil, nil, nil, nil)
	}

	block := s.builder.Build(
		toProfile(visitor),
		toMemoryLines(memories),
		toRatingLines(ratings),
		toHistory(conversations),
	)
	s.contextCache.Save(visitorId.String(), block)
	return block
}

func (s *chatService) recentHistory(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID) ([]*entity.Message, error) {
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: historyWindow},
	)
	if err != nil {
		return nil, err
	}
	// Oldest first for the model.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *chatService) generateReply(ctx context.Context, contextBlock string, history []*entity.Message, userMessage string) (string, bool) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.ConciergeSystemPrompt + "\n\n" + contextBlock,
	})
	for _, m := range history {
		role := constant.ChatMessageRoleUser
		if m.Sender == entity.SenderAssistant {
			role = constant.ChatMessageRoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	// History already ends with the user message persisted above; append
	// only if the window missed it.
	if len(history) == 0 || history[len(history)-1].Content != userMessage {
		messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: userMessage})
	}

	reply, err := s.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.9))
	if err != nil {
		s.logger.Error("chat", "Model call failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.FallbackReply, false
	}
	return reply, true
}

func (s *chatService) ContextFor(ctx context.Context, visitorId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: visitorId})
	if err != nil {
		return "", err
	}
	if visitor == nil {
		return "", fmt.Errorf("visitor %s: %w", visitorId, ErrNotFound)
	}
	return s.contextBlockFor(ctx, uow, &visitorId), nil
}

func (s *chatService) CacheStats(ctx context.Context) (*dto.CacheStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := uow.CachedAnswerRepository().Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CacheStatsResponse{
		Entries:      stats.Entries,
		TotalHits:    stats.TotalHits,
		TopQuestions: stats.TopQuestions,
	}, nil
}

func (s *chatService) ClearCache(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CachedAnswerRepository().Clear(ctx)
}

func toProfile(v *entity.Visitor) *prompt.Profile {
	p := &prompt.Profile{
		Name:            v.Name,
		VisitCount:      v.VisitCount,
		FirstSeenAt:     v.FirstSeenAt,
		LastSeenAt:      v.LastSeenAt,
		PersonalityTags: v.PersonalityTags,
	}
	if v.ArrivalMethod != nil {
		p.ArrivalMethod = string(*v.ArrivalMethod)
	}
	if v.PersonalityNotes != nil {
		p.PersonalityNotes = *v.PersonalityNotes
	}
	return p
}

func toMemoryLines(memories []*entity.Memory) []prompt.MemoryLine {
	lines := make([]prompt.MemoryLine, len(memories))
	for i, m := range memories {
		line := prompt.MemoryLine{
			Type:   string(m.MemoryType),
			Rating: m.Rating,
		}
		if m.Category != nil {
			line.Category = *m.Category
		}
		if m.Subject != nil {
			line.Subject = *m.Subject
		}
		if m.Sentiment != nil {
			line.Sentiment = string(*m.Sentiment)
		}
		if m.RawText != nil {
			line.RawText = *m.RawText
		}
		if m.Importance != nil {
			line.Importance = *m.Importance
		}
		lines[i] = line
	}
	return lines
}

func toRatingLines(ratings []*entity.Rating) []prompt.RatingLine {
	lines := make([]prompt.RatingLine, len(ratings))
	for i, r := range ratings {
		line := prompt.RatingLine{
			PlaceName:      r.PlaceName,
			Category:       string(r.Category),
			OverallRating:  r.OverallRating,
			WouldRecommend: r.WouldRecommend,
		}
		if r.ReviewText != nil {
			line.ReviewText = *r.ReviewText
		}
		lines[i] = line
	}
	return lines
}

func toHistory(conversations []*entity.Conversation) *prompt.History {
	if len(conversations) == 0 {
		return nil
	}
	h := &prompt.History{
		TotalConversations: len(conversations),
	}
	last := conversations[0]
	h.LastTopic = last.Topic
	if last.Summary != nil {
		h.LastSummary = *last.Summary
	}
	h.KeyTopics = last.KeyTopics
	return h
}
