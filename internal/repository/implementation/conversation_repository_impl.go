package implementation

import (
	"context"
	"errors"
	"time"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/mapper"
	"tobago-concierge-be/internal/model"
	"tobago-concierge-be/internal/repository/contract"
	"tobago-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Save(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO conversations (session_token, visitor_id, topic, status, started_at, last_activity_at)
		VALUES (?, ?, ?, 'active', NOW(), NOW())
		ON CONFLICT (session_token) DO NOTHING
	`, m.SessionToken, m.VisitorId, m.Topic).Error
	if err != nil {
		return err
	}

	var stored model.Conversation
	if err := r.db.WithContext(ctx).Where("session_token = ?", m.SessionToken).First(&stored).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ToEntity(&stored)
	return nil
}

func (r *ConversationRepositoryImpl) Update(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RecordMessageAppended bumps the total and per-sender counters plus
// last_activity_at in one statement.
func (r *ConversationRepositoryImpl) RecordMessageAppended(ctx context.Context, id uuid.UUID, sender entity.MessageSender) error {
	updates := map[string]interface{}{
		"message_count":    gorm.Expr("message_count + 1"),
		"last_activity_at": gorm.Expr("NOW()"),
	}
	switch sender {
	case entity.SenderUser:
		updates["user_message_count"] = gorm.Expr("user_message_count + 1")
	case entity.SenderAssistant:
		updates["assistant_message_count"] = gorm.Expr("assistant_message_count + 1")
	}
	return r.db.WithContext(ctx).Model(&model.Conversation{}).Where("id = ?", id).
		Updates(updates).Error
}

func (r *ConversationRepositoryImpl) LinkVisitor(ctx context.Context, id uuid.UUID, visitorId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).Where("id = ?", id).
		Update("visitor_id", visitorId).Error
}

// Complete closes out an active conversation. The status guard keeps a
// retried completion from overwriting a summary written by the first call.
func (r *ConversationRepositoryImpl) Complete(ctx context.Context, id uuid.UUID, summary *string, keyTopics []string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":   string(entity.ConversationCompleted),
		"ended_at": now,
	}
	if summary != nil {
		updates["summary"] = *summary
	}
	if len(keyTopics) > 0 {
		m := r.mapper.ToModel(&entity.Conversation{KeyTopics: keyTopics})
		updates["key_topics"] = m.KeyTopics
	}
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ? AND status = ?", id, string(entity.ConversationActive)).
		Updates(updates).Error
}

func (r *ConversationRepositoryImpl) Abandon(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ? AND status = ?", id, string(entity.ConversationActive)).
		Updates(map[string]interface{}{
			"status":   string(entity.ConversationAbandoned),
			"ended_at": time.Now(),
		}).Error
}

func (r *ConversationRepositoryImpl) UpdateTopic(ctx context.Context, id uuid.UUID, topic string) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).Where("id = ?", id).
		Update("topic", topic).Error
}
