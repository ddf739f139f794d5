package contract

import (
	"context"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	// Save inserts the conversation keyed by session token. When the token
	// already exists the insert is a no-op and the existing row is loaded back
	// into the entity, so retried requests converge on one conversation.
	Save(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	RecordMessageAppended(ctx context.Context, id uuid.UUID, sender entity.MessageSender) error
	LinkVisitor(ctx context.Context, id uuid.UUID, visitorId uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID, summary *string, keyTopics []string) error
	Abandon(ctx context.Context, id uuid.UUID) error
	UpdateTopic(ctx context.Context, id uuid.UUID, topic string) error
}
