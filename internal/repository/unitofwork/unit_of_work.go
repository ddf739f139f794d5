package unitofwork

import (
	"context"

	"tobago-concierge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	VisitorRepository() contract.VisitorRepository
	DeviceSignatureRepository() contract.DeviceSignatureRepository

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository

	MemoryRepository() contract.MemoryRepository
	RatingRepository() contract.RatingRepository

	CachedAnswerRepository() contract.CachedAnswerRepository
	AnalyticsRepository() contract.AnalyticsRepository
}
