package service

import (
	"context"
	"encoding/json"

	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// IAnalyticsService fans analytics events out onto the in-process bus.
// Emission is fire-and-forget: a failed publish is logged, never surfaced to
// the request that triggered it.
type IAnalyticsService interface {
	Emit(ctx context.Context, eventType string, visitorId, conversationId *uuid.UUID, data map[string]interface{})
}

type analyticsService struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewAnalyticsService(publisher IPublisherService, log logger.ILogger) IAnalyticsService {
	return &analyticsService{
		publisher: publisher,
		logger:    log,
	}
}

func (s *analyticsService) Emit(ctx context.Context, eventType string, visitorId, conversationId *uuid.UUID, data map[string]interface{}) {
	payload := dto.PublishAnalyticsEventMessage{
		EventType:      eventType,
		VisitorId:      visitorId,
		ConversationId: conversationId,
		EventData:      data,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("analytics", "Failed to marshal analytics event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
		return
	}

	if err := s.publisher.Publish(ctx, raw); err != nil {
		s.logger.Error("analytics", "Failed to publish analytics event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
