package service

import (
	"context"
	"encoding/json"
	"time"

	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/pkg/logger"
	"tobago-concierge-be/internal/repository/memory"
	"tobago-concierge-be/internal/repository/unitofwork"
	"tobago-concierge-be/pkg/events"
	pktNats "tobago-concierge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the analytics topic: every event is persisted for
// the stats endpoints and mirrored to NATS for any external listeners.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	natsPub    *pktNats.Publisher
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		natsPub:    natsPub,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishAnalyticsEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("analytics-consumer", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid on retry
		return
	}

	event := &entity.AnalyticsEvent{
		EventType:      payload.EventType,
		VisitorId:      payload.VisitorId,
		ConversationId: payload.ConversationId,
		EventData:      payload.EventData,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AnalyticsRepository().Create(ctx, event); err != nil {
		cs.logger.Error("analytics-consumer", "Failed to persist event", map[string]interface{}{
			"event_type": payload.EventType,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	// Mirror to NATS; external consumers are optional so a publish failure
	// does not retry the already-persisted event. The ids ride along in the
	// payload because the subject alone does not identify the visitor.
	if cs.natsPub != nil {
		data := map[string]interface{}{}
		for k, v := range payload.EventData {
			data[k] = v
		}
		if payload.VisitorId != nil {
			data["visitor_id"] = payload.VisitorId.String()
		}
		if payload.ConversationId != nil {
			data["conversation_id"] = payload.ConversationId.String()
		}
		evt := events.BaseEvent{
			Type:       payload.EventType,
			Data:       data,
			OccurredAt: time.Now(),
		}
		if err := cs.natsPub.Publish(ctx, evt); err != nil {
			cs.logger.Warn("analytics-consumer", "Failed to mirror event to NATS", map[string]interface{}{
				"event_type": payload.EventType,
				"error":      err.Error(),
			})
		}
	}

	msg.Ack()
}

// ContextInvalidationHandler returns a bus handler that drops the local
// context cache entry for the visitor named in a memory or rating event.
// Writes on other instances only reach this cache through the bus.
func ContextInvalidationHandler(cache *memory.ContextCache) pktNats.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		if visitorId, ok := event.Payload()["visitor_id"].(string); ok && visitorId != "" {
			cache.Invalidate(visitorId)
		}
		return nil
	}
}
