package bootstrap

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"tobago-concierge-be/internal/config"
	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/controller"
	"tobago-concierge-be/internal/pkg/logger"
	"tobago-concierge-be/internal/pkg/mailer"
	"tobago-concierge-be/internal/pkg/serverutils"
	"tobago-concierge-be/internal/repository/memory"
	"tobago-concierge-be/internal/repository/unitofwork"
	"tobago-concierge-be/internal/service"
	"tobago-concierge-be/pkg/llm/factory"

	pktNats "tobago-concierge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	VisitorController      controller.IVisitorController
	ConversationController controller.IConversationController
	ChatController         controller.IChatController
	MemoryController       controller.IMemoryController
	RatingController       controller.IRatingController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory context block cache
	contextCache := memory.NewContextCache(time.Duration(cfg.Engine.ContextCacheTTLSeconds) * time.Second)

	// Memory/rating writes on other instances invalidate this cache through
	// the mirrored analytics events. Per-host durables so every instance
	// keeps its own cursor.
	if natsSub != nil {
		host, _ := os.Hostname()
		host = strings.ReplaceAll(host, ".", "-")
		for _, eventType := range []string{constant.EventMemorySaved, constant.EventRatingSaved} {
			subject := "events." + eventType
			durable := "ctx-invalidate-" + host + "-" + eventType
			if err := natsSub.Subscribe(subject, durable, service.ContextInvalidationHandler(contextCache)); err != nil {
				log.Printf("[WARN] Failed to subscribe to %s: %v", subject, err)
			}
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.AnalyticsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.AnalyticsTopic,
		uowFactory,
		natsPub,
		sysLogger,
	)
	analyticsService := service.NewAnalyticsService(publisherService, sysLogger)

	identityService := service.NewIdentityService(uowFactory, analyticsService, emailService, sysLogger)
	conversationService := service.NewConversationService(uowFactory, analyticsService)
	memoryService := service.NewMemoryService(uowFactory, analyticsService, contextCache, cfg.Engine)
	ratingService := service.NewRatingService(uowFactory, analyticsService, contextCache)
	personalityService := service.NewPersonalityService(uowFactory, analyticsService, llmProvider, cfg.Engine, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		analyticsService,
		contextCache,
		cfg.Engine,
		sysLogger,
	)

	writeRateLimiter := serverutils.RateLimitMiddleware(rdb, cfg.Engine.RateLimitPerMinute)

	// 4. Controllers
	return &Container{
		VisitorController: controller.NewVisitorController(
			identityService,
			personalityService,
			memoryService,
			ratingService,
			conversationService,
			chatService,
		),
		ConversationController: controller.NewConversationController(conversationService),
		ChatController:         controller.NewChatController(chatService, writeRateLimiter),
		MemoryController:       controller.NewMemoryController(memoryService),
		RatingController:       controller.NewRatingController(ratingService, writeRateLimiter),

		ConsumerService: consumerService,
	}
}
