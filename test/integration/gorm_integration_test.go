package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"
	"tobago-concierge-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.VisitorRepository())
	assert.NotNil(t, uow.ConversationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Visitor Repository", func(t *testing.T) {
		count, err := uow.VisitorRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Visitor count: %d", count)
	})

	t.Run("Check Cached Answer Repository", func(t *testing.T) {
		stats, err := uow.CachedAnswerRepository().Stats(context.Background())
		assert.NoError(t, err)
		t.Logf("Cached answers: %d entries, %d hits", stats.Entries, stats.TotalHits)
	})

	t.Run("Check Transactional Rating With Memory", func(t *testing.T) {
		visitor := &entity.Visitor{
			Name: "Integration Test Visitor",
		}
		err := uow.VisitorRepository().Create(context.Background(), visitor)
		assert.NoError(t, err)

		conversation := &entity.Conversation{
			SessionToken: "integration-" + uuid.New().String(),
			VisitorId:    &visitor.Id,
			Topic:        "restaurant",
			Status:       entity.ConversationActive,
		}
		err = uow.ConversationRepository().Save(context.Background(), conversation)
		assert.NoError(t, err)

		// Transaction Test
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		review := "Best curry crab on the island"
		rating := &entity.Rating{
			VisitorId:      visitor.Id,
			ConversationId: &conversation.Id,
			Category:       entity.CategoryRestaurant,
			PlaceName:      "Miss Jean's",
			OverallRating:  5,
			ReviewText:     &review,
		}
		err = uow.RatingRepository().Create(ctx, rating)
		assert.NoError(t, err)

		sentiment := entity.SentimentPositive
		importance := 9
		subject := rating.PlaceName
		derived := &entity.Memory{
			VisitorId:      visitor.Id,
			ConversationId: &conversation.Id,
			MemoryType:     entity.MemoryRating,
			Subject:        &subject,
			Sentiment:      &sentiment,
			Rating:         &rating.OverallRating,
			Importance:     &importance,
		}
		err = uow.MemoryRepository().Create(ctx, derived)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		found, err := uow.MemoryRepository().FindAll(ctx,
			specification.OwnedByVisitor{VisitorID: visitor.Id},
			specification.ByMemoryType{MemoryType: string(entity.MemoryRating)},
		)
		assert.NoError(t, err)
		assert.NotEmpty(t, found)

		t.Log("Successfully created Rating with derived Memory in Transaction")
	})
}
