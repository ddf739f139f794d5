package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tobago-concierge-be/internal/config"
	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/pkg/logger"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"
	"tobago-concierge-be/pkg/concierge/personality"
	"tobago-concierge-be/pkg/concierge/sentiment"
	"tobago-concierge-be/pkg/llm"

	"github.com/google/uuid"
)

type IPersonalityService interface {
	// ClassifyTraits re-scores the visitor's traits from memories and
	// ratings, merges new tags onto the profile, and returns the full set.
	ClassifyTraits(ctx context.Context, visitorId uuid.UUID) ([]string, error)
	Suggestions(ctx context.Context, visitorId uuid.UUID) (*dto.SuggestionsResponse, error)
	Sentiment(ctx context.Context, visitorId uuid.UUID) (*dto.SentimentResponse, error)
}

type personalityService struct {
	uowFactory  unitofwork.RepositoryFactory
	analytics   IAnalyticsService
	llmProvider llm.LLMProvider
	classifier  *personality.Classifier
	logger      logger.ILogger
}

func NewPersonalityService(
	uowFactory unitofwork.RepositoryFactory,
	analytics IAnalyticsService,
	llmProvider llm.LLMProvider,
	engine config.EngineConfig,
	log logger.ILogger,
) IPersonalityService {
	return &personalityService{
		uowFactory:  uowFactory,
		analytics:   analytics,
		llmProvider: llmProvider,
		classifier:  personality.NewClassifier(engine.TraitScoreThreshold, engine.TraitMaxTags),
		logger:      log,
	}
}

func (s *personalityService) ClassifyTraits(ctx context.Context, visitorId uuid.UUID) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: visitorId})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, fmt.Errorf("visitor %s: %w", visitorId, ErrNotFound)
	}

	memories, err := uow.MemoryRepository().FindAll(ctx,
		specification.OwnedByVisitor{VisitorID: visitorId},
		specification.NotExpired{Now: time.Now()},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: 50},
	)
	if err != nil {
		return nil, err
	}

	ratings, err := uow.RatingRepository().FindAll(ctx,
		specification.OwnedByVisitor{VisitorID: visitorId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: 20},
	)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(memories))
	for _, m := range memories {
		if m.RawText != nil {
			texts = append(texts, *m.RawText)
		} else if m.Subject != nil {
			texts = append(texts, *m.Subject)
		}
	}

	evidence := make([]personality.RatingEvidence, len(ratings))
	for i, r := range ratings {
		review := ""
		if r.ReviewText != nil {
			review = *r.ReviewText
		}
		evidence[i] = personality.RatingEvidence{
			Category:   string(r.Category),
			ReviewText: review,
		}
	}

	tags := s.classifier.Classify(texts, evidence)
	if len(tags) > 0 {
		if err := uow.VisitorRepository().AddTraitTags(ctx, visitorId, tags); err != nil {
			return nil, err
		}
		s.analytics.Emit(ctx, constant.EventTraitsClassified, &visitorId, nil, map[string]interface{}{
			"tags": tags,
		})
	}

	// Return the merged profile set, not just this pass.
	updated, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: visitorId})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return tags, nil
	}
	return updated.PersonalityTags, nil
}

func (s *personalityService) Suggestions(ctx context.Context, visitorId uuid.UUID) (*dto.SuggestionsResponse, error) {
	traits, err := s.ClassifyTraits(ctx, visitorId)
	if err != nil {
		return nil, err
	}

	s.analytics.Emit(ctx, constant.EventSuggestionsRequested, &visitorId, nil, nil)

	return &dto.SuggestionsResponse{
		VisitorId:   visitorId,
		Traits:      traits,
		Suggestions: personality.ActivitiesFor(traits),
		AiTip:       s.aiTip(ctx, traits),
	}, nil
}

// aiTip asks the model for one short personalized line; any failure falls
// back to a fixed tip rather than failing the request.
func (s *personalityService) aiTip(ctx context.Context, traits []string) string {
	prompt := "You are a friendly Tobago travel concierge. In one short sentence, suggest something to do in Tobago"
	if len(traits) > 0 {
		prompt += " for a visitor who is " + strings.Join(traits, ", ")
	}
	prompt += "."

	tip, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.8))
	if err != nil {
		s.logger.Warn("personality", "Tip generation failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.FallbackTip
	}
	return strings.TrimSpace(tip)
}

func (s *personalityService) Sentiment(ctx context.Context, visitorId uuid.UUID) (*dto.SentimentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: visitorId})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, fmt.Errorf("visitor %s: %w", visitorId, ErrNotFound)
	}

	memories, err := uow.MemoryRepository().FindAll(ctx,
		specification.OwnedByVisitor{VisitorID: visitorId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: 50},
	)
	if err != nil {
		return nil, err
	}

	ratings, err := uow.RatingRepository().FindAll(ctx,
		specification.OwnedByVisitor{VisitorID: visitorId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: 20},
	)
	if err != nil {
		return nil, err
	}

	sentiments := make([]string, 0, len(memories))
	for _, m := range memories {
		if m.Sentiment != nil {
			sentiments = append(sentiments, string(*m.Sentiment))
		} else {
			sentiments = append(sentiments, "")
		}
	}
	scores := make([]int, len(ratings))
	for i, r := range ratings {
		scores[i] = r.OverallRating
	}

	rollup := sentiment.Analyze(sentiments, scores)
	return &dto.SentimentResponse{
		Overall: string(rollup.Overall),
		Score:   rollup.Score,
		Breakdown: map[string]int{
			"positive": rollup.Breakdown.Positive,
			"neutral":  rollup.Breakdown.Neutral,
			"negative": rollup.Breakdown.Negative,
		},
	}, nil
}
