package service

import (
	"context"
	"errors"
	"testing"

	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/entity"

	"github.com/google/uuid"
)

func newPersonalityFixture() (IPersonalityService, *fakeUow, *fakeAnalytics) {
	uow := newFakeUow()
	analytics := &fakeAnalytics{}
	model := &fakeLLM{reply: "Grab a roti and watch the goats race!"}
	svc := NewPersonalityService(&fakeFactory{uow: uow}, analytics, model, testEngineConfig(), noopLogger{})
	return svc, uow, analytics
}

func TestClassifyTraitsFromEvidence(t *testing.T) {
	svc, uow, analytics := newPersonalityFixture()
	visitor := seedVisitor(t, uow)

	// "local food" scores the foodie indicators "food" and "local food",
	// and the restaurant rating adds two more.
	raw := "the local food here is amazing"
	uow.memories.store = append(uow.memories.store, &entity.Memory{
		VisitorId:  visitor.Id,
		MemoryType: entity.MemoryMention,
		RawText:    &raw,
	})
	uow.ratings.store = append(uow.ratings.store, &entity.Rating{
		VisitorId:     visitor.Id,
		Category:      entity.CategoryRestaurant,
		PlaceName:     "Miss Jean's",
		OverallRating: 5,
	})

	tags, err := svc.ClassifyTraits(context.Background(), visitor.Id)
	if err != nil {
		t.Fatalf("ClassifyTraits() error = %v", err)
	}

	if len(tags) != 1 || tags[0] != "foodie" {
		t.Errorf("tags = %v, want [foodie]", tags)
	}
	if got := uow.visitors.store[visitor.Id].PersonalityTags; len(got) != 1 || got[0] != "foodie" {
		t.Errorf("persisted tags = %v", got)
	}

	types := analytics.types()
	if len(types) != 1 || types[0] != constant.EventTraitsClassified {
		t.Errorf("analytics events = %v", types)
	}
}

func TestClassifyTraitsMergesWithExisting(t *testing.T) {
	svc, uow, _ := newPersonalityFixture()
	visitor := seedVisitor(t, uow)
	uow.visitors.store[visitor.Id].PersonalityTags = []string{"adventurous"}

	raw := "the local food here is amazing"
	uow.memories.store = append(uow.memories.store, &entity.Memory{
		VisitorId:  visitor.Id,
		MemoryType: entity.MemoryMention,
		RawText:    &raw,
	})
	uow.ratings.store = append(uow.ratings.store, &entity.Rating{
		VisitorId:     visitor.Id,
		Category:      entity.CategoryRestaurant,
		PlaceName:     "Miss Jean's",
		OverallRating: 4,
	})

	tags, err := svc.ClassifyTraits(context.Background(), visitor.Id)
	if err != nil {
		t.Fatal(err)
	}

	// Earlier tags survive; new evidence appends.
	if len(tags) != 2 || tags[0] != "adventurous" || tags[1] != "foodie" {
		t.Errorf("tags = %v, want [adventurous foodie]", tags)
	}
}

func TestClassifyTraitsNoEvidence(t *testing.T) {
	svc, uow, analytics := newPersonalityFixture()
	visitor := seedVisitor(t, uow)

	tags, err := svc.ClassifyTraits(context.Background(), visitor.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want none", tags)
	}
	if len(analytics.types()) != 0 {
		t.Error("no event without a classification")
	}
}

func TestClassifyTraitsUnknownVisitor(t *testing.T) {
	svc, _, _ := newPersonalityFixture()

	_, err := svc.ClassifyTraits(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSuggestionsFollowTraits(t *testing.T) {
	svc, uow, _ := newPersonalityFixture()
	visitor := seedVisitor(t, uow)
	uow.visitors.store[visitor.Id].PersonalityTags = []string{"foodie"}

	res, err := svc.Suggestions(context.Background(), visitor.Id)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}

	if res.VisitorId != visitor.Id {
		t.Errorf("VisitorId = %v", res.VisitorId)
	}
	if len(res.Traits) != 1 || res.Traits[0] != "foodie" {
		t.Errorf("Traits = %v", res.Traits)
	}
	want := []string{"food tour", "local restaurants", "cooking class"}
	if len(res.Suggestions) != len(want) {
		t.Fatalf("Suggestions = %v", res.Suggestions)
	}
	for i, s := range want {
		if res.Suggestions[i] != s {
			t.Errorf("Suggestions[%d] = %q, want %q", i, res.Suggestions[i], s)
		}
	}
	if res.AiTip != "Grab a roti and watch the goats race!" {
		t.Errorf("AiTip = %q", res.AiTip)
	}
}

func TestSuggestionsTipFallsBack(t *testing.T) {
	uow := newFakeUow()
	model := &fakeLLM{err: errors.New("model unavailable")}
	svc := NewPersonalityService(&fakeFactory{uow: uow}, &fakeAnalytics{}, model, testEngineConfig(), noopLogger{})
	visitor := seedVisitor(t, uow)

	res, err := svc.Suggestions(context.Background(), visitor.Id)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if res.AiTip != constant.FallbackTip {
		t.Errorf("AiTip = %q, want fallback", res.AiTip)
	}
}

func TestSentimentRollup(t *testing.T) {
	svc, uow, _ := newPersonalityFixture()
	visitor := seedVisitor(t, uow)

	pos := entity.SentimentPositive
	neg := entity.SentimentNegative
	uow.memories.store = append(uow.memories.store,
		&entity.Memory{VisitorId: visitor.Id, MemoryType: entity.MemoryMention, Sentiment: &pos},
		&entity.Memory{VisitorId: visitor.Id, MemoryType: entity.MemoryMention, Sentiment: &pos},
		&entity.Memory{VisitorId: visitor.Id, MemoryType: entity.MemoryComplaint, Sentiment: &neg},
	)
	uow.ratings.store = append(uow.ratings.store, &entity.Rating{
		VisitorId:     visitor.Id,
		Category:      entity.CategoryBeach,
		PlaceName:     "Pigeon Point",
		OverallRating: 5,
	})

	res, err := svc.Sentiment(context.Background(), visitor.Id)
	if err != nil {
		t.Fatalf("Sentiment() error = %v", err)
	}

	// 3 positive, 1 negative of 4: balance 0.5 lands just inside "positive".
	if res.Overall != "positive" {
		t.Errorf("Overall = %q, want positive", res.Overall)
	}
	if res.Score != 0.75 {
		t.Errorf("Score = %v, want 0.75", res.Score)
	}
	if res.Breakdown["positive"] != 3 || res.Breakdown["negative"] != 1 || res.Breakdown["neutral"] != 0 {
		t.Errorf("Breakdown = %v", res.Breakdown)
	}
}

func TestSentimentEmptyHistory(t *testing.T) {
	svc, uow, _ := newPersonalityFixture()
	visitor := seedVisitor(t, uow)

	res, err := svc.Sentiment(context.Background(), visitor.Id)
	if err != nil {
		t.Fatal(err)
	}
	if res.Overall != "neutral" || res.Score != 0.5 {
		t.Errorf("rollup = %q/%v, want neutral/0.5", res.Overall, res.Score)
	}
}
