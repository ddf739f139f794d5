package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/memory"

	"github.com/google/uuid"
)

func newRatingFixture() (IRatingService, *fakeUow, *fakeAnalytics, *memory.ContextCache) {
	uow := newFakeUow()
	analytics := &fakeAnalytics{}
	cache := memory.NewContextCache(time.Minute)
	svc := NewRatingService(&fakeFactory{uow: uow}, analytics, cache)
	return svc, uow, analytics, cache
}

func seedVisitor(t *testing.T, uow *fakeUow) *entity.Visitor {
	t.Helper()
	v := &entity.Visitor{Name: "Friend", VisitCount: 1}
	if err := uow.visitors.Create(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestSaveRatingWritesDerivedMemory(t *testing.T) {
	svc, uow, analytics, _ := newRatingFixture()
	visitor := seedVisitor(t, uow)

	review := "Best curry crab on the island, hands down."
	recommend := true
	res, err := svc.Save(context.Background(), &dto.SaveRatingRequest{
		VisitorId:      visitor.Id,
		Category:       "restaurant",
		PlaceName:      "Miss Jean's",
		OverallRating:  5,
		ReviewText:     &review,
		WouldRecommend: &recommend,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if res.PlaceName != "Miss Jean's" || res.OverallRating != 5 {
		t.Errorf("response = %+v", res)
	}

	if len(uow.ratings.store) != 1 {
		t.Fatalf("ratings stored = %d, want 1", len(uow.ratings.store))
	}
	if len(uow.memories.store) != 1 {
		t.Fatalf("memories stored = %d, want 1", len(uow.memories.store))
	}

	mem := uow.memories.store[0]
	if mem.MemoryType != entity.MemoryRating {
		t.Errorf("MemoryType = %v", mem.MemoryType)
	}
	if mem.Subject == nil || *mem.Subject != "Miss Jean's" {
		t.Error("derived memory must carry the place name as subject")
	}
	if mem.Sentiment == nil || *mem.Sentiment != entity.SentimentPositive {
		t.Errorf("Sentiment = %v, want positive for a 5-star review", mem.Sentiment)
	}
	if mem.Importance == nil || *mem.Importance != 9 {
		t.Errorf("Importance = %v, want 9 for an extreme score", mem.Importance)
	}

	// Both rows in one transaction.
	if uow.begun != 1 || uow.committed != 1 {
		t.Errorf("begun/committed = %d/%d, want 1/1", uow.begun, uow.committed)
	}

	types := analytics.types()
	if len(types) != 1 || types[0] != constant.EventRatingSaved {
		t.Errorf("analytics events = %v", types)
	}
}

func TestSaveRatingMiddlingScoreImportance(t *testing.T) {
	svc, uow, _, _ := newRatingFixture()
	visitor := seedVisitor(t, uow)

	if _, err := svc.Save(context.Background(), &dto.SaveRatingRequest{
		VisitorId:     visitor.Id,
		Category:      "beach",
		PlaceName:     "Store Bay",
		OverallRating: 3,
	}); err != nil {
		t.Fatal(err)
	}

	mem := uow.memories.store[0]
	if *mem.Importance != 7 {
		t.Errorf("Importance = %d, want 7", *mem.Importance)
	}
	if *mem.Sentiment != entity.SentimentNeutral {
		t.Errorf("Sentiment = %v, want neutral", *mem.Sentiment)
	}
}

func TestSaveRatingUnknownVisitor(t *testing.T) {
	svc, _, _, _ := newRatingFixture()

	_, err := svc.Save(context.Background(), &dto.SaveRatingRequest{
		VisitorId:     uuid.New(),
		Category:      "restaurant",
		PlaceName:     "Nowhere",
		OverallRating: 4,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSaveRatingInvalidatesContextCache(t *testing.T) {
	svc, uow, _, cache := newRatingFixture()
	visitor := seedVisitor(t, uow)

	cache.Save(visitor.Id.String(), "stale context")

	if _, err := svc.Save(context.Background(), &dto.SaveRatingRequest{
		VisitorId:     visitor.Id,
		Category:      "activity",
		PlaceName:     "Nylon Pool Tour",
		OverallRating: 4,
	}); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get(visitor.Id.String()); ok {
		t.Error("context cache must be invalidated after a new rating")
	}
}

func TestTopPlaces(t *testing.T) {
	svc, uow, _, _ := newRatingFixture()
	visitor := seedVisitor(t, uow)

	seed := []struct {
		place    string
		category string
		score    int
	}{
		{"Miss Jean's", "restaurant", 5},
		{"Miss Jean's", "restaurant", 4},
		{"Beach Shack", "restaurant", 3},
		{"Pigeon Point", "beach", 5},
	}
	for _, s := range seed {
		if _, err := svc.Save(context.Background(), &dto.SaveRatingRequest{
			VisitorId:     visitor.Id,
			Category:      s.category,
			PlaceName:     s.place,
			OverallRating: s.score,
		}); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := svc.TopPlaces(context.Background(), "restaurant", 10)
	if err != nil {
		t.Fatalf("TopPlaces() error = %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("len = %d, want 2 restaurants", len(scores))
	}
	if scores[0].PlaceName != "Miss Jean's" || scores[0].AverageScore != 4.5 || scores[0].RatingCount != 2 {
		t.Errorf("top place = %+v", scores[0])
	}
	if scores[1].PlaceName != "Beach Shack" {
		t.Errorf("second place = %+v", scores[1])
	}
}

func TestListForVisitor(t *testing.T) {
	svc, uow, _, _ := newRatingFixture()
	visitor := seedVisitor(t, uow)
	other := seedVisitor(t, uow)

	if _, err := svc.Save(context.Background(), &dto.SaveRatingRequest{
		VisitorId: visitor.Id, Category: "beach", PlaceName: "Castara Bay", OverallRating: 5,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(context.Background(), &dto.SaveRatingRequest{
		VisitorId: other.Id, Category: "beach", PlaceName: "Englishman's Bay", OverallRating: 4,
	}); err != nil {
		t.Fatal(err)
	}

	ratings, err := svc.ListForVisitor(context.Background(), visitor.Id, 0)
	if err != nil {
		t.Fatalf("ListForVisitor() error = %v", err)
	}
	if len(ratings) != 1 || ratings[0].PlaceName != "Castara Bay" {
		t.Errorf("ratings = %+v", ratings)
	}
}
