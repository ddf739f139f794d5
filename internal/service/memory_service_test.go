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

func newMemoryFixture() (IMemoryService, *fakeUow, *fakeAnalytics, *memory.ContextCache) {
	uow := newFakeUow()
	analytics := &fakeAnalytics{}
	cache := memory.NewContextCache(time.Minute)
	svc := NewMemoryService(&fakeFactory{uow: uow}, analytics, cache, testEngineConfig())
	return svc, uow, analytics, cache
}

func TestSaveMemoryDefaultsImportance(t *testing.T) {
	svc, uow, analytics, _ := newMemoryFixture()
	visitor := seedVisitor(t, uow)

	raw := "mentioned they are vegetarian"
	res, err := svc.Save(context.Background(), &dto.SaveMemoryRequest{
		VisitorId:  visitor.Id,
		MemoryType: "preference",
		RawText:    &raw,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if res.Importance == nil || *res.Importance != defaultMemoryImportance {
		t.Errorf("Importance = %v, want default %d", res.Importance, defaultMemoryImportance)
	}
	if res.ExpiresAt != nil {
		t.Error("no TTL requested, ExpiresAt must stay nil")
	}

	types := analytics.types()
	if len(types) != 1 || types[0] != constant.EventMemorySaved {
		t.Errorf("analytics events = %v", types)
	}
}

func TestSaveMemoryWithTTL(t *testing.T) {
	svc, uow, _, _ := newMemoryFixture()
	visitor := seedVisitor(t, uow)

	sentiment := "positive"
	importance := 8
	res, err := svc.Save(context.Background(), &dto.SaveMemoryRequest{
		VisitorId:  visitor.Id,
		MemoryType: "mention",
		Sentiment:  &sentiment,
		Importance: &importance,
		TTLDays:    30,
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.ExpiresAt == nil {
		t.Fatal("TTLDays must set ExpiresAt")
	}
	want := time.Now().AddDate(0, 0, 30)
	if diff := res.ExpiresAt.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("ExpiresAt = %v, want ~%v", res.ExpiresAt, want)
	}
	if res.Sentiment == nil || *res.Sentiment != "positive" {
		t.Errorf("Sentiment = %v", res.Sentiment)
	}
}

func TestSaveMemoryUnknownVisitor(t *testing.T) {
	svc, _, _, _ := newMemoryFixture()

	_, err := svc.Save(context.Background(), &dto.SaveMemoryRequest{
		VisitorId:  uuid.New(),
		MemoryType: "mention",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSaveMemoryInvalidatesContextCache(t *testing.T) {
	svc, uow, _, cache := newMemoryFixture()
	visitor := seedVisitor(t, uow)

	cache.Save(visitor.Id.String(), "stale context")

	if _, err := svc.Save(context.Background(), &dto.SaveMemoryRequest{
		VisitorId:  visitor.Id,
		MemoryType: "complaint",
	}); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get(visitor.Id.String()); ok {
		t.Error("context cache must be invalidated after a new memory")
	}
}

func TestQueryFiltersByType(t *testing.T) {
	svc, uow, _, _ := newMemoryFixture()
	visitor := seedVisitor(t, uow)

	for _, memType := range []string{"preference", "mention", "preference"} {
		if _, err := svc.Save(context.Background(), &dto.SaveMemoryRequest{
			VisitorId:  visitor.Id,
			MemoryType: memType,
		}); err != nil {
			t.Fatal(err)
		}
	}

	out, err := svc.Query(context.Background(), visitor.Id, &dto.QueryMemoriesRequest{MemoryType: "preference"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2 preferences", len(out))
	}
	for _, m := range out {
		if m.MemoryType != "preference" {
			t.Errorf("MemoryType = %q", m.MemoryType)
		}
	}
}

func TestQueryScopedToVisitor(t *testing.T) {
	svc, uow, _, _ := newMemoryFixture()
	visitor := seedVisitor(t, uow)
	other := seedVisitor(t, uow)

	if _, err := svc.Save(context.Background(), &dto.SaveMemoryRequest{
		VisitorId: visitor.Id, MemoryType: "mention",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(context.Background(), &dto.SaveMemoryRequest{
		VisitorId: other.Id, MemoryType: "mention",
	}); err != nil {
		t.Fatal(err)
	}

	out, err := svc.Query(context.Background(), visitor.Id, &dto.QueryMemoriesRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].VisitorId != visitor.Id {
		t.Errorf("query leaked across visitors: %+v", out)
	}
}

func TestPruneExpired(t *testing.T) {
	svc, uow, _, _ := newMemoryFixture()
	visitor := seedVisitor(t, uow)

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(0, 0, 1)
	uow.memories.store = append(uow.memories.store,
		&entity.Memory{VisitorId: visitor.Id, MemoryType: entity.MemoryMention, ExpiresAt: &past},
		&entity.Memory{VisitorId: visitor.Id, MemoryType: entity.MemoryMention, ExpiresAt: &future},
		&entity.Memory{VisitorId: visitor.Id, MemoryType: entity.MemoryMention},
	)

	pruned, err := svc.PruneExpired(context.Background())
	if err != nil {
		t.Fatalf("PruneExpired() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if len(uow.memories.store) != 2 {
		t.Errorf("remaining = %d, want 2", len(uow.memories.store))
	}
}
