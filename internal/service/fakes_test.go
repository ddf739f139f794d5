package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/repository/contract"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation mimics what the postgres driver returns on a duplicate key.
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// fakeUow is an in-memory UnitOfWork for service tests. Embedded contract
// interfaces keep the fakes small: only methods a test exercises are
// overridden, anything else panics loudly.
type fakeUow struct {
	visitors      *fakeVisitorRepo
	signatures    *fakeSignatureRepo
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo
	memories      *fakeMemoryRepo
	ratings       *fakeRatingRepo
	cached        *fakeCachedAnswerRepo
	events        *fakeAnalyticsRepo

	begun      int
	committed  int
	rolledBack int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		visitors:      &fakeVisitorRepo{store: map[uuid.UUID]*entity.Visitor{}},
		signatures:    &fakeSignatureRepo{store: map[string]*entity.DeviceSignature{}},
		conversations: &fakeConversationRepo{store: map[uuid.UUID]*entity.Conversation{}, byToken: map[string]uuid.UUID{}},
		messages:      &fakeMessageRepo{},
		memories:      &fakeMemoryRepo{},
		ratings:       &fakeRatingRepo{},
		cached:        &fakeCachedAnswerRepo{store: map[string]*entity.CachedAnswer{}},
		events:        &fakeAnalyticsRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begun++; return nil }
func (u *fakeUow) Commit() error                   { u.committed++; return nil }
func (u *fakeUow) Rollback() error                 { u.rolledBack++; return nil }

func (u *fakeUow) VisitorRepository() contract.VisitorRepository                 { return u.visitors }
func (u *fakeUow) DeviceSignatureRepository() contract.DeviceSignatureRepository { return u.signatures }
func (u *fakeUow) ConversationRepository() contract.ConversationRepository       { return u.conversations }
func (u *fakeUow) MessageRepository() contract.MessageRepository                 { return u.messages }
func (u *fakeUow) MemoryRepository() contract.MemoryRepository                   { return u.memories }
func (u *fakeUow) RatingRepository() contract.RatingRepository                   { return u.ratings }
func (u *fakeUow) CachedAnswerRepository() contract.CachedAnswerRepository       { return u.cached }
func (u *fakeUow) AnalyticsRepository() contract.AnalyticsRepository             { return u.events }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- Repositories ---

type fakeVisitorRepo struct {
	contract.VisitorRepository
	store        map[uuid.UUID]*entity.Visitor
	recordVisits int
	// missEmailLookups makes that many ByEmail lookups return nothing,
	// simulating a concurrent insert landing between lookup and create.
	missEmailLookups int
}

func (r *fakeVisitorRepo) Create(ctx context.Context, v *entity.Visitor) error {
	if v.Email != nil {
		for _, existing := range r.store {
			if existing.Email != nil && *existing.Email == *v.Email {
				return uniqueViolation()
			}
		}
	}
	if v.Id == uuid.Nil {
		v.Id = uuid.New()
	}
	clone := *v
	r.store[v.Id] = &clone
	return nil
}

func (r *fakeVisitorRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visitor, error) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if v, ok := r.store[s.ID]; ok {
				clone := *v
				return &clone, nil
			}
			return nil, nil
		case specification.ByEmail:
			if r.missEmailLookups > 0 {
				r.missEmailLookups--
				return nil, nil
			}
			for _, v := range r.store {
				if v.Email != nil && *v.Email == s.Email {
					clone := *v
					return &clone, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeVisitorRepo) RecordVisit(ctx context.Context, id uuid.UUID) error {
	r.recordVisits++
	if v, ok := r.store[id]; ok {
		v.VisitCount++
		v.LastSeenAt = time.Now()
	}
	return nil
}

func (r *fakeVisitorRepo) AddTraitTags(ctx context.Context, id uuid.UUID, tags []string) error {
	v, ok := r.store[id]
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	for _, t := range v.PersonalityTags {
		seen[t] = true
	}
	for _, t := range tags {
		if !seen[t] {
			v.PersonalityTags = append(v.PersonalityTags, t)
			seen[t] = true
		}
	}
	return nil
}

func (r *fakeVisitorRepo) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	v, ok := r.store[id]
	if !ok {
		return nil
	}
	if name, ok := fields["name"].(string); ok {
		v.Name = name
	}
	if email, ok := fields["email"].(string); ok {
		for _, other := range r.store {
			if other.Id != id && other.Email != nil && *other.Email == email {
				return uniqueViolation()
			}
		}
		v.Email = &email
	}
	if method, ok := fields["arrival_method"].(string); ok {
		m := entity.ArrivalMethod(method)
		v.ArrivalMethod = &m
	}
	return nil
}

type fakeSignatureRepo struct {
	contract.DeviceSignatureRepository
	store   map[string]*entity.DeviceSignature
	touches int
}

func (r *fakeSignatureRepo) Save(ctx context.Context, sig *entity.DeviceSignature) error {
	if existing, ok := r.store[sig.Fingerprint]; ok {
		*sig = *existing
		return nil
	}
	sig.Id = uuid.New()
	sig.UseCount = 1
	clone := *sig
	r.store[sig.Fingerprint] = &clone
	return nil
}

func (r *fakeSignatureRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeviceSignature, error) {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByFingerprint); ok {
			if sig, found := r.store[s.Fingerprint]; found {
				clone := *sig
				return &clone, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSignatureRepo) LinkToVisitor(ctx context.Context, fingerprint string, visitorId uuid.UUID) error {
	if sig, ok := r.store[fingerprint]; ok {
		sig.VisitorId = &visitorId
	}
	return nil
}

func (r *fakeSignatureRepo) Touch(ctx context.Context, fingerprint string) error {
	r.touches++
	if sig, ok := r.store[fingerprint]; ok {
		sig.UseCount++
		sig.LastSeenAt = time.Now()
	}
	return nil
}

type fakeConversationRepo struct {
	contract.ConversationRepository
	store   map[uuid.UUID]*entity.Conversation
	byToken map[string]uuid.UUID
}

func (r *fakeConversationRepo) Save(ctx context.Context, c *entity.Conversation) error {
	if id, ok := r.byToken[c.SessionToken]; ok {
		*c = *r.store[id]
		return nil
	}
	c.Id = uuid.New()
	c.StartedAt = time.Now()
	c.LastActivityAt = time.Now()
	clone := *c
	r.store[c.Id] = &clone
	r.byToken[c.SessionToken] = c.Id
	return nil
}

func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c, ok := r.store[s.ID]; ok {
				clone := *c
				return &clone, nil
			}
			return nil, nil
		case specification.BySessionToken:
			if id, ok := r.byToken[s.Token]; ok {
				clone := *r.store[id]
				return &clone, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, c := range r.store {
		for _, spec := range specs {
			if s, ok := spec.(specification.OwnedByVisitor); ok {
				if c.VisitorId != nil && *c.VisitorId == s.VisitorID {
					clone := *c
					out = append(out, &clone)
				}
			}
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	out, err := r.FindAll(ctx, specs...)
	return int64(len(out)), err
}

func (r *fakeConversationRepo) RecordMessageAppended(ctx context.Context, id uuid.UUID, sender entity.MessageSender) error {
	c, ok := r.store[id]
	if !ok {
		return nil
	}
	c.MessageCount++
	switch sender {
	case entity.SenderUser:
		c.UserMessages++
	case entity.SenderAssistant:
		c.AssistantMsgs++
	}
	c.LastActivityAt = time.Now()
	return nil
}

func (r *fakeConversationRepo) LinkVisitor(ctx context.Context, id uuid.UUID, visitorId uuid.UUID) error {
	if c, ok := r.store[id]; ok {
		c.VisitorId = &visitorId
	}
	return nil
}

func (r *fakeConversationRepo) Complete(ctx context.Context, id uuid.UUID, summary *string, keyTopics []string) error {
	c, ok := r.store[id]
	if !ok || c.Status != entity.ConversationActive {
		return nil
	}
	c.Status = entity.ConversationCompleted
	c.Summary = summary
	c.KeyTopics = keyTopics
	now := time.Now()
	c.EndedAt = &now
	return nil
}

func (r *fakeConversationRepo) Abandon(ctx context.Context, id uuid.UUID) error {
	c, ok := r.store[id]
	if !ok || c.Status != entity.ConversationActive {
		return nil
	}
	c.Status = entity.ConversationAbandoned
	now := time.Now()
	c.EndedAt = &now
	return nil
}

func (r *fakeConversationRepo) UpdateTopic(ctx context.Context, id uuid.UUID, topic string) error {
	if c, ok := r.store[id]; ok {
		c.Topic = topic
	}
	return nil
}

type fakeMessageRepo struct {
	contract.MessageRepository
	store []*entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	m.Id = uuid.New()
	m.CreatedAt = time.Now()
	clone := *m
	r.store = append(r.store, &clone)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.store {
		match := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByConversationID); ok && m.ConversationId != s.ConversationID {
				match = false
			}
		}
		if match {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeMemoryRepo struct {
	contract.MemoryRepository
	store []*entity.Memory
}

func (r *fakeMemoryRepo) Create(ctx context.Context, m *entity.Memory) error {
	m.Id = uuid.New()
	m.CreatedAt = time.Now()
	clone := *m
	r.store = append(r.store, &clone)
	return nil
}

func (r *fakeMemoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memory, error) {
	var out []*entity.Memory
	for _, m := range r.store {
		match := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.OwnedByVisitor:
				if m.VisitorId != s.VisitorID {
					match = false
				}
			case specification.ByMemoryType:
				if string(m.MemoryType) != s.MemoryType {
					match = false
				}
			}
		}
		if match {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeMemoryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	out, err := r.FindAll(ctx, specs...)
	return int64(len(out)), err
}

func (r *fakeMemoryRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var kept []*entity.Memory
	var pruned int64
	for _, m := range r.store {
		if m.ExpiresAt != nil && m.ExpiresAt.Before(now) {
			pruned++
			continue
		}
		kept = append(kept, m)
	}
	r.store = kept
	return pruned, nil
}

type fakeRatingRepo struct {
	contract.RatingRepository
	store []*entity.Rating
}

func (r *fakeRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	rating.Id = uuid.New()
	rating.CreatedAt = time.Now()
	clone := *rating
	r.store = append(r.store, &clone)
	return nil
}

func (r *fakeRatingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	out, err := r.FindAll(ctx, specs...)
	return int64(len(out)), err
}

func (r *fakeRatingRepo) PlaceAverages(ctx context.Context, category *entity.PlaceCategory, limit int) ([]*entity.PlaceScore, error) {
	type agg struct {
		sum   int
		count int64
		cat   entity.PlaceCategory
	}
	byPlace := map[string]*agg{}
	var order []string
	for _, rating := range r.store {
		if category != nil && rating.Category != *category {
			continue
		}
		a, ok := byPlace[rating.PlaceName]
		if !ok {
			a = &agg{cat: rating.Category}
			byPlace[rating.PlaceName] = a
			order = append(order, rating.PlaceName)
		}
		a.sum += rating.OverallRating
		a.count++
	}
	var out []*entity.PlaceScore
	for _, name := range order {
		a := byPlace[name]
		out = append(out, &entity.PlaceScore{
			PlaceName:    name,
			Category:     a.cat,
			AverageScore: float64(a.sum) / float64(a.count),
			RatingCount:  a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AverageScore > out[j].AverageScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRatingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Rating, error) {
	var out []*entity.Rating
	for _, rating := range r.store {
		match := true
		for _, spec := range specs {
			if s, ok := spec.(specification.OwnedByVisitor); ok && rating.VisitorId != s.VisitorID {
				match = false
			}
		}
		if match {
			clone := *rating
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeCachedAnswerRepo struct {
	contract.CachedAnswerRepository
	store map[string]*entity.CachedAnswer
}

func (r *fakeCachedAnswerRepo) Upsert(ctx context.Context, a *entity.CachedAnswer) error {
	if existing, ok := r.store[a.QuestionHash]; ok {
		existing.Answer = a.Answer
		existing.LastAccessedAt = time.Now()
		*a = *existing
		return nil
	}
	a.Id = uuid.New()
	clone := *a
	r.store[a.QuestionHash] = &clone
	return nil
}

func (r *fakeCachedAnswerRepo) FindByHash(ctx context.Context, hash string) (*entity.CachedAnswer, error) {
	if a, ok := r.store[hash]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeCachedAnswerRepo) RecordHit(ctx context.Context, hash string) error {
	if a, ok := r.store[hash]; ok {
		a.HitCount++
		a.LastAccessedAt = time.Now()
	}
	return nil
}

type fakeAnalyticsRepo struct {
	contract.AnalyticsRepository
	store []*entity.AnalyticsEvent
}

func (r *fakeAnalyticsRepo) Create(ctx context.Context, event *entity.AnalyticsEvent) error {
	event.Id = uuid.New()
	clone := *event
	r.store = append(r.store, &clone)
	return nil
}

func (r *fakeAnalyticsRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalyticsEvent, error) {
	var out []*entity.AnalyticsEvent
	for _, event := range r.store {
		match := true
		for _, spec := range specs {
			if s, ok := spec.(specification.OwnedByVisitor); ok {
				if event.VisitorId == nil || *event.VisitorId != s.VisitorID {
					match = false
				}
			}
		}
		if match {
			clone := *event
			out = append(out, &clone)
		}
	}
	return out, nil
}

// --- Collaborator fakes ---

type recordedEvent struct {
	Type      string
	VisitorId *uuid.UUID
}

type fakeAnalytics struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (a *fakeAnalytics) Emit(ctx context.Context, eventType string, visitorId, conversationId *uuid.UUID, data map[string]interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, recordedEvent{Type: eventType, VisitorId: visitorId})
}

func (a *fakeAnalytics) types() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.events))
	for i, e := range a.events {
		out[i] = e.Type
	}
	return out
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmail) SendWelcomeTips(toEmail, name string, tips []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, toEmail)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
