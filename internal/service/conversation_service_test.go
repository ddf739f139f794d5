package service

import (
	"context"
	"errors"
	"testing"

	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"

	"github.com/google/uuid"
)

func newConversationFixture() (IConversationService, *fakeUow, *fakeAnalytics) {
	uow := newFakeUow()
	analytics := &fakeAnalytics{}
	svc := NewConversationService(&fakeFactory{uow: uow}, analytics)
	return svc, uow, analytics
}

func TestStartConversation(t *testing.T) {
	svc, _, analytics := newConversationFixture()

	res, err := svc.Start(context.Background(), &dto.StartConversationRequest{
		SessionToken: "session-abc",
		Topic:        "restaurant",
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if res.Topic != "restaurant" {
		t.Errorf("Topic = %q", res.Topic)
	}
	if res.Status != string(entity.ConversationActive) {
		t.Errorf("Status = %q, want active", res.Status)
	}

	types := analytics.types()
	if len(types) != 1 || types[0] != constant.EventConversationStarted {
		t.Errorf("analytics events = %v", types)
	}
}

func TestStartConversationDefaultsTopic(t *testing.T) {
	svc, _, _ := newConversationFixture()

	res, err := svc.Start(context.Background(), &dto.StartConversationRequest{
		SessionToken: "session-default",
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if res.Topic != "free-chat" {
		t.Errorf("Topic = %q, want free-chat", res.Topic)
	}
}

func TestStartConversationIsIdempotentByToken(t *testing.T) {
	svc, _, _ := newConversationFixture()

	first, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-dup"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-dup"})
	if err != nil {
		t.Fatal(err)
	}

	if first.Id != second.Id {
		t.Error("retried start must return the same conversation")
	}
}

func TestStartConversationReturnsExistingRowUnchanged(t *testing.T) {
	svc, uow, _ := newConversationFixture()

	anon, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-late"})
	if err != nil {
		t.Fatal(err)
	}

	// A differing visitor on the retried start is ignored; adopting a
	// visitor goes through Link.
	visitorId := uuid.New()
	again, err := svc.Start(context.Background(), &dto.StartConversationRequest{
		SessionToken: "session-late",
		VisitorId:    &visitorId,
	})
	if err != nil {
		t.Fatal(err)
	}

	if again.Id != anon.Id {
		t.Fatal("expected the same conversation")
	}
	if again.VisitorId != nil {
		t.Errorf("VisitorId = %v, want nil until explicitly linked", again.VisitorId)
	}
	if stored := uow.conversations.store[anon.Id]; stored.VisitorId != nil {
		t.Error("retried start must not link the stored conversation")
	}

	if _, err := svc.Link(context.Background(), anon.Id, visitorId); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if stored := uow.conversations.store[anon.Id]; stored.VisitorId == nil || *stored.VisitorId != visitorId {
		t.Error("explicit link must adopt the visitor")
	}
}

func TestAppendMessageTransactional(t *testing.T) {
	svc, uow, _ := newConversationFixture()

	conv, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-msg"})
	if err != nil {
		t.Fatal(err)
	}

	msg, err := svc.AppendMessage(context.Background(), conv.Id, &dto.AppendMessageRequest{
		Sender:  "user",
		Content: "hello there",
	})
	if err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if msg.Sender != "user" || msg.Content != "hello there" {
		t.Errorf("message = %+v", msg)
	}
	if msg.MessageType != string(entity.MessageText) {
		t.Errorf("MessageType = %q, want text default", msg.MessageType)
	}

	stored := uow.conversations.store[conv.Id]
	if stored.MessageCount != 1 || stored.UserMessages != 1 {
		t.Errorf("counters = total %d user %d, want 1/1", stored.MessageCount, stored.UserMessages)
	}
	if uow.begun != 1 || uow.committed != 1 {
		t.Errorf("tx begin/commit = %d/%d, want 1/1", uow.begun, uow.committed)
	}
}

func TestAppendMessageToMissingConversation(t *testing.T) {
	svc, _, _ := newConversationFixture()

	_, err := svc.AppendMessage(context.Background(), uuid.New(), &dto.AppendMessageRequest{
		Sender:  "user",
		Content: "anyone home?",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestAppendMessageToCompletedConversation(t *testing.T) {
	svc, _, _ := newConversationFixture()

	conv, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-done"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(context.Background(), conv.Id, &dto.CompleteConversationRequest{}); err != nil {
		t.Fatal(err)
	}

	_, err = svc.AppendMessage(context.Background(), conv.Id, &dto.AppendMessageRequest{
		Sender:  "user",
		Content: "one more thing",
	})
	if !errors.Is(err, ErrTerminalState) {
		t.Errorf("error = %v, want ErrTerminalState", err)
	}
}

func TestCompleteConversation(t *testing.T) {
	svc, _, analytics := newConversationFixture()

	conv, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-complete"})
	if err != nil {
		t.Fatal(err)
	}

	summary := "talked about beaches"
	res, err := svc.Complete(context.Background(), conv.Id, &dto.CompleteConversationRequest{
		Summary:   &summary,
		KeyTopics: []string{"beach"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if res.Status != string(entity.ConversationCompleted) {
		t.Errorf("Status = %q", res.Status)
	}
	if res.Summary == nil || *res.Summary != summary {
		t.Error("summary must survive completion")
	}

	types := analytics.types()
	if types[len(types)-1] != constant.EventConversationEnded {
		t.Errorf("analytics events = %v", types)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc, _, analytics := newConversationFixture()

	conv, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-twice"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Complete(context.Background(), conv.Id, &dto.CompleteConversationRequest{}); err != nil {
		t.Fatal(err)
	}
	eventsAfterFirst := len(analytics.types())

	res, err := svc.Complete(context.Background(), conv.Id, &dto.CompleteConversationRequest{})
	if err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}
	if res.Status != string(entity.ConversationCompleted) {
		t.Errorf("Status = %q", res.Status)
	}
	if len(analytics.types()) != eventsAfterFirst {
		t.Error("repeat completion must not emit another ended event")
	}
}

func TestAbandonConversation(t *testing.T) {
	svc, _, _ := newConversationFixture()

	conv, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-abandon"})
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.Abandon(context.Background(), conv.Id)
	if err != nil {
		t.Fatalf("Abandon() error = %v", err)
	}
	if res.Status != string(entity.ConversationAbandoned) {
		t.Errorf("Status = %q", res.Status)
	}
}

func TestAbandonDoesNotOverrideCompleted(t *testing.T) {
	svc, _, _ := newConversationFixture()

	conv, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-settled"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(context.Background(), conv.Id, &dto.CompleteConversationRequest{}); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Abandon(context.Background(), conv.Id)
	if err != nil {
		t.Fatalf("Abandon() error = %v", err)
	}
	if res.Status != string(entity.ConversationCompleted) {
		t.Errorf("Status = %q, completed must stick", res.Status)
	}
}

func TestHistoryReturnsConversationMessages(t *testing.T) {
	svc, _, _ := newConversationFixture()

	conv, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-hist"})
	if err != nil {
		t.Fatal(err)
	}
	other, err := svc.Start(context.Background(), &dto.StartConversationRequest{SessionToken: "session-other"})
	if err != nil {
		t.Fatal(err)
	}

	for _, content := range []string{"first", "second"} {
		if _, err := svc.AppendMessage(context.Background(), conv.Id, &dto.AppendMessageRequest{Sender: "user", Content: content}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.AppendMessage(context.Background(), other.Id, &dto.AppendMessageRequest{Sender: "user", Content: "elsewhere"}); err != nil {
		t.Fatal(err)
	}

	history, err := svc.History(context.Background(), conv.Id, 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	for _, m := range history {
		if m.Content == "elsewhere" {
			t.Error("history leaked another conversation's message")
		}
	}
}

func TestAvailableTopics(t *testing.T) {
	svc, _, _ := newConversationFixture()

	topics := svc.AvailableTopics()
	if len(topics) != 4 {
		t.Fatalf("topics = %d, want 4", len(topics))
	}
	if topics[0].Id != "restaurant" {
		t.Errorf("first topic = %q", topics[0].Id)
	}
}

func TestLinkConversation(t *testing.T) {
	svc, uow, _ := newConversationFixture()

	started, err := svc.Start(context.Background(), &dto.StartConversationRequest{
		SessionToken: "session-link",
	})
	if err != nil {
		t.Fatal(err)
	}

	visitorId := uuid.New()
	res, err := svc.Link(context.Background(), started.Id, visitorId)
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if res.VisitorId == nil || *res.VisitorId != visitorId {
		t.Errorf("VisitorId = %v, want %v", res.VisitorId, visitorId)
	}
	if got := uow.conversations.store[started.Id].VisitorId; got == nil || *got != visitorId {
		t.Error("link must be persisted")
	}
}

func TestLinkConversationIdempotent(t *testing.T) {
	svc, _, _ := newConversationFixture()

	started, err := svc.Start(context.Background(), &dto.StartConversationRequest{
		SessionToken: "session-link-idem",
	})
	if err != nil {
		t.Fatal(err)
	}

	visitorId := uuid.New()
	if _, err := svc.Link(context.Background(), started.Id, visitorId); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Link(context.Background(), started.Id, visitorId); err != nil {
		t.Errorf("relinking the same visitor must succeed, got %v", err)
	}
}

func TestLinkConversationConflict(t *testing.T) {
	svc, _, _ := newConversationFixture()

	started, err := svc.Start(context.Background(), &dto.StartConversationRequest{
		SessionToken: "session-link-conflict",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Link(context.Background(), started.Id, uuid.New()); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Link(context.Background(), started.Id, uuid.New())
	if !errors.Is(err, ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestLinkConversationNotFound(t *testing.T) {
	svc, _, _ := newConversationFixture()

	_, err := svc.Link(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
