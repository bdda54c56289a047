package services

import (
	"context"
	"testing"
	"time"

	"mas-astro/nightwatch/internal/models/entities"
)

type fakeEventStore struct {
	events        map[string]*entities.Event
	registrations map[string]*entities.EventRegistration // slug+"|"+email
}

func (f *fakeEventStore) ListUpcoming(ctx context.Context, limit int64) ([]entities.Event, error) {
	var out []entities.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventStore) FindBySlug(ctx context.Context, slug string) (*entities.Event, error) {
	e, ok := f.events[slug]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEventStore) FindRegistration(ctx context.Context, slug, email string) (*entities.EventRegistration, error) {
	r, ok := f.registrations[slug+"|"+email]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeEventStore) InsertRegistration(ctx context.Context, reg *entities.EventRegistration) error {
	f.registrations[reg.EventSlug+"|"+reg.Email] = reg
	return nil
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events: map[string]*entities.Event{
			"messier-marathon": {
				Slug:     "messier-marathon",
				Title:    "Messier Marathon",
				StartsAt: time.Now().Add(72 * time.Hour),
			},
		},
		registrations: map[string]*entities.EventRegistration{},
	}
}

func TestEventService_Register(t *testing.T) {
	svc := NewEventService(newFakeEventStore())

	result, err := svc.Register(context.Background(), "messier-marathon", "A@X.ORG", "u1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != RegisterOK {
		t.Errorf("Expected kind %q, got %q", RegisterOK, result.Kind)
	}
	if result.Event == nil || result.Event.Title != "Messier Marathon" {
		t.Error("Expected event attached to result")
	}
}

func TestEventService_Register_DuplicateIsPolite(t *testing.T) {
	svc := NewEventService(newFakeEventStore())

	ctx := context.Background()
	if _, err := svc.Register(ctx, "messier-marathon", "a@x.org", "u1"); err != nil {
		t.Fatalf("Setup registration failed: %v", err)
	}

	// Same email, different casing
	result, err := svc.Register(ctx, "messier-marathon", "A@x.org", "u1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != RegisterDuplicate {
		t.Errorf("Expected kind %q, got %q", RegisterDuplicate, result.Kind)
	}
}

func TestEventService_Register_UnknownEvent(t *testing.T) {
	svc := NewEventService(newFakeEventStore())

	result, err := svc.Register(context.Background(), "no-such-event", "a@x.org", "u1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != RegisterEventNotFound {
		t.Errorf("Expected kind %q, got %q", RegisterEventNotFound, result.Kind)
	}
}
