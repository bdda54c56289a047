package services

import (
	"context"
	"strings"

	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/models/entities"
)

// EventStore is the directory slice the event commands need.
type EventStore interface {
	ListUpcoming(ctx context.Context, limit int64) ([]entities.Event, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Event, error)
	FindRegistration(ctx context.Context, slug, email string) (*entities.EventRegistration, error)
	InsertRegistration(ctx context.Context, reg *entities.EventRegistration) error
}

// RegisterKind classifies event registration outcomes.
type RegisterKind string

const (
	RegisterOK            RegisterKind = "registered"
	RegisterDuplicate     RegisterKind = "duplicate"
	RegisterEventNotFound RegisterKind = "event_not_found"
	RegisterError         RegisterKind = "error"
)

// RegisterResult is the typed outcome of an event registration.
type RegisterResult struct {
	Kind    RegisterKind
	Message string
	Event   *entities.Event
}

// EventService lists events and records registrations.
type EventService struct {
	events EventStore
}

func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// UpcomingEvents returns up to limit future events, soonest first.
func (svc *EventService) UpcomingEvents(ctx context.Context, limit int64) ([]entities.Event, error) {
	return svc.events.ListUpcoming(ctx, limit)
}

// Register records (event slug, email). Duplicate registrations are reported
// politely, never as an error.
func (svc *EventService) Register(ctx context.Context, slug, email, discordUserID string) (*RegisterResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	event, err := svc.events.FindBySlug(ctx, slug)
	if err != nil {
		logging.Error("Directory lookup failed during event registration", "slug", slug, "error", err.Error())
		return &RegisterResult{Kind: RegisterError, Message: constants.MsgRegistrationFailure}, err
	}
	if event == nil {
		return &RegisterResult{Kind: RegisterEventNotFound, Message: constants.MsgEventNotFound}, nil
	}

	existing, err := svc.events.FindRegistration(ctx, slug, email)
	if err != nil {
		logging.Error("Directory lookup failed during event registration", "slug", slug, "error", err.Error())
		return &RegisterResult{Kind: RegisterError, Message: constants.MsgRegistrationFailure}, err
	}
	if existing != nil {
		return &RegisterResult{Kind: RegisterDuplicate, Message: constants.MsgAlreadyRegistered, Event: event}, nil
	}

	reg := &entities.EventRegistration{
		EventSlug:     slug,
		Email:         email,
		DiscordUserID: discordUserID,
	}
	if err := svc.events.InsertRegistration(ctx, reg); err != nil {
		logging.Error("Directory insert failed during event registration", "slug", slug, "error", err.Error())
		return &RegisterResult{Kind: RegisterError, Message: constants.MsgRegistrationFailure}, err
	}

	return &RegisterResult{Kind: RegisterOK, Message: constants.MsgEventRegistered, Event: event}, nil
}
