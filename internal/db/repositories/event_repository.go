package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/metrics"
	"mas-astro/nightwatch/internal/models/entities"
)

// EventRepository reads events and appends eventRegistrations.
type EventRepository struct {
	events        *mongo.Collection
	registrations *mongo.Collection
	metrics       *metrics.MetricsRegistry
}

func NewEventRepository(db *mongo.Database, reg *metrics.MetricsRegistry) *EventRepository {
	return &EventRepository{
		events:        db.Collection(constants.CollEvents),
		registrations: db.Collection(constants.CollEventRegistrations),
		metrics:       reg,
	}
}

// ListUpcoming returns events starting after now, soonest first.
func (r *EventRepository) ListUpcoming(ctx context.Context, limit int64) ([]entities.Event, error) {
	r.count(constants.CollEvents, "find")

	opts := options.Find().
		SetSort(bson.D{{Key: "startsAt", Value: 1}}).
		SetLimit(limit)
	cur, err := r.events.Find(ctx, bson.M{"startsAt": bson.M{"$gte": time.Now().UTC()}}, opts)
	if err != nil {
		r.fail(constants.CollEvents, "find")
		return nil, err
	}
	defer cur.Close(ctx)

	var events []entities.Event
	if err := cur.All(ctx, &events); err != nil {
		r.fail(constants.CollEvents, "find")
		return nil, err
	}
	return events, nil
}

// FindBySlug returns the event with the given slug, or nil.
func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*entities.Event, error) {
	r.count(constants.CollEvents, "findOne")

	var event entities.Event
	err := r.events.FindOne(ctx, bson.M{"slug": slug}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.fail(constants.CollEvents, "findOne")
		return nil, err
	}
	return &event, nil
}

// FindRegistration returns the registration for (slug, email), or nil.
func (r *EventRepository) FindRegistration(ctx context.Context, slug, email string) (*entities.EventRegistration, error) {
	r.count(constants.CollEventRegistrations, "findOne")

	var reg entities.EventRegistration
	err := r.registrations.FindOne(ctx, bson.M{
		"eventSlug": slug,
		"email":     strings.ToLower(email),
	}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.fail(constants.CollEventRegistrations, "findOne")
		return nil, err
	}
	return &reg, nil
}

// InsertRegistration appends a new registration document.
func (r *EventRepository) InsertRegistration(ctx context.Context, reg *entities.EventRegistration) error {
	r.count(constants.CollEventRegistrations, "insertOne")

	reg.Email = strings.ToLower(reg.Email)
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now().UTC()
	}

	_, err := r.registrations.InsertOne(ctx, reg)
	if err != nil {
		r.fail(constants.CollEventRegistrations, "insertOne")
	}
	return err
}

func (r *EventRepository) count(coll, op string) {
	if r.metrics != nil {
		r.metrics.DirectoryQueriesTotal.WithLabelValues(coll, op).Inc()
	}
}

func (r *EventRepository) fail(coll, op string) {
	if r.metrics != nil {
		r.metrics.DirectoryQueryErrors.WithLabelValues(coll, op).Inc()
	}
}
