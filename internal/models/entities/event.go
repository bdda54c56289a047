package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a MAS observation night, talk, or workshop.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Slug        string             `bson:"slug"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Location    string             `bson:"location,omitempty"`
	StartsAt    time.Time          `bson:"startsAt"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
}

// EventRegistration records one email's signup for an event.
type EventRegistration struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	EventSlug     string             `bson:"eventSlug"`
	Email         string             `bson:"email"` // stored lowercase
	DiscordUserID string             `bson:"discordUserId,omitempty"`
	RegisteredAt  time.Time          `bson:"registeredAt"`
}
