package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mas-astro/nightwatch/internal/constants"
)

// DiscordAdmin grants bot-admin privileges to a Discord user independent of
// the platform's native permission bits. Records are soft-deleted: removal
// flips status to "removed" and fills the audit fields.
type DiscordAdmin struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	UserID       string                `bson:"userId"`
	Username     string                `bson:"username,omitempty"`
	Status       constants.AdminStatus `bson:"status"`
	IsSuperAdmin bool                  `bson:"isSuperAdmin"`
	Notes        string                `bson:"notes,omitempty"`

	AddedBy       string     `bson:"addedBy,omitempty"`
	AddedAt       time.Time  `bson:"addedAt,omitempty"`
	RemovedBy     *string    `bson:"removedBy,omitempty"`
	RemovedAt     *time.Time `bson:"removedAt,omitempty"`
	RemovalReason *string    `bson:"removalReason,omitempty"`
}
