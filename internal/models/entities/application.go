package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mas-astro/nightwatch/internal/constants"
)

// MembershipApplication is one person's request to join MAS, created by the
// web application form (outside this service) and linked to a Discord
// identity by the verification flow.
//
// Optional fields are pointers: absence in the document is modeled as nil,
// never as a zero value.
type MembershipApplication struct {
	ID       primitive.ObjectID          `bson:"_id,omitempty"`
	Email    string                      `bson:"email"` // stored lowercase, unique lookup key
	FullName string                      `bson:"fullName"`
	Status   constants.ApplicationStatus `bson:"status"`

	// Free-form profile fields from the application form
	City       string `bson:"city,omitempty"`
	Occupation string `bson:"occupation,omitempty"`
	Experience string `bson:"experience,omitempty"`

	// Set once linked to a Discord identity
	DiscordUserID     *string    `bson:"discordUserId,omitempty"`
	DiscordUsername   *string    `bson:"discordUsername,omitempty"`
	DiscordVerifiedAt *time.Time `bson:"discordVerifiedAt,omitempty"`

	// True when an admin performed the link rather than the member
	AdminVerification *bool `bson:"adminVerification,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty"`
}

// LinkedTo reports whether the application is linked to the given Discord user.
func (a *MembershipApplication) LinkedTo(userID string) bool {
	return a.DiscordUserID != nil && *a.DiscordUserID == userID
}

// Linked reports whether the application is linked to any Discord user.
func (a *MembershipApplication) Linked() bool {
	return a.DiscordUserID != nil && *a.DiscordUserID != ""
}
