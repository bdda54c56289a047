package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/metrics"
	"mas-astro/nightwatch/internal/models/entities"
)

// ApplicationRepository reads and links membershipApplications documents.
type ApplicationRepository struct {
	coll    *mongo.Collection
	metrics *metrics.MetricsRegistry
}

func NewApplicationRepository(db *mongo.Database, reg *metrics.MetricsRegistry) *ApplicationRepository {
	return &ApplicationRepository{
		coll:    db.Collection(constants.CollMembershipApplications),
		metrics: reg,
	}
}

// FindByEmail returns the first application matching the email, or nil when
// none exists. Emails are stored and matched lowercase. Duplicate documents
// for one email are possible in the directory; the first match is treated
// as authoritative.
func (r *ApplicationRepository) FindByEmail(ctx context.Context, email string) (*entities.MembershipApplication, error) {
	r.count("membershipApplications", "findOne")

	var app entities.MembershipApplication
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.fail("membershipApplications", "findOne")
		return nil, err
	}
	return &app, nil
}

// FindByDiscordUserID returns the application linked to the given Discord
// user, or nil when the user has never verified.
func (r *ApplicationRepository) FindByDiscordUserID(ctx context.Context, userID string) (*entities.MembershipApplication, error) {
	r.count("membershipApplications", "findOne")

	var app entities.MembershipApplication
	err := r.coll.FindOne(ctx, bson.M{"discordUserId": userID}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.fail("membershipApplications", "findOne")
		return nil, err
	}
	return &app, nil
}

// LinkDiscordIdentity writes the Discord link onto an approved application.
// The filter doubles as a guard: it matches only when the record is approved
// and either unlinked or already linked to the same user, so a concurrent
// verify for the same email cannot steal an existing link. Returns false
// when no document matched the guard.
func (r *ApplicationRepository) LinkDiscordIdentity(
	ctx context.Context,
	email string,
	userID string,
	username string,
	adminVerified bool,
) (bool, error) {
	r.count("membershipApplications", "updateOne")

	now := time.Now().UTC()
	filter := bson.M{
		"email":  strings.ToLower(email),
		"status": constants.ApplicationApproved,
		"$or": bson.A{
			bson.M{"discordUserId": bson.M{"$exists": false}},
			bson.M{"discordUserId": nil},
			bson.M{"discordUserId": ""},
			bson.M{"discordUserId": userID},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"discordUserId":     userID,
			"discordUsername":   username,
			"discordVerifiedAt": now,
			"adminVerification": adminVerified,
			"updatedAt":         now,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.fail("membershipApplications", "updateOne")
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *ApplicationRepository) count(coll, op string) {
	if r.metrics != nil {
		r.metrics.DirectoryQueriesTotal.WithLabelValues(coll, op).Inc()
	}
}

func (r *ApplicationRepository) fail(coll, op string) {
	if r.metrics != nil {
		r.metrics.DirectoryQueryErrors.WithLabelValues(coll, op).Inc()
	}
}
