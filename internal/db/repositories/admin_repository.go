package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/metrics"
	"mas-astro/nightwatch/internal/models/entities"
)

// AdminRepository manages discordAdmins documents. Records are only ever
// soft-deleted: removal flips status and fills the audit fields.
type AdminRepository struct {
	coll    *mongo.Collection
	metrics *metrics.MetricsRegistry
}

func NewAdminRepository(db *mongo.Database, reg *metrics.MetricsRegistry) *AdminRepository {
	return &AdminRepository{
		coll:    db.Collection(constants.CollDiscordAdmins),
		metrics: reg,
	}
}

// FindActiveByUserID returns the active admin record for the user, or nil.
func (r *AdminRepository) FindActiveByUserID(ctx context.Context, userID string) (*entities.DiscordAdmin, error) {
	r.count("discordAdmins", "findOne")

	var admin entities.DiscordAdmin
	err := r.coll.FindOne(ctx, bson.M{
		"userId": userID,
		"status": constants.AdminActive,
	}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.fail("discordAdmins", "findOne")
		return nil, err
	}
	return &admin, nil
}

// ListActive returns all active admin records, super-admins first.
func (r *AdminRepository) ListActive(ctx context.Context) ([]entities.DiscordAdmin, error) {
	r.count("discordAdmins", "find")

	opts := options.Find().SetSort(bson.D{
		{Key: "isSuperAdmin", Value: -1},
		{Key: "addedAt", Value: 1},
	})
	cur, err := r.coll.Find(ctx, bson.M{"status": constants.AdminActive}, opts)
	if err != nil {
		r.fail("discordAdmins", "find")
		return nil, err
	}
	defer cur.Close(ctx)

	var admins []entities.DiscordAdmin
	if err := cur.All(ctx, &admins); err != nil {
		r.fail("discordAdmins", "find")
		return nil, err
	}
	return admins, nil
}

// Upsert activates an admin grant, reviving a previously removed record for
// the same user if one exists.
func (r *AdminRepository) Upsert(ctx context.Context, userID, username string, isSuperAdmin bool, notes, addedBy string) error {
	r.count("discordAdmins", "updateOne")

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"username":     username,
			"status":       constants.AdminActive,
			"isSuperAdmin": isSuperAdmin,
			"notes":        notes,
			"addedBy":      addedBy,
			"addedAt":      now,
		},
		"$unset": bson.M{
			"removedBy":     "",
			"removedAt":     "",
			"removalReason": "",
		},
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		r.fail("discordAdmins", "updateOne")
	}
	return err
}

// Remove soft-deletes an active, non-super admin record. The isSuperAdmin
// guard lives in the filter so no ordinary removal path can ever touch a
// super-admin document. Returns false when nothing matched.
func (r *AdminRepository) Remove(ctx context.Context, userID, removedBy, reason string) (bool, error) {
	r.count("discordAdmins", "updateOne")

	now := time.Now().UTC()
	filter := bson.M{
		"userId":       userID,
		"status":       constants.AdminActive,
		"isSuperAdmin": false,
	}
	update := bson.M{
		"$set": bson.M{
			"status":        constants.AdminRemoved,
			"removedBy":     removedBy,
			"removedAt":     now,
			"removalReason": reason,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.fail("discordAdmins", "updateOne")
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *AdminRepository) count(coll, op string) {
	if r.metrics != nil {
		r.metrics.DirectoryQueriesTotal.WithLabelValues(coll, op).Inc()
	}
}

func (r *AdminRepository) fail(coll, op string) {
	if r.metrics != nil {
		r.metrics.DirectoryQueryErrors.WithLabelValues(coll, op).Inc()
	}
}
