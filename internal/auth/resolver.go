package auth

import (
	"context"

	"mas-astro/nightwatch/internal/models/entities"
)

// Actor is a platform member as seen by a privilege check: a stable user id
// plus whether Discord itself reports the Administrator permission bit.
type Actor struct {
	UserID         string
	HasNativeAdmin bool
}

// AdminLookup is the slice of the directory the resolver consults.
type AdminLookup interface {
	FindActiveByUserID(ctx context.Context, userID string) (*entities.DiscordAdmin, error)
}

// Resolver answers "is this actor an admin?" and "is this actor a
// super-admin?" from three sources with fixed precedence: the platform's
// native Administrator bit, the static allow-list, then the directory.
// Directory failures never panic past this boundary and never grant: the
// boolean result is false and the error is returned alongside.
type Resolver struct {
	allowList map[string]struct{}
	admins    AdminLookup
}

// NewResolver builds a resolver over the operator allow-list and the
// directory's admin collection.
func NewResolver(allowListIDs []string, admins AdminLookup) *Resolver {
	allow := make(map[string]struct{}, len(allowListIDs))
	for _, id := range allowListIDs {
		allow[id] = struct{}{}
	}
	return &Resolver{allowList: allow, admins: admins}
}

// OnAllowList reports whether the user id is in the static bootstrap
// allow-list. This path works even when the directory is down, so at least
// one super-admin always exists.
func (r *Resolver) OnAllowList(userID string) bool {
	_, ok := r.allowList[userID]
	return ok
}

// IsAdmin checks, in order: native Administrator bit, allow-list, then an
// active directory admin record. The first matching rule wins and no
// further lookups are made.
func (r *Resolver) IsAdmin(ctx context.Context, actor Actor) (bool, error) {
	if actor.HasNativeAdmin {
		return true, nil
	}
	if r.OnAllowList(actor.UserID) {
		return true, nil
	}

	record, err := r.admins.FindActiveByUserID(ctx, actor.UserID)
	if err != nil {
		// Fail closed: unreachable directory means "not admin"
		return false, err
	}
	return record != nil, nil
}

// IsSuperAdmin checks the allow-list, then an active directory record with
// isSuperAdmin set. The native Administrator bit deliberately does not
// count: super-admin is an application-level grant, not a platform one.
func (r *Resolver) IsSuperAdmin(ctx context.Context, actor Actor) (bool, error) {
	if r.OnAllowList(actor.UserID) {
		return true, nil
	}

	record, err := r.admins.FindActiveByUserID(ctx, actor.UserID)
	if err != nil {
		return false, err
	}
	return record != nil && record.IsSuperAdmin, nil
}
