package services

import (
	"context"
	"strings"

	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/metrics"
	"mas-astro/nightwatch/internal/models/entities"
)

// VerifyKind classifies the outcome of a verification attempt. Handlers map
// each kind to a user-facing reply; nothing here ever reaches the user as a
// raw error.
type VerifyKind string

const (
	VerifyVerified        VerifyKind = "verified"         // first successful link
	VerifyAlreadyVerified VerifyKind = "already_verified" // record was already linked to the requester
	VerifyNotApproved     VerifyKind = "not_approved"     // no approved application for the email
	VerifyConflict        VerifyKind = "conflict"         // linked to a different Discord account
	VerifyDirectoryError  VerifyKind = "directory_error"  // directory unreachable
)

// VerifyResult is the typed outcome of a verification attempt.
type VerifyResult struct {
	Kind        VerifyKind
	Message     string
	Application *entities.MembershipApplication
}

// ApplicationStore is the directory slice the verification flow needs.
type ApplicationStore interface {
	FindByEmail(ctx context.Context, email string) (*entities.MembershipApplication, error)
	FindByDiscordUserID(ctx context.Context, userID string) (*entities.MembershipApplication, error)
	LinkDiscordIdentity(ctx context.Context, email, userID, username string, adminVerified bool) (bool, error)
}

// Provisioner applies the platform-side grants. Every method must be safe to
// repeat: granting a role or a channel overwrite the user already holds is a
// no-op, not an error.
type Provisioner interface {
	EnsureMemberRole(ctx context.Context, userID string) error
	EnsureChannelAccess(ctx context.Context, channelID, userID string) error
	SendWelcome(ctx context.Context, userID, fullName string) error
}

// VerificationService drives a (Discord user, claimed email) pair from
// unverified to fully provisioned. The directory record is the authoritative
// state: the link is persisted first, and the role grant, each channel
// overwrite, and the welcome message are independent best-effort steps that
// are never rolled back. Re-invoking verification is the recovery path for
// any partially completed run.
type VerificationService struct {
	apps               ApplicationStore
	provisioner        Provisioner
	restrictedChannels []string
	metrics            *metrics.MetricsRegistry
}

func NewVerificationService(
	apps ApplicationStore,
	provisioner Provisioner,
	restrictedChannels []string,
	reg *metrics.MetricsRegistry,
) *VerificationService {
	return &VerificationService{
		apps:               apps,
		provisioner:        provisioner,
		restrictedChannels: restrictedChannels,
		metrics:            reg,
	}
}

// SelfVerify handles "/verify email:E" from user U.
func (svc *VerificationService) SelfVerify(ctx context.Context, userID, username, email string) (*VerifyResult, error) {
	return svc.verify(ctx, userID, username, email, false)
}

// AdminLink handles "/adminlink member:U email:E". The caller has already
// been checked for admin privilege; this path links an arbitrary target but
// is bound by the same state machine: it cannot touch a non-approved record
// and cannot move a link from one user to another.
func (svc *VerificationService) AdminLink(ctx context.Context, targetUserID, targetUsername, email string) (*VerifyResult, error) {
	return svc.verify(ctx, targetUserID, targetUsername, email, true)
}

func (svc *VerificationService) verify(ctx context.Context, userID, username, email string, byAdmin bool) (*VerifyResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	app, err := svc.apps.FindByEmail(ctx, email)
	if err != nil {
		logging.Error("Directory lookup failed during verification",
			"email", email, "user_id", userID, "error", err.Error())
		return &VerifyResult{Kind: VerifyDirectoryError, Message: constants.MsgDirectoryDown}, err
	}

	// S0: no approved application for this email
	if app == nil || app.Status != constants.ApplicationApproved {
		return &VerifyResult{Kind: VerifyNotApproved, Message: constants.MsgNotApproved}, nil
	}

	// S2: linked to a different Discord account. Never reassign.
	if app.Linked() && !app.LinkedTo(userID) {
		return &VerifyResult{Kind: VerifyConflict, Message: constants.MsgLinkedToOther, Application: app}, nil
	}

	alreadyLinked := app.LinkedTo(userID)

	if !alreadyLinked {
		// S1 -> S4: persist the link first. The conditional update only
		// matches an approved record that is unlinked or linked to this
		// same user, so a racing verify for the same email cannot
		// overwrite an existing link.
		matched, err := svc.apps.LinkDiscordIdentity(ctx, email, userID, username, byAdmin)
		if err != nil {
			logging.Error("Directory update failed during verification",
				"email", email, "user_id", userID, "error", err.Error())
			return &VerifyResult{Kind: VerifyDirectoryError, Message: constants.MsgDirectoryDown}, err
		}
		if !matched {
			// Lost a race or the record changed under us
			return &VerifyResult{Kind: VerifyConflict, Message: constants.MsgLinkedToOther, Application: app}, nil
		}
		if svc.metrics != nil {
			svc.metrics.MembersVerifiedTotal.Inc()
		}
	}

	// The link is persisted; everything from here is best-effort and the
	// operation already counts as a success.
	svc.provision(ctx, userID, app.FullName, !alreadyLinked)

	if alreadyLinked {
		// S3/S4 -> S4: report already verified, missing grants re-applied
		return &VerifyResult{Kind: VerifyAlreadyVerified, Message: constants.MsgAlreadyVerified, Application: app}, nil
	}
	return &VerifyResult{Kind: VerifyVerified, Message: constants.MsgVerified, Application: app}, nil
}

// provision applies the member role, each restricted-channel overwrite, and
// (on first link) the welcome message. Each step is attempted regardless of
// earlier failures; failures are logged for operator follow-up.
func (svc *VerificationService) provision(ctx context.Context, userID, fullName string, firstLink bool) {
	if svc.provisioner == nil {
		return
	}

	if err := svc.provisioner.EnsureMemberRole(ctx, userID); err != nil {
		svc.grantFailed("member_role")
		logging.Error("Failed to grant member role", "user_id", userID, "error", err.Error())
	}

	for _, channelID := range svc.restrictedChannels {
		if err := svc.provisioner.EnsureChannelAccess(ctx, channelID, userID); err != nil {
			svc.grantFailed("channel_access")
			logging.Error("Failed to grant channel access",
				"user_id", userID, "channel_id", channelID, "error", err.Error())
		}
	}

	if firstLink {
		if err := svc.provisioner.SendWelcome(ctx, userID, fullName); err != nil {
			svc.grantFailed("welcome_message")
			logging.Warn("Failed to deliver welcome message", "user_id", userID, "error", err.Error())
		}
	}
}

// Status returns the application linked to the given Discord user, nil when
// the user has never verified.
func (svc *VerificationService) Status(ctx context.Context, userID string) (*entities.MembershipApplication, error) {
	return svc.apps.FindByDiscordUserID(ctx, userID)
}

func (svc *VerificationService) grantFailed(kind string) {
	if svc.metrics != nil {
		svc.metrics.GrantFailuresTotal.WithLabelValues(kind).Inc()
	}
}
