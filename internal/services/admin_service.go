package services

import (
	"context"

	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/models/entities"
)

// AdminActionKind classifies admin moderation outcomes.
type AdminActionKind string

const (
	AdminGranted        AdminActionKind = "granted"
	AdminAlreadyActive  AdminActionKind = "already_active"
	AdminDropped        AdminActionKind = "removed"
	AdminNotFound       AdminActionKind = "not_found"
	AdminRefusedSuper   AdminActionKind = "refused_super_admin"
	AdminDirectoryError AdminActionKind = "directory_error"
)

// AdminActionResult is the typed outcome of an admin moderation command.
type AdminActionResult struct {
	Kind    AdminActionKind
	Message string
}

// AdminStore is the directory slice the moderation commands need.
type AdminStore interface {
	FindActiveByUserID(ctx context.Context, userID string) (*entities.DiscordAdmin, error)
	ListActive(ctx context.Context) ([]entities.DiscordAdmin, error)
	Upsert(ctx context.Context, userID, username string, isSuperAdmin bool, notes, addedBy string) error
	Remove(ctx context.Context, userID, removedBy, reason string) (bool, error)
}

// BootstrapList answers whether a user id is on the static allow-list.
// Allow-listed ids are treated like super-admin records: they can never be
// removed through the ordinary path.
type BootstrapList interface {
	OnAllowList(userID string) bool
}

// AdminService manages bot-admin grants. Privilege gating (who may call
// which command) happens at the handler layer; the invariants that protect
// super-admin records live here and in the repository filter.
type AdminService struct {
	admins    AdminStore
	bootstrap BootstrapList
}

func NewAdminService(admins AdminStore, bootstrap BootstrapList) *AdminService {
	return &AdminService{admins: admins, bootstrap: bootstrap}
}

// AddAdmin grants (or re-activates) bot-admin access for the target user.
// A grant that would overwrite an existing super-admin record with a plain
// one is refused; demotion has no path through this command.
func (svc *AdminService) AddAdmin(ctx context.Context, targetID, targetName string, isSuperAdmin bool, notes, addedBy string) (*AdminActionResult, error) {
	existing, err := svc.admins.FindActiveByUserID(ctx, targetID)
	if err != nil {
		logging.Error("Directory lookup failed during admin add", "target_id", targetID, "error", err.Error())
		return &AdminActionResult{Kind: AdminDirectoryError, Message: constants.MsgDirectoryDown}, err
	}
	if existing != nil && existing.IsSuperAdmin && !isSuperAdmin {
		return &AdminActionResult{Kind: AdminRefusedSuper, Message: constants.MsgSuperAdminImmut}, nil
	}
	if existing != nil && existing.IsSuperAdmin == isSuperAdmin {
		return &AdminActionResult{Kind: AdminAlreadyActive, Message: constants.MsgAdminAlreadyActive}, nil
	}

	if err := svc.admins.Upsert(ctx, targetID, targetName, isSuperAdmin, notes, addedBy); err != nil {
		logging.Error("Directory update failed during admin add", "target_id", targetID, "error", err.Error())
		return &AdminActionResult{Kind: AdminDirectoryError, Message: constants.MsgDirectoryDown}, err
	}

	logging.Info("Admin access granted",
		"target_id", targetID, "super_admin", isSuperAdmin, "added_by", addedBy)
	return &AdminActionResult{Kind: AdminGranted, Message: constants.MsgAdminAdded}, nil
}

// RemoveAdmin soft-deletes an admin grant. A record with isSuperAdmin set,
// or an allow-listed id, is never touched through this path.
func (svc *AdminService) RemoveAdmin(ctx context.Context, targetID, removedBy, reason string) (*AdminActionResult, error) {
	if svc.bootstrap != nil && svc.bootstrap.OnAllowList(targetID) {
		return &AdminActionResult{Kind: AdminRefusedSuper, Message: constants.MsgSuperAdminImmut}, nil
	}

	existing, err := svc.admins.FindActiveByUserID(ctx, targetID)
	if err != nil {
		logging.Error("Directory lookup failed during admin removal", "target_id", targetID, "error", err.Error())
		return &AdminActionResult{Kind: AdminDirectoryError, Message: constants.MsgDirectoryDown}, err
	}
	if existing == nil {
		return &AdminActionResult{Kind: AdminNotFound, Message: constants.MsgAdminNotFound}, nil
	}
	if existing.IsSuperAdmin {
		return &AdminActionResult{Kind: AdminRefusedSuper, Message: constants.MsgSuperAdminImmut}, nil
	}

	// The repository filter re-checks isSuperAdmin, so even a racing
	// promotion cannot let this path demote a super-admin.
	removed, err := svc.admins.Remove(ctx, targetID, removedBy, reason)
	if err != nil {
		logging.Error("Directory update failed during admin removal", "target_id", targetID, "error", err.Error())
		return &AdminActionResult{Kind: AdminDirectoryError, Message: constants.MsgDirectoryDown}, err
	}
	if !removed {
		return &AdminActionResult{Kind: AdminRefusedSuper, Message: constants.MsgSuperAdminImmut}, nil
	}

	logging.Info("Admin access removed",
		"target_id", targetID, "removed_by", removedBy, "reason", reason)
	return &AdminActionResult{Kind: AdminDropped, Message: constants.MsgAdminRemoved}, nil
}

// ListAdmins returns all active admin records.
func (svc *AdminService) ListAdmins(ctx context.Context) ([]entities.DiscordAdmin, error) {
	return svc.admins.ListActive(ctx)
}
