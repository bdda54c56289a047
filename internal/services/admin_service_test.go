package services

import (
	"context"
	"errors"
	"testing"

	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/models/entities"
)

type fakeAdminStore struct {
	records map[string]*entities.DiscordAdmin // by userId
	err     error
}

func (f *fakeAdminStore) FindActiveByUserID(ctx context.Context, userID string) (*entities.DiscordAdmin, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[userID]
	if !ok || rec.Status != constants.AdminActive {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAdminStore) ListActive(ctx context.Context) ([]entities.DiscordAdmin, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.DiscordAdmin
	for _, rec := range f.records {
		if rec.Status == constants.AdminActive {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAdminStore) Upsert(ctx context.Context, userID, username string, isSuperAdmin bool, notes, addedBy string) error {
	if f.err != nil {
		return f.err
	}
	f.records[userID] = &entities.DiscordAdmin{
		UserID:       userID,
		Username:     username,
		Status:       constants.AdminActive,
		IsSuperAdmin: isSuperAdmin,
		Notes:        notes,
		AddedBy:      addedBy,
	}
	return nil
}

// Remove mirrors the repository's filter: only active, non-super records match.
func (f *fakeAdminStore) Remove(ctx context.Context, userID, removedBy, reason string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	rec, ok := f.records[userID]
	if !ok || rec.Status != constants.AdminActive || rec.IsSuperAdmin {
		return false, nil
	}
	rec.Status = constants.AdminRemoved
	rec.RemovedBy = &removedBy
	rec.RemovalReason = &reason
	return true, nil
}

type fakeBootstrap struct{ ids map[string]bool }

func (f *fakeBootstrap) OnAllowList(userID string) bool { return f.ids[userID] }

func TestAdminService_AddAdmin(t *testing.T) {
	store := &fakeAdminStore{records: map[string]*entities.DiscordAdmin{}}
	svc := NewAdminService(store, &fakeBootstrap{})

	result, err := svc.AddAdmin(context.Background(), "7", "mod-user", false, "event helper", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != AdminGranted {
		t.Errorf("Expected kind %q, got %q", AdminGranted, result.Kind)
	}
	if rec := store.records["7"]; rec == nil || rec.Status != constants.AdminActive {
		t.Error("Expected an active record persisted")
	}

	// Re-adding the same grant reports already active
	result, err = svc.AddAdmin(context.Background(), "7", "mod-user", false, "", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != AdminAlreadyActive {
		t.Errorf("Expected kind %q, got %q", AdminAlreadyActive, result.Kind)
	}
}

// A /addadmin with super:false against a super-admin record must not
// upsert the flag away
func TestAdminService_AddAdmin_RefusesSuperDemotion(t *testing.T) {
	store := &fakeAdminStore{records: map[string]*entities.DiscordAdmin{
		"999": {UserID: "999", Status: constants.AdminActive, IsSuperAdmin: true},
	}}
	svc := NewAdminService(store, &fakeBootstrap{})

	result, err := svc.AddAdmin(context.Background(), "999", "founder", false, "", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != AdminRefusedSuper {
		t.Errorf("Expected kind %q, got %q", AdminRefusedSuper, result.Kind)
	}
	if !store.records["999"].IsSuperAdmin {
		t.Error("Expected super-admin flag untouched")
	}

	// Promotion of a plain admin still goes through
	store.records["7"] = &entities.DiscordAdmin{UserID: "7", Status: constants.AdminActive}
	result, err = svc.AddAdmin(context.Background(), "7", "mod", true, "", "1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != AdminGranted {
		t.Errorf("Expected kind %q, got %q", AdminGranted, result.Kind)
	}
	if !store.records["7"].IsSuperAdmin {
		t.Error("Expected promotion persisted")
	}
}

func TestAdminService_RemoveAdmin(t *testing.T) {
	store := &fakeAdminStore{records: map[string]*entities.DiscordAdmin{
		"7": {UserID: "7", Status: constants.AdminActive},
	}}
	svc := NewAdminService(store, &fakeBootstrap{})

	result, err := svc.RemoveAdmin(context.Background(), "7", "1", "stepped down")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != AdminDropped {
		t.Errorf("Expected kind %q, got %q", AdminDropped, result.Kind)
	}
	if store.records["7"].Status != constants.AdminRemoved {
		t.Error("Expected record soft-deleted")
	}
	if store.records["7"].RemovedBy == nil || *store.records["7"].RemovedBy != "1" {
		t.Error("Expected audit fields set")
	}
}

// Scenario D: removal must never touch a super-admin record
func TestAdminService_RemoveAdmin_RefusesSuperAdmin(t *testing.T) {
	store := &fakeAdminStore{records: map[string]*entities.DiscordAdmin{
		"999": {UserID: "999", Status: constants.AdminActive, IsSuperAdmin: true},
	}}
	svc := NewAdminService(store, &fakeBootstrap{})

	for i := 0; i < 3; i++ {
		result, err := svc.RemoveAdmin(context.Background(), "999", "7", "trying")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result.Kind != AdminRefusedSuper {
			t.Errorf("Expected kind %q, got %q", AdminRefusedSuper, result.Kind)
		}
	}

	rec := store.records["999"]
	if rec.Status != constants.AdminActive || !rec.IsSuperAdmin {
		t.Error("Expected super-admin record unchanged")
	}
}

func TestAdminService_RemoveAdmin_RefusesAllowListedID(t *testing.T) {
	store := &fakeAdminStore{records: map[string]*entities.DiscordAdmin{}}
	svc := NewAdminService(store, &fakeBootstrap{ids: map[string]bool{"42": true}})

	result, err := svc.RemoveAdmin(context.Background(), "42", "7", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != AdminRefusedSuper {
		t.Errorf("Expected kind %q, got %q", AdminRefusedSuper, result.Kind)
	}
}

func TestAdminService_RemoveAdmin_NotFound(t *testing.T) {
	store := &fakeAdminStore{records: map[string]*entities.DiscordAdmin{}}
	svc := NewAdminService(store, &fakeBootstrap{})

	result, err := svc.RemoveAdmin(context.Background(), "404", "1", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != AdminNotFound {
		t.Errorf("Expected kind %q, got %q", AdminNotFound, result.Kind)
	}
}

func TestAdminService_DirectoryErrorSurfaces(t *testing.T) {
	store := &fakeAdminStore{err: errors.New("directory unreachable")}
	svc := NewAdminService(store, &fakeBootstrap{})

	result, err := svc.AddAdmin(context.Background(), "7", "mod", false, "", "1")
	if err == nil {
		t.Error("Expected error surfaced from add")
	}
	if result.Kind != AdminDirectoryError {
		t.Errorf("Expected kind %q, got %q", AdminDirectoryError, result.Kind)
	}

	result, err = svc.RemoveAdmin(context.Background(), "7", "1", "")
	if err == nil {
		t.Error("Expected error surfaced from remove")
	}
	if result.Kind != AdminDirectoryError {
		t.Errorf("Expected kind %q, got %q", AdminDirectoryError, result.Kind)
	}
}
