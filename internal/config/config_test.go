package config

import (
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "DISCORD_TOKEN", "DISCORD_APP_ID", "DISCORD_GUILD_ID",
		"DISCORD_WEBHOOK_URL", "DIGEST_CHANNEL_ID", "MEMBER_ROLE_ID",
		"RESTRICTED_CHANNEL_IDS", "SUPER_ADMIN_IDS", "MONGO_URI", "MONGO_DB",
		"NASA_API_KEY", "HTTP_PORT", "REDIS_HOST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.AppEnv != "development" {
		t.Errorf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.MongoDatabase != "mas" {
		t.Errorf("MongoDatabase = %q, want mas", cfg.MongoDatabase)
	}
	if cfg.NASAAPIKey != "DEMO_KEY" {
		t.Errorf("NASAAPIKey = %q, want DEMO_KEY", cfg.NASAAPIKey)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
}

func TestDegradedModeFlags(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.InteractionsEnabled() {
		t.Error("InteractionsEnabled with no Discord credentials")
	}
	if cfg.DirectoryEnabled() {
		t.Error("DirectoryEnabled with no Mongo URI")
	}
	if cfg.DigestEnabled() {
		t.Error("DigestEnabled with no delivery target")
	}

	// Webhook alone is enough for the digest
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/x")
	cfg = Load()
	if !cfg.DigestEnabled() {
		t.Error("DigestEnabled false with a webhook URL")
	}
	if cfg.InteractionsEnabled() {
		t.Error("InteractionsEnabled true in webhook-only mode")
	}

	// Token plus channel also works, but only with the full credential set
	// does the interactive surface come up
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DIGEST_CHANNEL_ID", "123")
	cfg = Load()
	if !cfg.DigestEnabled() {
		t.Error("DigestEnabled false with token and channel")
	}
	if cfg.InteractionsEnabled() {
		t.Error("InteractionsEnabled true without app and guild ids")
	}

	t.Setenv("DISCORD_APP_ID", "42")
	t.Setenv("DISCORD_GUILD_ID", "99")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg = Load()
	if !cfg.InteractionsEnabled() {
		t.Error("InteractionsEnabled false with full credentials")
	}
	if !cfg.DirectoryEnabled() {
		t.Error("DirectoryEnabled false with a Mongo URI")
	}
}

func TestSplitIDList(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"123", []string{"123"}},
		{"123,456", []string{"123", "456"}},
		{" 123 , 456 ,", []string{"123", "456"}},
		{",,", []string{}},
	}
	for _, tc := range cases {
		got := splitIDList(tc.raw)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitIDList(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestIDListsParsedFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESTRICTED_CHANNEL_IDS", "111,222,333")
	t.Setenv("SUPER_ADMIN_IDS", "900")

	cfg := Load()
	if !reflect.DeepEqual(cfg.RestrictedChannelIDs, []string{"111", "222", "333"}) {
		t.Errorf("RestrictedChannelIDs = %v", cfg.RestrictedChannelIDs)
	}
	if !reflect.DeepEqual(cfg.SuperAdminIDs, []string{"900"}) {
		t.Errorf("SuperAdminIDs = %v", cfg.SuperAdminIDs)
	}
}
