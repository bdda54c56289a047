package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"mas-astro/nightwatch/internal/logging"
)

// Config holds all operator-supplied settings, read once at startup.
// Missing values degrade features instead of refusing to start: without
// Discord credentials the bot runs webhook-only, without a Mongo URI the
// interactive membership commands are disabled.
type Config struct {
	AppEnv string

	// Discord gateway
	DiscordToken string
	AppID        string
	GuildID      string

	// Content delivery
	WebhookURL      string
	DigestChannelID string

	// Provisioning targets
	MemberRoleID         string
	RestrictedChannelIDs []string

	// Bootstrap super-admin allow-list
	SuperAdminIDs []string

	// Member directory
	MongoURI      string
	MongoDatabase string

	// External content APIs
	NASAAPIKey string

	// Ops HTTP server
	HTTPPort string

	// Optional Redis cache
	RedisHost string
}

// Load reads configuration from the environment. A .env file is honored
// when present (local development); real deployments set the variables
// directly.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using process environment")
	}

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		AppID:           os.Getenv("DISCORD_APP_ID"),
		GuildID:         os.Getenv("DISCORD_GUILD_ID"),
		WebhookURL:      os.Getenv("DISCORD_WEBHOOK_URL"),
		DigestChannelID: os.Getenv("DIGEST_CHANNEL_ID"),
		MemberRoleID:    os.Getenv("MEMBER_ROLE_ID"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getEnv("MONGO_DB", "mas"),
		NASAAPIKey:      getEnv("NASA_API_KEY", "DEMO_KEY"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisHost:       os.Getenv("REDIS_HOST"),
	}

	cfg.RestrictedChannelIDs = splitIDList(os.Getenv("RESTRICTED_CHANNEL_IDS"))
	cfg.SuperAdminIDs = splitIDList(os.Getenv("SUPER_ADMIN_IDS"))

	return cfg
}

// InteractionsEnabled reports whether the slash-command surface can run.
func (c *Config) InteractionsEnabled() bool {
	return c.DiscordToken != "" && c.AppID != "" && c.GuildID != ""
}

// DirectoryEnabled reports whether the member directory is configured.
func (c *Config) DirectoryEnabled() bool {
	return c.MongoURI != ""
}

// DigestEnabled reports whether the daily digest has a delivery target.
func (c *Config) DigestEnabled() bool {
	return c.WebhookURL != "" || (c.DiscordToken != "" && c.DigestChannelID != "")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitIDList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
