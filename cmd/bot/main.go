package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mas-astro/nightwatch/internal/api"
	"mas-astro/nightwatch/internal/astro"
	"mas-astro/nightwatch/internal/auth"
	"mas-astro/nightwatch/internal/bot"
	"mas-astro/nightwatch/internal/common"
	"mas-astro/nightwatch/internal/config"
	"mas-astro/nightwatch/internal/db"
	"mas-astro/nightwatch/internal/db/repositories"
	"mas-astro/nightwatch/internal/jobs"
	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/metrics"
	"mas-astro/nightwatch/internal/models/entities"
	"mas-astro/nightwatch/internal/providers"
	"mas-astro/nightwatch/internal/routes"
	"mas-astro/nightwatch/internal/services"
)

// directoryUnavailable stands in for the admin lookup when no Mongo URI is
// configured. Privilege checks fall back to the native bit and the
// allow-list; everything else fails closed.
type directoryUnavailable struct{}

func (directoryUnavailable) FindActiveByUserID(ctx context.Context, userID string) (*entities.DiscordAdmin, error) {
	return nil, errors.New("member directory is not configured")
}

func main() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Nightwatch starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	cfg := config.Load()
	metricsReg := metrics.NewMetricsRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache: Redis when configured, in-memory otherwise
	var cache common.CacheInterface
	if cfg.RedisHost != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
			cache = common.NewCacheService(3600, 600)
		} else {
			logging.Info("Using Redis cache", "host", cfg.RedisHost)
			cache = redisCache
		}
	} else {
		cache = common.NewCacheService(3600, 600)
	}
	defer cache.Close()

	// Member directory. A failure here degrades the deployment instead of
	// killing it: the digest and content commands still work.
	directoryUp := false
	if cfg.DirectoryEnabled() {
		if err := db.InitMongo(cfg.MongoURI, cfg.MongoDatabase); err != nil {
			logging.Error("Failed to connect to member directory, membership commands disabled",
				"error", err.Error())
		} else {
			logging.Info("Connected to member directory", "database", cfg.MongoDatabase)
			directoryUp = true
		}
	} else {
		logging.Warn("No MONGO_URI configured, membership commands disabled")
	}
	if directoryUp {
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			_ = db.Close(closeCtx)
		}()
	}

	// Privilege resolver over the allow-list and (when up) the directory
	var adminLookup auth.AdminLookup = directoryUnavailable{}
	var adminRepo *repositories.AdminRepository
	var appRepo *repositories.ApplicationRepository
	var eventRepo *repositories.EventRepository
	if directoryUp {
		adminRepo = repositories.NewAdminRepository(db.Database, metricsReg)
		appRepo = repositories.NewApplicationRepository(db.Database, metricsReg)
		eventRepo = repositories.NewEventRepository(db.Database, metricsReg)
		adminLookup = adminRepo
	}
	resolver := auth.NewResolver(cfg.SuperAdminIDs, adminLookup)

	// Digest content sources
	nasa := providers.NewNASAProvider(cfg.NASAAPIKey, cache, metricsReg)
	openNotify := providers.NewOpenNotifyProvider()

	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		logging.Warn("Failed to load Asia/Kolkata timezone, using UTC", "error", err.Error())
		location = time.UTC
	}
	builder := astro.NewBuilder(nasa, openNotify, location)

	trivia := services.NewTriviaService(rand.New(rand.NewSource(time.Now().UnixNano())))

	// Discord gateway
	var gateway api.GatewayStatus
	var discordBot *bot.Bot
	router := bot.NewRouter(metricsReg)
	if cfg.InteractionsEnabled() {
		discordBot, err = bot.New(cfg.DiscordToken, cfg.AppID, cfg.GuildID, router)
		if err != nil {
			logging.Error("Failed to create Discord session", "error", err.Error())
			log.Fatalf("❌ Failed to create Discord session: %v", err)
		}
	} else {
		logging.Warn("Discord credentials incomplete, running without slash commands")
	}

	// Digest delivery and scheduling
	var digestTrigger bot.DigestTrigger
	var publisher jobs.Publisher
	switch {
	case cfg.WebhookURL != "":
		publisher = bot.NewWebhookPublisher(cfg.WebhookURL)
		logging.Info("Digest delivery via webhook")
	case discordBot != nil && cfg.DigestChannelID != "":
		publisher = bot.NewChannelPublisher(discordBot.Session(), cfg.DigestChannelID)
		logging.Info("Digest delivery via channel message", "channel_id", cfg.DigestChannelID)
	default:
		logging.Warn("No digest delivery target configured, daily digest disabled")
	}
	if publisher != nil {
		startupPost := appEnv != "production"
		digestTrigger = jobs.InitializeJobs(ctx, builder, publisher, location, 8, metricsReg, directoryUp, startupPost)
	}

	// Slash-command surface
	if discordBot != nil {
		provisioner := bot.NewDiscordProvisioner(discordBot.Session(), cfg.GuildID, cfg.MemberRoleID)

		handlers := bot.NewHandlers(
			resolver,
			services.NewVerificationService(appRepo, provisioner, cfg.RestrictedChannelIDs, metricsReg),
			services.NewAdminService(adminRepo, resolver),
			services.NewEventService(eventRepo),
			trivia,
			digestTrigger,
		)
		if directoryUp {
			handlers.RegisterAll(router)
		} else {
			handlers.RegisterContent(router)
		}

		if err := discordBot.Start(); err != nil {
			logging.Error("Failed to start Discord bot", "error", err.Error())
			log.Fatalf("❌ Failed to start Discord bot: %v", err)
		}
		defer discordBot.Stop()
		gateway = discordBot.Session()
		logging.Info("Discord bot connected", "guild_id", cfg.GuildID)
	}

	// Ops HTTP server: health and digest preview behind the chi router,
	// metrics mounted outside it so scrapes skip the rate limiter
	upSince := time.Now()
	opsRouter := routes.RegisterRoutes(upSince, metricsReg, gateway, directoryUp, builder)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", opsRouter)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: mux,
	}
	go func() {
		logging.Info("Ops server starting", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ops server failed", "error", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	logging.Info("Shutting down", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Ops server shutdown error", "error", err.Error())
	}
}
