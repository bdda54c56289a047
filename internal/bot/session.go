package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mas-astro/nightwatch/internal/logging"
)

// Bot manages the Discord gateway lifecycle and slash-command registration.
type Bot struct {
	session *discordgo.Session
	router  *Router
	appID   string
	guildID string
}

// New creates and configures the gateway session. It does not connect;
// call Start.
func New(token, appID, guildID string, router *Router) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages

	s.AddHandler(router.HandleInteraction)

	return &Bot{
		session: s,
		router:  router,
		appID:   appID,
		guildID: guildID,
	}, nil
}

// Start opens the gateway connection and registers the guild slash commands.
// Registration overwrites the full set, so removed commands disappear too.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.appID, b.guildID, b.router.Definitions())
	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	logging.Info("Slash commands registered",
		"count", len(registered),
		"guild_id", b.guildID,
	)
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// Session exposes the underlying session for the provisioner and publisher.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}
