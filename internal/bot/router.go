package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/metrics"
)

// HandlerFunc processes one slash command and returns an outcome label for
// metrics ("success", "rejected", "denied", "error", ...). Handlers own
// their error handling completely: nothing may escape to the gateway
// library except the reply they choose to send.
type HandlerFunc func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string

const handlerTimeout = 15 * time.Second

// Router dispatches inbound interactions to exactly one handler by command
// name. It owns no state beyond the dispatch table, which is registered
// once at startup.
type Router struct {
	handlers map[string]HandlerFunc
	metrics  *metrics.MetricsRegistry
}

func NewRouter(reg *metrics.MetricsRegistry) *Router {
	return &Router{
		handlers: make(map[string]HandlerFunc),
		metrics:  reg,
	}
}

// Register binds a command name to its handler.
func (r *Router) Register(name string, h HandlerFunc) {
	r.handlers[name] = h
}

// Commands returns the registered command names.
func (r *Router) Commands() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// HandleInteraction is the gateway callback. The handler runs as its own
// task so a slow directory call never blocks the gateway read loop.
func (r *Router) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := r.handlers[name]
	if !ok {
		logging.Warn("No handler registered for command", "command", name)
		return
	}

	traceID := uuid.NewString()
	log := logging.WithInteraction(traceID, name, interactionUserID(i))
	log.Infow("Interaction received")

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Errorw("Handler panicked", "panic", rec)
				r.count(name, "panic")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		start := time.Now()
		outcome := handler(ctx, s, i)

		r.count(name, outcome)
		if r.metrics != nil {
			r.metrics.InteractionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}
		log.Infow("Interaction handled", "outcome", outcome, "duration", time.Since(start).String())
	}()
}

func (r *Router) count(command, outcome string) {
	if r.metrics != nil {
		r.metrics.InteractionsTotal.WithLabelValues(command, outcome).Inc()
	}
}
