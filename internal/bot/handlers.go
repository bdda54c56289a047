package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"mas-astro/nightwatch/internal/auth"
	"mas-astro/nightwatch/internal/constants"
	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/services"
)

// DigestTrigger requests an immediate digest post. Returns false when the
// post was suppressed by the recent-post guard.
type DigestTrigger interface {
	TryPublish(ctx context.Context, trigger string) (bool, error)
}

// Handlers binds the slash commands to the underlying services. Every
// handler follows the same shape: acknowledge immediately, resolve
// privileges where required, call the service, deliver the typed outcome's
// message, and return the outcome label for metrics.
type Handlers struct {
	resolver     *auth.Resolver
	verification *services.VerificationService
	admins       *services.AdminService
	events       *services.EventService
	trivia       *services.TriviaService
	digest       DigestTrigger
}

func NewHandlers(
	resolver *auth.Resolver,
	verification *services.VerificationService,
	admins *services.AdminService,
	events *services.EventService,
	trivia *services.TriviaService,
	digest DigestTrigger,
) *Handlers {
	return &Handlers{
		resolver:     resolver,
		verification: verification,
		admins:       admins,
		events:       events,
		trivia:       trivia,
		digest:       digest,
	}
}

// RegisterAll installs every command handler on the router.
func (h *Handlers) RegisterAll(r *Router) {
	r.Register(CmdVerify, h.handleVerify)
	r.Register(CmdStatus, h.handleStatus)
	r.Register(CmdAdminLink, h.handleAdminLink)
	r.Register(CmdAddAdmin, h.handleAddAdmin)
	r.Register(CmdRemoveAdmin, h.handleRemoveAdmin)
	r.Register(CmdListAdmins, h.handleListAdmins)
	r.Register(CmdEvents, h.handleEvents)
	r.Register(CmdEventRegister, h.handleEventRegister)
	r.Register(CmdSpaceFact, h.handleSpaceFact)
	r.Register(CmdPostDaily, h.handlePostDaily)
}

// RegisterContent installs only the handlers that work without the member
// directory, for deployments configured with Discord credentials but no
// Mongo URI.
func (h *Handlers) RegisterContent(r *Router) {
	r.Register(CmdSpaceFact, h.handleSpaceFact)
	r.Register(CmdPostDaily, h.handlePostDaily)
}

func actorFrom(i *discordgo.InteractionCreate) auth.Actor {
	return auth.Actor{
		UserID:         interactionUserID(i),
		HasNativeAdmin: hasNativeAdmin(i),
	}
}

// requireAdmin gates a handler on admin privilege. On failure it has
// already delivered the refusal reply; the second return value is the
// outcome label to report.
func (h *Handlers) requireAdmin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (bool, string) {
	ok, err := h.resolver.IsAdmin(ctx, actorFrom(i))
	if err != nil {
		editText(s, i, constants.MsgDirectoryDown)
		return false, "directory_error"
	}
	if !ok {
		editText(s, i, constants.MsgNeedAdmin)
		return false, "denied"
	}
	return true, ""
}

func (h *Handlers) requireSuperAdmin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (bool, string) {
	ok, err := h.resolver.IsSuperAdmin(ctx, actorFrom(i))
	if err != nil {
		editText(s, i, constants.MsgDirectoryDown)
		return false, "directory_error"
	}
	if !ok {
		editText(s, i, constants.MsgNeedSuperAdmin)
		return false, "denied"
	}
	return true, ""
}

func (h *Handlers) handleVerify(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}

	user := interactionUser(i)
	if user == nil {
		editText(s, i, constants.MsgIdentityUnknown)
		return "identity_error"
	}
	email := commandOptions(i)["email"].StringValue()

	res, _ := h.verification.SelfVerify(ctx, user.ID, user.Username, email)
	editText(s, i, res.Message)
	return string(res.Kind)
}

func (h *Handlers) handleStatus(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}

	app, err := h.verification.Status(ctx, interactionUserID(i))
	if err != nil {
		editText(s, i, constants.MsgDirectoryDown)
		return "directory_error"
	}
	if app == nil {
		editText(s, i, constants.MsgNotVerified)
		return "not_verified"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🔭 MAS Membership Status",
		Color: 3066993,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: app.FullName, Inline: true},
			{Name: "Email", Value: app.Email, Inline: true},
			{Name: "Status", Value: "✅ Verified", Inline: true},
		},
	}
	if app.DiscordVerifiedAt != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Verified on",
			Value:  app.DiscordVerifiedAt.Format("2 January 2006"),
			Inline: true,
		})
	}
	if app.AdminVerification != nil && *app.AdminVerification {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Linked by an admin"}
	}
	editEmbed(s, i, embed)
	return "success"
}

func (h *Handlers) handleAdminLink(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}
	if ok, outcome := h.requireAdmin(ctx, s, i); !ok {
		return outcome
	}

	opts := commandOptions(i)
	target := opts["member"].UserValue(s)
	email := opts["email"].StringValue()

	res, _ := h.verification.AdminLink(ctx, target.ID, target.Username, email)
	if res.Kind == services.VerifyVerified {
		editText(s, i, fmt.Sprintf("✅ Linked <@%s> to %s and applied member access.", target.ID, email))
	} else {
		editText(s, i, res.Message)
	}
	return string(res.Kind)
}

func (h *Handlers) handleAddAdmin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}
	if ok, outcome := h.requireSuperAdmin(ctx, s, i); !ok {
		return outcome
	}

	opts := commandOptions(i)
	target := opts["member"].UserValue(s)
	isSuper := false
	if opt, ok := opts["super"]; ok {
		isSuper = opt.BoolValue()
	}
	notes := ""
	if opt, ok := opts["notes"]; ok {
		notes = opt.StringValue()
	}

	res, _ := h.admins.AddAdmin(ctx, target.ID, target.Username, isSuper, notes, interactionUserID(i))
	editText(s, i, res.Message)
	return string(res.Kind)
}

func (h *Handlers) handleRemoveAdmin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}
	if ok, outcome := h.requireAdmin(ctx, s, i); !ok {
		return outcome
	}

	opts := commandOptions(i)
	target := opts["member"].UserValue(s)
	reason := ""
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	res, _ := h.admins.RemoveAdmin(ctx, target.ID, interactionUserID(i), reason)
	editText(s, i, res.Message)
	return string(res.Kind)
}

func (h *Handlers) handleListAdmins(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}
	if ok, outcome := h.requireAdmin(ctx, s, i); !ok {
		return outcome
	}

	admins, err := h.admins.ListAdmins(ctx)
	if err != nil {
		editText(s, i, constants.MsgDirectoryDown)
		return "directory_error"
	}
	if len(admins) == 0 {
		editText(s, i, "No active bot admins are recorded in the directory.")
		return "success"
	}

	var b strings.Builder
	for _, a := range admins {
		if a.IsSuperAdmin {
			fmt.Fprintf(&b, "⭐ <@%s> — super-admin\n", a.UserID)
		} else {
			fmt.Fprintf(&b, "• <@%s>\n", a.UserID)
		}
	}
	editEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Bot Admins",
		Description: b.String(),
		Color:       3447003,
	})
	return "success"
}

func (h *Handlers) handleEvents(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}

	events, err := h.events.UpcomingEvents(ctx, 10)
	if err != nil {
		editText(s, i, constants.MsgDirectoryDown)
		return "directory_error"
	}
	if len(events) == 0 {
		editText(s, i, constants.MsgNoUpcomingEvents)
		return "success"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🗓️ Upcoming MAS Events",
		Color: 3447003,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Register with /eventregister",
		},
	}
	for _, e := range events {
		value := e.StartsAt.Format("Monday, 2 January 2006, 3:04 PM")
		if e.Location != "" {
			value += " · " + e.Location
		}
		value += fmt.Sprintf("\nRegister: `/eventregister event:%s`", e.Slug)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  e.Title,
			Value: value,
		})
	}
	editEmbed(s, i, embed)
	return "success"
}

func (h *Handlers) handleEventRegister(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}

	opts := commandOptions(i)
	slug := opts["event"].StringValue()
	email := opts["email"].StringValue()

	res, _ := h.events.Register(ctx, slug, email, interactionUserID(i))
	if res.Event != nil && res.Kind == services.RegisterOK {
		editText(s, i, fmt.Sprintf("%s\n**%s** — %s", res.Message, res.Event.Title,
			res.Event.StartsAt.Format("Monday, 2 January 2006, 3:04 PM")))
	} else {
		editText(s, i, res.Message)
	}
	return string(res.Kind)
}

func (h *Handlers) handleSpaceFact(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}

	editEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🌌 Space Fact",
		Description: h.trivia.RandomFact(),
		Color:       10181046,
	})
	return "success"
}

func (h *Handlers) handlePostDaily(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if !deferEphemeral(s, i) {
		return "ack_failed"
	}
	if ok, outcome := h.requireAdmin(ctx, s, i); !ok {
		return outcome
	}
	if h.digest == nil {
		editText(s, i, "⚠️ The daily digest is not configured on this deployment.")
		return "not_configured"
	}

	posted, err := h.digest.TryPublish(ctx, "manual")
	if err != nil {
		logging.Error("Manual digest post failed", "error", err.Error())
		editText(s, i, "⚠️ Could not post the digest. Check the logs for details.")
		return "error"
	}
	if !posted {
		editText(s, i, "The digest was posted within the last few minutes; skipped to avoid a duplicate.")
		return "skipped"
	}
	editText(s, i, "✅ Daily digest posted.")
	return "success"
}
