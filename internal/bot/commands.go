package bot

import "github.com/bwmarrin/discordgo"

// Command names, shared between definitions and the dispatch table
const (
	CmdVerify        = "verify"
	CmdStatus        = "status"
	CmdAdminLink     = "adminlink"
	CmdAddAdmin      = "addadmin"
	CmdRemoveAdmin   = "removeadmin"
	CmdListAdmins    = "listadmins"
	CmdEvents        = "events"
	CmdEventRegister = "eventregister"
	CmdSpaceFact     = "spacefact"
	CmdPostDaily     = "postdaily"
)

// Definitions returns the declared commands that have a registered
// handler. Registration overwrites the guild's full command set, so a
// degraded deployment only advertises what it can actually serve.
func (r *Router) Definitions() []*discordgo.ApplicationCommand {
	var out []*discordgo.ApplicationCommand
	for _, cmd := range commandDefinitions() {
		if _, ok := r.handlers[cmd.Name]; ok {
			out = append(out, cmd)
		}
	}
	return out
}

// commandDefinitions is the full guild slash-command surface.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CmdVerify,
			Description: "Verify your MAS membership using your registered email",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "email",
					Description: "Your registered email address with MAS",
					Required:    true,
				},
			},
		},
		{
			Name:        CmdStatus,
			Description: "Check your current MAS membership status on Discord",
		},
		{
			Name:        CmdAdminLink,
			Description: "Admin: link a member's Discord account to an approved application",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The Discord account to link",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "email",
					Description: "The application email to link to",
					Required:    true,
				},
			},
		},
		{
			Name:        CmdAddAdmin,
			Description: "Super-admin: grant bot-admin access to a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The user to grant admin access",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "super",
					Description: "Grant super-admin instead of ordinary admin",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "notes",
					Description: "Why this user is being granted access",
					Required:    false,
				},
			},
		},
		{
			Name:        CmdRemoveAdmin,
			Description: "Admin: remove a user's bot-admin access",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The admin to remove",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for removal",
					Required:    false,
				},
			},
		},
		{
			Name:        CmdListAdmins,
			Description: "Admin: list active bot admins",
		},
		{
			Name:        CmdEvents,
			Description: "Show upcoming MAS events",
		},
		{
			Name:        CmdEventRegister,
			Description: "Register for an upcoming MAS event",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "event",
					Description: "The event name (slug) from /events",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "email",
					Description: "Your registered email address",
					Required:    true,
				},
			},
		},
		{
			Name:        CmdSpaceFact,
			Description: "A random astronomy fact",
		},
		{
			Name:        CmdPostDaily,
			Description: "Admin: post the daily astronomy digest now",
		},
	}
}
