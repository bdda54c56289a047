package bot

import (
	"github.com/bwmarrin/discordgo"

	"mas-astro/nightwatch/internal/logging"
)

// deferEphemeral sends the immediate deferred acknowledgment, buying time
// for directory calls within the platform's response window. The final
// reply arrives later via editText/editEmbed and stays visible only to the
// requester.
func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logging.Error("Failed to acknowledge interaction", "error", err.Error())
		return false
	}
	return true
}

// editText delivers the final reply text. A failure here usually means the
// interaction was abandoned client-side; it is logged and discarded.
func editText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		logging.Warn("Failed to deliver interaction reply", "error", err.Error())
	}
}

// editEmbed delivers the final reply as a rich embed.
func editEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		logging.Warn("Failed to deliver interaction reply", "error", err.Error())
	}
}

// interactionUser returns the invoking user for both guild and DM contexts.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if u := interactionUser(i); u != nil {
		return u.ID
	}
	return ""
}

// hasNativeAdmin reports whether the invoking member carries Discord's own
// Administrator permission bit in this guild.
func hasNativeAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// commandOptions flattens the interaction's options into a name-keyed map.
// Required-ness and choice membership are already validated by the platform.
func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		out[opt.Name] = opt
	}
	return out
}
