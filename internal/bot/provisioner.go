package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Restricted-channel capabilities granted to verified members
const memberChannelAllow = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionReadMessageHistory

// DiscordProvisioner applies platform-side grants for verified members.
// Every operation is idempotent on the Discord side: re-adding a held role
// or re-writing an identical permission overwrite is a no-op.
type DiscordProvisioner struct {
	session      *discordgo.Session
	guildID      string
	memberRoleID string
}

func NewDiscordProvisioner(session *discordgo.Session, guildID, memberRoleID string) *DiscordProvisioner {
	return &DiscordProvisioner{
		session:      session,
		guildID:      guildID,
		memberRoleID: memberRoleID,
	}
}

// EnsureMemberRole grants the organization's member role.
func (p *DiscordProvisioner) EnsureMemberRole(ctx context.Context, userID string) error {
	if p.memberRoleID == "" {
		return nil
	}
	if err := p.session.GuildMemberRoleAdd(p.guildID, userID, p.memberRoleID); err != nil {
		return fmt.Errorf("failed to grant member role: %w", err)
	}
	return nil
}

// EnsureChannelAccess writes the member's permission overwrite on one
// restricted channel.
func (p *DiscordProvisioner) EnsureChannelAccess(ctx context.Context, channelID, userID string) error {
	err := p.session.ChannelPermissionSet(
		channelID,
		userID,
		discordgo.PermissionOverwriteTypeMember,
		memberChannelAllow,
		0,
	)
	if err != nil {
		return fmt.Errorf("failed to set channel permissions: %w", err)
	}
	return nil
}

// SendWelcome delivers the welcome DM. Users with DMs closed cause a
// delivery error the caller logs and moves past.
func (p *DiscordProvisioner) SendWelcome(ctx context.Context, userID, fullName string) error {
	channel, err := p.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	msg := fmt.Sprintf(
		"🎉 Welcome to the Manipur Astronomical Society, %s!\n\n"+
			"Your membership is verified and the member channels are now open to you. "+
			"Say hello, check /events for upcoming observation nights, and clear skies! 🔭",
		fullName,
	)
	if _, err := p.session.ChannelMessageSend(channel.ID, msg); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}
	return nil
}
