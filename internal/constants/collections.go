package constants

// Directory collection names
const (
	CollMembershipApplications = "membershipApplications"
	CollDiscordAdmins          = "discordAdmins"
	CollEvents                 = "events"
	CollEventRegistrations     = "eventRegistrations"
)
