package constants

// User-facing replies for the verification flow
const (
	MsgNotApproved = "❌ No approved MAS membership was found for that email. " +
		"If you haven't applied yet, please apply at the MAS join page. " +
		"If you applied recently, your application may still be under review."
	MsgLinkedToOther = "❌ That email is already verified by a different Discord account. " +
		"If you believe this is a mistake, please contact an admin."
	MsgAlreadyVerified = "✅ You're already verified! Your membership is active and your channel access has been re-confirmed."
	MsgVerified        = "🎉 Welcome to MAS! Your membership is verified and you now have access to the member channels."
	MsgDirectoryDown   = "⚠️ The membership directory is unavailable right now. Please try again later or contact an admin."
	MsgNotVerified     = "You're not verified yet. Use /verify with your registered email to link your membership."
	MsgIdentityUnknown = "⚠️ Could not identify your Discord account from this interaction. Please try again."
)

// Admin moderation replies
const (
	MsgNeedAdmin          = "❌ You need bot-admin permission to use this command."
	MsgNeedSuperAdmin     = "❌ Only a super-admin can use this command."
	MsgSuperAdminImmut    = "❌ Super-admins cannot be demoted or removed through this command."
	MsgAdminAdded         = "✅ Admin access granted."
	MsgAdminRemoved       = "✅ Admin access removed."
	MsgAdminAlreadyActive = "That user is already an active admin."
	MsgAdminNotFound      = "No active admin record exists for that user."
)

// Event replies
const (
	MsgNoUpcomingEvents    = "No upcoming events are scheduled right now. Watch the announcements channel!"
	MsgEventNotFound       = "❌ No event was found with that name."
	MsgAlreadyRegistered   = "You're already registered for this event. See you there! 🔭"
	MsgEventRegistered     = "✅ You're registered! We'll share joining details closer to the event."
	MsgRegistrationFailure = "⚠️ Could not record your registration. Please try again later or contact an admin."
)
