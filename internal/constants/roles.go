package constants

// ApplicationStatus mirrors the `status` field on membershipApplications
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) String() string { return string(s) }

// AdminStatus mirrors the `status` field on discordAdmins
type AdminStatus string

const (
	AdminActive  AdminStatus = "active"
	AdminRemoved AdminStatus = "removed"
)

func (s AdminStatus) String() string { return string(s) }
