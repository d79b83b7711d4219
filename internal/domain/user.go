package domain

import "time"

// AccountState represents lifecycle states for a user account.
type AccountState string

const (
	AccountStatePending AccountState = "PENDING"
	AccountStateActive  AccountState = "ACTIVE"
)

// User is the domain model for a freelancer profile and its login account.
type User struct {
	ID               string
	Username         string
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     string
	IsActive         bool
	IsStaff          bool
	IsSuperuser      bool
	Skill            Skill
	Area             Area
	RequestFee       RequestFee
	Portfolio        string
	SelfIntroduction string
	Twitter          string
	Instagram        string
	TopImage         string
	Like             int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// State derives the lifecycle state from the active flag.
func (u *User) State() AccountState {
	if u.IsActive {
		return AccountStateActive
	}
	return AccountStatePending
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// CanViewOrEdit reports whether actor may see or change target's private profile.
func CanViewOrEdit(actor, target *User) bool {
	if actor == nil || target == nil {
		return false
	}
	return actor.ID == target.ID || actor.IsSuperuser
}
