package domain

import "time"

// Role names seeded at startup. Business logic resolves roles by name,
// never by numeric id.
const (
	RoleAdmin           = "Admin"
	RoleCampaignCreator = "Campaign Creator"
	RoleDonor           = "Donor"
)

type Role struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Authority returns the coarse authority label for a role. The mapping
// is exhaustive over the seeded role set; anything else is a plain user.
func (r Role) Authority() string {
	switch r.Name {
	case RoleAdmin:
		return "ADMIN"
	case RoleCampaignCreator:
		return "CREATOR"
	case RoleDonor:
		return "DONOR"
	default:
		return "USER"
	}
}

type User struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	NationalID string    `json:"-"`
	Phone      string    `json:"-"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role.Authority() == "ADMIN"
}
