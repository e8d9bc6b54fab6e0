package model

type UserType int

const (
	UserTypeInsurer       UserType = 1
	UserTypePropertyOwner UserType = 2
	UserTypeContractor    UserType = 3
)

type User struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Display      string   `json:"display,omitempty"`
	Email        string   `json:"email,omitempty"`
	ID           int64    `json:"id"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Organisation string   `json:"organisation,omitempty"`
	Role         string   `json:"role,omitempty"`
	Type         UserType `json:"type"`
}

// DisplayName prefers the explicit display string.
func (u User) DisplayName() string {
	if u.Display != "" {
		return u.Display
	}
	return u.FirstName + " " + u.LastName
}

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID       int64
	Name         string
	ProfileImage string
	Type         UserType
}

func (p Principal) IsInsurer() bool       { return p.Type == UserTypeInsurer }
func (p Principal) IsPropertyOwner() bool { return p.Type == UserTypePropertyOwner }
func (p Principal) IsContractor() bool    { return p.Type == UserTypeContractor }
