package users

import "time"

// User is an account of the development backend.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	CreatedAt    time.Time

	Profile Profile
}

// Profile holds the fields editable through PUT /profile/.
type Profile struct {
	Name         string
	DateOfBirth  string
	Bio          string
	Gender       string
	ShowASLBadge bool
}

// FullName is the display name used by search: the profile name when set,
// otherwise first and last name.
func (u *User) FullName() string {
	if u.Profile.Name != "" {
		return u.Profile.Name
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}
