package domain

import "time"

// User is a registered account capable of authenticating and claiming deals.
// PasswordHash is the bcrypt hash of the login password; it is never included
// in any API view.
type User struct {
	ID           string
	Email        string // stored normalized: trimmed, lowercased
	PasswordHash string
	Name         string
	IsVerified   bool // set by an out-of-band verification process; gates locked deals
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the API view of a user. It deliberately omits the password hash.
type PublicUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsVerified bool   `json:"isVerified"`
}

// Public returns the API view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
	}
}
