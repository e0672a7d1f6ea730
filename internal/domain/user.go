package domain

// User is a credential record. It is provisioned outside the API and never
// modified by it.
type User struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose password hash in JSON
	Disabled     bool   `json:"disabled"`
}

// CanAuthenticate reports whether the account is allowed to log in.
func (u *User) CanAuthenticate() bool {
	return u != nil && !u.Disabled && u.PasswordHash != ""
}
