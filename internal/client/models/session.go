// Package models holds the client-side session types exchanged with the
// backend and kept in the credential store.
package models

// Token is the opaque credential issued by the backend. The client stores and
// transmits it but never inspects its contents.
type Token string

// Profile is the user record returned next to the token. It is cached for
// display only; the backend stays authoritative.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is the body returned by the login and register endpoints.
type AuthResponse struct {
	User    *Profile `json:"user"`
	Access  Token    `json:"access"`
	Refresh string   `json:"refresh"`
}

// SignupForm carries the fields collected by the sign-up flow.
type SignupForm struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
