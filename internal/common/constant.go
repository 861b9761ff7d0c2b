// Package common contains constants and sentinel errors shared by the
// signlink client and the development backend.
package common

const (
	// AuthorizationHeaderName carries the session token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// AuthorizationScheme prefixes the token value: "Token <access>".
	AuthorizationScheme = "Token"

	// RequestIDHeaderName correlates client and backend log lines.
	RequestIDHeaderName = "X-Request-ID"
)
