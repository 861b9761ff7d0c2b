// Package client talks to the signlink REST backend.
//
// HTTPClient sends requests relative to a base URL. Authenticated calls go
// through a RoundTripper that reads the current token from a TokenSource and
// attaches it as "Authorization: Token <value>". When such a call comes back
// 401, HTTPClient closes the response and then reports the token it sent to an
// UnauthorizedHandler. Login and Register use a separate, public transport so
// that rejected credentials are not mistaken for an expired session. Do sends
// JSON; DoBody sends a caller-built body such as a multipart upload.
//
// Failures are returned as *Error values classified by Kind. Each kind has a
// sentinel (ErrUnavailable, ErrUnauthorized, ErrRemoteValidation,
// ErrValidation, ErrStorage, ErrUnknown) so callers can use errors.Is.
package client
