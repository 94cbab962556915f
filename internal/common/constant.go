// Package common contains shared constants and sentinel errors used across
// the Sisimpur client.
package common

const (
	// AuthHeaderName carries the bearer token on outbound requests.
	AuthHeaderName = "Authorization"

	// CSRFCookieName is the cookie the backend's CSRF middleware sets;
	// its value is mirrored into CSRFHeaderName on state-changing requests.
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"

	// RequestIDHeaderName tags every outbound request for server-side tracing.
	RequestIDHeaderName = "X-Request-Id"
)
