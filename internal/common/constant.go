// Package common contains constants and helpers shared by the client layers.
package common

const (
	// TokenMetadataKey is the single key under which the credential token
	// is persisted in the local metadata store.
	TokenMetadataKey = "token"

	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "

	// DateLayout is the date-only layout used by forms and the backend.
	DateLayout = "2006-01-02"
)
