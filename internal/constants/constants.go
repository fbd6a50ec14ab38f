package constants

// Context keys set by the auth middleware.
const (
	ContextKeyPrincipal = "principal"
)

// Pagination bounds.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8
