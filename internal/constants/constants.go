package constants

import "time"

// Context keys set by the auth middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// Validation limits
const (
	MinPasswordLength    = 8
	MinDescriptionLength = 10
)

// Token lifetimes per issuance path
const (
	SignupTokenTTL = time.Hour
	LoginTokenTTL  = 24 * time.Hour
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
