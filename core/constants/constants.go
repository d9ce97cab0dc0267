package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 30 * time.Second

	DatabaseMaxOpenConns    = 20
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Echo context keys
const (
	ContextTokenData = "token_data"
	ContextToken     = "token"
)

const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Redis keys
const (
	RedisKeyProposalDraft   = "proposal:draft:"
	RedisKeyProposalLock    = "proposal:lock:"
	RedisKeyCurrentUser     = "account:me:"
	RedisKeyTokenBlacklist  = "auth:blacklist:"
	RedisKeyInterestCatalog = "interest:catalog"
)

const (
	SubmitLockTTL = 30 * time.Second
)

// University e-mail domain accepted at registration.
const StudentEmailDomain = "@std.yildiz.edu.tr"
