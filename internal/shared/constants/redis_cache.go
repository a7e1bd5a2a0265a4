package constants

import (
	"time"
)

// Redis Cache Configuration
// Pattern: storefront:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Availability is never cached: booked slots must be read live on every details load.
const (
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // 15 minutes - navigation contexts
	TTL_DYNAMIC_SHORT     = 5 * time.Minute  // 5 minutes - experience listings
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "storefront"
)

// ================== EXPERIENCES MODULE ==================

const (
	CACHE_KEY_EXPERIENCES_LIST = CACHE_PREFIX + ":experiences:list"
)

const (
	TTL_EXPERIENCES_LIST = TTL_DYNAMIC_SHORT
)

// ================== NAVIGATION MODULE ==================

// Navigation contexts are one-shot: written once by the producing view, consumed with GETDEL.
const (
	CACHE_KEY_NAV_CONTEXT = CACHE_PREFIX + ":nav:" // + kind:token
)

const (
	TTL_NAV_CONTEXT = TTL_SEMI_STATIC_QUICK
)

// ================== RATE LIMIT MODULE ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== KEY BUILDERS ==================

func BuildNavContextKey(kind, token string) string {
	return CACHE_KEY_NAV_CONTEXT + kind + ":" + token
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return CACHE_KEY_RATE_LIMIT + clientIP + ":" + limitType
}
