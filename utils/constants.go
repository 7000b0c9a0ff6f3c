// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "token"

// AuthCookieMaxAge is how long browsers keep the session cookie.
const AuthCookieMaxAge = 7 * 24 * time.Hour
