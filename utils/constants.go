// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis keys of verified ID tokens.
const AuthCachePrefix = "auth:"

// AuthCacheTTL bounds how long a verified ID token is trusted without re-verification.
const AuthCacheTTL = 10 * time.Minute

// ContextAdminKey is the gin context key of the authenticated *models.AdminUser.
const ContextAdminKey = "admin"
