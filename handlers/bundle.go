package handlers

import (
	"time"

	userRepoPkg "roomservice/database/repository/user"
	"roomservice/utils"
)

// HandlerBundle groups all endpoint handlers and what the route guards need.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AuthCache utils.AuthCache

	// Limits for the per-IP rate limiter.
	MaxRequestsPerWindow int
	RateLimitWindow      time.Duration
	ClientURL            string

	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Location *LocationHandler
	Order    *OrderHandler
	WS       *WSHandler
}
