package middleware

import (
	"net/http"

	userRepo "roomservice/database/repository/user"
	"roomservice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by Protect.
const (
	CtxUserID    = "userID"
	CtxUserRole  = "userRole"
	CtxUserEmail = "userEmail"
)

// Protect authenticates staff from the session cookie. The principal comes
// from the auth cache when present and from the user store otherwise. cache
// may be nil.
func Protect(users userRepo.UserRepository, cache utils.AuthCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		token, err := c.Cookie(utils.AuthCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Not authorized, no token"})
			return
		}
		claims, err := utils.ExtractClaims(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Not authorized, invalid token"})
			return
		}

		ctx := c.Request.Context()
		if cache != nil {
			p, err := cache.Get(ctx, claims.UserID)
			if err != nil {
				logger.Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
			} else if p != nil {
				setPrincipal(c, *p)
				c.Next()
				return
			}
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			logger.Error("Protect: user lookup failed", zap.String("userID", claims.UserID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Authentication error"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Not authorized, user not found"})
			return
		}

		p := utils.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}
		if cache != nil {
			if err := cache.Set(ctx, p); err != nil {
				logger.Warn("failed to cache principal", zap.String("userID", user.ID), zap.Error(err))
			}
		}
		setPrincipal(c, p)
		c.Next()
	}
}

func setPrincipal(c *gin.Context, p utils.Principal) {
	c.Set(CtxUserID, p.UserID)
	c.Set(CtxUserRole, p.Role)
	c.Set(CtxUserEmail, p.Email)
}
