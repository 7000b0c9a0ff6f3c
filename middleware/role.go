package middleware

import (
	"net/http"

	"roomservice/models"
	"roomservice/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits requests whose authenticated role is one of roles.
// It must run after Protect.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[c.GetString(CtxUserRole)] {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Access denied"})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
}

func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin)
}
