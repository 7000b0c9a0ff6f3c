package utils

import (
	"net/http"

	"roomservice/config"

	"github.com/gin-gonic/gin"
)

// cookieSameSite returns None in production (cross-site frontend) and Lax locally.
func cookieSameSite() http.SameSite {
	if config.IsProduction() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// SetAuthCookie stores the session token in an HTTP-only cookie.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(cookieSameSite())
	c.SetCookie(AuthCookieName, token, int(AuthCookieMaxAge.Seconds()), "/", "", config.IsProduction(), true)
}

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(cookieSameSite())
	c.SetCookie(AuthCookieName, "", -1, "/", "", config.IsProduction(), true)
}
