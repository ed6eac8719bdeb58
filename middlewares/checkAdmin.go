package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
)

// CheckAdmin gates the moderation and job endpoints behind a shared key
// supplied in the X-Admin-Key header. Session handling lives outside this
// service; this is only the machine-to-machine gate for moderators and the
// external scheduler.
func CheckAdmin(c *gin.Context) {
	expected := initializers.AppConfig.AdminAPIKey
	provided := c.GetHeader("X-Admin-Key")

	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing admin key"})
		return
	}

	c.Next()
}
