package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PrayerWall/initializers"
)

// Test publicLink
func TestPublicLink(t *testing.T) {
	original := initializers.AppConfig.PublicBaseURL
	t.Cleanup(func() { initializers.AppConfig.PublicBaseURL = original })

	t.Run("unset base URL yields no link", func(t *testing.T) {
		initializers.AppConfig.PublicBaseURL = ""
		assert.Equal(t, "", publicLink("/prayers"))
	})

	t.Run("trailing slash is normalized", func(t *testing.T) {
		initializers.AppConfig.PublicBaseURL = "https://prayerwall.example.org/"
		assert.Equal(t, "https://prayerwall.example.org/prayers", publicLink("/prayers"))
	})

	t.Run("plain base", func(t *testing.T) {
		initializers.AppConfig.PublicBaseURL = "https://prayerwall.example.org"
		assert.Equal(t, "https://prayerwall.example.org/admin/pending", publicLink("/admin/pending"))
	})
}
