package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/services"
)

// respondServiceError translates the service error taxonomy into HTTP.
// Stale resolutions are a refresh-and-retry condition for the moderator,
// not a server fault.
func respondServiceError(c *gin.Context, err error) {
	var stale *services.StaleStateError
	var validation *services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.As(err, &stale):
		c.JSON(http.StatusConflict, gin.H{"error": "This item was already handled by someone else"})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	default:
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
