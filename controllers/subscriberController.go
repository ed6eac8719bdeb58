package controllers

import (
	"net/http"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/services"
)

func GetSubscribers(c *gin.Context) {
	var subscribers []models.Subscriber
	err := initializers.DB.From("subscriber").
		Order(goqu.C("email").Asc()).
		ScanStructsContext(c, &subscribers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}

// UpdateSubscriber is the administrative edit path for a subscriber row;
// the auto-subscribe path never touches existing rows.
func UpdateSubscriber(c *gin.Context) {
	subscriberID, err := strconv.Atoi(c.Param("subscriber_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscriber ID"})
		return
	}

	var edit models.SubscriberEdit
	if err := c.BindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	record := goqu.Record{}
	if edit.Name != nil {
		record["name"] = *edit.Name
	}
	if edit.Is_Active != nil {
		record["is_active"] = *edit.Is_Active
	}
	if edit.Is_Admin != nil {
		record["is_admin"] = *edit.Is_Admin
	}

	if len(record) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	result, err := initializers.DB.Update("subscriber").
		Set(record).
		Where(goqu.C("subscriber_id").Eq(subscriberID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscriber"})
		return
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriber updated."})
}

// StorePushToken registers a moderator device for new-submission alerts.
func StorePushToken(c *gin.Context) {
	var body models.PushTokenCreate
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	insert := initializers.DB.Insert("push_token").
		Rows(goqu.Record{
			"subscriber_id": body.Subscriber_ID,
			"push_token":    body.PushToken,
			"platform":      body.Platform,
		}).
		OnConflict(goqu.DoNothing())

	if _, err := insert.Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored."})
}

// EnsureSubscribed exposes the idempotent opt-in for administrative use.
func EnsureSubscriber(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := services.EnsureSubscribed(body.Email, body.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}
