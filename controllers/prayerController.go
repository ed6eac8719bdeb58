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

// GetPrayerWall returns the approved prayers in wall order (newest first).
// Requester names pass through the anonymous-safe projection.
func GetPrayerWall(c *gin.Context) {
	var prayers []models.Prayer
	err := initializers.DB.From("prayer").
		Where(goqu.C("approval_status").Eq(models.ApprovalApproved)).
		Order(goqu.C("created_at").Desc()).
		ScanStructsContext(c, &prayers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers"})
		return
	}

	wall := make([]models.WallPrayer, 0, len(prayers))
	for _, p := range prayers {
		wall = append(wall, p.ToWallPrayer())
	}

	c.JSON(http.StatusOK, gin.H{"prayers": wall})
}

func SubmitPrayer(c *gin.Context) {
	var submission models.PrayerSubmission
	if err := c.BindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	prayer, err := services.SubmitPrayer(submission)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Prayer submitted for review.",
		"prayerId": prayer.Prayer_ID,
	})
}

func SubmitPrayerUpdate(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
		return
	}

	var submission models.PrayerUpdateSubmission
	if err := c.BindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update, err := services.SubmitPrayerUpdate(prayerID, submission)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Update submitted for review.",
		"prayerUpdateId": update.Prayer_Update_ID,
	})
}

func SubmitDeletionRequest(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
		return
	}

	var submission models.DeletionRequestSubmission
	if err := c.BindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	request, err := services.SubmitDeletionRequest(prayerID, submission)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Deletion request submitted for review.",
		"deletionRequestId": request.Deletion_Request_ID,
	})
}

func SubmitUpdateDeletionRequest(c *gin.Context) {
	updateID, err := strconv.Atoi(c.Param("update_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update ID"})
		return
	}

	var submission models.DeletionRequestSubmission
	if err := c.BindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	request, err := services.SubmitUpdateDeletionRequest(updateID, submission)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":                 "Deletion request submitted for review.",
		"updateDeletionRequestId": request.Update_Deletion_Request_ID,
	})
}

func SubmitStatusChangeRequest(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
		return
	}

	var submission models.StatusChangeSubmission
	if err := c.BindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	request, err := services.SubmitStatusChangeRequest(prayerID, submission)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":               "Status change request submitted for review.",
		"statusChangeRequestId": request.Status_Change_Request_ID,
	})
}
