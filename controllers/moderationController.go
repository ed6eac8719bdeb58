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

// GetPendingItems returns everything awaiting moderation, grouped by kind.
func GetPendingItems(c *gin.Context) {
	var prayers []models.Prayer
	if err := initializers.DB.From("prayer").
		Where(goqu.C("approval_status").Eq(models.ApprovalPending)).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(c, &prayers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending prayers"})
		return
	}

	var updates []models.PrayerUpdate
	if err := initializers.DB.From("prayer_update").
		Where(goqu.C("approval_status").Eq(models.ApprovalPending)).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(c, &updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending updates"})
		return
	}

	var deletions []models.DeletionRequest
	if err := initializers.DB.From("deletion_request").
		Where(goqu.C("approval_status").Eq(models.ApprovalPending)).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(c, &deletions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending deletion requests"})
		return
	}

	var updateDeletions []models.UpdateDeletionRequest
	if err := initializers.DB.From("update_deletion_request").
		Where(goqu.C("approval_status").Eq(models.ApprovalPending)).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(c, &updateDeletions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending update deletion requests"})
		return
	}

	var statusChanges []models.StatusChangeRequest
	if err := initializers.DB.From("status_change_request").
		Where(goqu.C("approval_status").Eq(models.ApprovalPending)).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(c, &statusChanges); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending status change requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prayers":                prayers,
		"updates":                updates,
		"deletionRequests":       deletions,
		"updateDeletionRequests": updateDeletions,
		"statusChangeRequests":   statusChanges,
	})
}

func ApprovePrayer(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
		return
	}

	prayer, err := services.ApprovePrayer(prayerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prayer approved.",
		"prayer":  prayer.ToWallPrayer(),
	})
}

func DenyPrayer(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
		return
	}

	var body models.DenialRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := services.DenyPrayer(prayerID, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer denied."})
}

func ApprovePrayerUpdate(c *gin.Context) {
	updateID, err := strconv.Atoi(c.Param("update_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update ID"})
		return
	}

	update, err := services.ApproveUpdate(updateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Update approved.",
		"prayerId": update.Prayer_ID,
	})
}

func DenyPrayerUpdate(c *gin.Context) {
	updateID, err := strconv.Atoi(c.Param("update_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update ID"})
		return
	}

	var body models.DenialRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := services.DenyUpdate(updateID, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Update denied."})
}

func ApproveDeletionRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := services.ApproveDeletionRequest(requestID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deletion request approved and prayer deleted."})
}

func DenyDeletionRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var body models.DenialRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := services.DenyDeletionRequest(requestID, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deletion request denied."})
}

func ApproveUpdateDeletionRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := services.ApproveUpdateDeletionRequest(requestID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deletion request approved and update deleted."})
}

func DenyUpdateDeletionRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var body models.DenialRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := services.DenyUpdateDeletionRequest(requestID, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deletion request denied."})
}

func ApproveStatusChangeRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := services.ApproveStatusChangeRequest(requestID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status change request approved."})
}

func DenyStatusChangeRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var body models.DenialRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := services.DenyStatusChangeRequest(requestID, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status change request denied."})
}

// UpdatePrayerStatus is the direct admin status write (no request involved).
func UpdatePrayerStatus(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
		return
	}

	var body models.StatusWrite
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := services.SetPrayerStatus(prayerID, body.Status); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer status updated."})
}
