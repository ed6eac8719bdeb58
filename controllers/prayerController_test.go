package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/PrayerWall/models"
)

var prayerColumns = []string{
	"prayer_id", "title", "description", "requester", "prayer_for", "email",
	"is_anonymous", "status", "date_answered", "approval_status",
	"reviewed_at", "denied_at", "denial_reason", "created_at",
}

// Test GetPrayerWall
func TestGetPrayerWall(t *testing.T) {
	t.Run("anonymous requester is masked on the wall", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		now := time.Now()
		rows := sqlmock.NewRows(prayerColumns).
			AddRow(1, "Healing for Mom", "She is in the hospital.", "Jane", "Mom", "jane@example.com",
				true, "current", nil, "approved", now, nil, nil, now).
			AddRow(2, "New job", "Looking for work.", "Bob", "", nil,
				false, "answered", now, "approved", now, nil, nil, now)
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest("GET", "/prayers", nil)

		GetPrayerWall(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Prayers []models.WallPrayer `json:"prayers"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Prayers, 2)
		assert.Equal(t, "Anonymous", response.Prayers[0].Requester)
		assert.Equal(t, "Bob", response.Prayers[1].Requester)
		assert.NotContains(t, w.Body.String(), "jane@example.com")
	})

	t.Run("empty wall", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(prayerColumns))

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest("GET", "/prayers", nil)

		GetPrayerWall(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"prayers":[]`)
	})
}

// Test SubmitPrayer
func TestSubmitPrayer(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name: "successful submission",
			body: map[string]interface{}{
				"title":       "Healing for Mom",
				"description": "She is in the hospital.",
				"requester":   "Jane",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing required field",
			body: map[string]interface{}{
				"title": "Healing for Mom",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed email",
			body: map[string]interface{}{
				"title":       "Healing for Mom",
				"description": "She is in the hospital.",
				"requester":   "Jane",
				"email":       "not-an-email",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus == http.StatusCreated {
				mock.ExpectQuery("INSERT").
					WillReturnRows(sqlmock.NewRows([]string{"prayer_id"}).AddRow(7))
			}

			c, w := SetupTestContext()
			bodyBytes, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("POST", "/prayers", bytes.NewBuffer(bodyBytes))
			c.Request.Header.Set("Content-Type", "application/json")

			SubmitPrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.Contains(t, w.Body.String(), `"prayerId":7`)
			}
		})
	}
}

// Test SubmitPrayerUpdate
func TestSubmitPrayerUpdate(t *testing.T) {
	tests := []struct {
		name           string
		prayerID       string
		body           map[string]interface{}
		parentRows     *sqlmock.Rows
		expectedStatus int
	}{
		{
			name:     "successful submission",
			prayerID: "1",
			body: map[string]interface{}{
				"content": "She is home again.",
				"author":  "Jane",
			},
			parentRows: sqlmock.NewRows(prayerColumns).
				AddRow(1, "Healing for Mom", "desc", "Jane", "", nil,
					false, "current", nil, "approved", nil, nil, nil, time.Now()),
			expectedStatus: http.StatusCreated,
		},
		{
			name:     "parent prayer not found",
			prayerID: "99",
			body: map[string]interface{}{
				"content": "She is home again.",
				"author":  "Jane",
			},
			parentRows:     sqlmock.NewRows(prayerColumns),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:     "parent prayer not published",
			prayerID: "1",
			body: map[string]interface{}{
				"content": "She is home again.",
				"author":  "Jane",
			},
			parentRows: sqlmock.NewRows(prayerColumns).
				AddRow(1, "Healing for Mom", "desc", "Jane", "", nil,
					false, "current", nil, "pending", nil, nil, nil, time.Now()),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid prayer ID",
			prayerID:       "abc",
			body:           map[string]interface{}{"content": "Hi", "author": "Jane"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.parentRows != nil {
				mock.ExpectQuery("SELECT").WillReturnRows(tt.parentRows)
			}
			if tt.expectedStatus == http.StatusCreated {
				mock.ExpectQuery("INSERT").
					WillReturnRows(sqlmock.NewRows([]string{"prayer_update_id"}).AddRow(3))
			}

			c, w := SetupTestContext()
			c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: tt.prayerID})

			bodyBytes, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("POST", "/prayers/"+tt.prayerID+"/updates", bytes.NewBuffer(bodyBytes))
			c.Request.Header.Set("Content-Type", "application/json")

			SubmitPrayerUpdate(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// Test SubmitDeletionRequest
func TestSubmitDeletionRequest(t *testing.T) {
	t.Run("successful submission", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(prayerColumns).
			AddRow(1, "Healing for Mom", "desc", "Jane", "", nil,
				false, "current", nil, "approved", nil, nil, nil, time.Now()))
		mock.ExpectQuery("INSERT").
			WillReturnRows(sqlmock.NewRows([]string{"deletion_request_id"}).AddRow(4))

		c, w := SetupTestContext()
		c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: "1"})

		bodyBytes, _ := json.Marshal(map[string]interface{}{
			"requestedBy": "Jane",
			"reason":      "Posted by mistake",
		})
		c.Request = httptest.NewRequest("POST", "/prayers/1/deletion-requests", bytes.NewBuffer(bodyBytes))
		c.Request.Header.Set("Content-Type", "application/json")

		SubmitDeletionRequest(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"deletionRequestId":4`)
	})
}

// Test SubmitStatusChangeRequest
func TestSubmitStatusChangeRequest(t *testing.T) {
	t.Run("invalid requested status", func(t *testing.T) {
		_, _, cleanup := SetupTestDB(t)
		defer cleanup()

		c, w := SetupTestContext()
		c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: "1"})

		bodyBytes, _ := json.Marshal(map[string]interface{}{
			"requestedBy":     "Jane",
			"requestedStatus": "resolved",
		})
		c.Request = httptest.NewRequest("POST", "/prayers/1/status-requests", bytes.NewBuffer(bodyBytes))
		c.Request.Header.Set("Content-Type", "application/json")

		SubmitStatusChangeRequest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
