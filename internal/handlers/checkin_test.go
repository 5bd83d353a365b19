package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInScenario(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/checkin", map[string]string{
		"userId": "a@x.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var first struct {
		Message      string `json:"message"`
		IsNewCheckIn bool   `json:"isNewCheckIn"`
	}
	decodeBody(t, rec, &first)
	assert.True(t, first.IsNewCheckIn)
	assert.Equal(t, "Check-in recorded successfully", first.Message)

	// Same day, same user: 200 rather than 201.
	rec = doJSON(t, router, http.MethodPost, "/api/checkin", map[string]string{
		"userId": "a@x.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var second struct {
		Message      string `json:"message"`
		IsNewCheckIn bool   `json:"isNewCheckIn"`
	}
	decodeBody(t, rec, &second)
	assert.False(t, second.IsNewCheckIn)
	assert.Equal(t, "Already checked in today", second.Message)

	now := time.Now()
	path := fmt.Sprintf("/api/checkins?userId=a@x.com&month=%d&year=%d", int(now.Month())-1, now.Year())
	rec = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var calendar struct {
		CheckInDates  []string `json:"checkInDates"`
		CurrentStreak int      `json:"currentStreak"`
	}
	decodeBody(t, rec, &calendar)
	assert.Equal(t, []string{now.Format("2006-01-02")}, calendar.CheckInDates)
	assert.Equal(t, 1, calendar.CurrentStreak)
}

func TestCheckInRejectsMissingUser(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/checkin", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCheckInsRejectsBadMonth(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/checkins?userId=a@x.com&month=12", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Invalid month", resp.Error)
}
