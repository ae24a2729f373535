package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
)

func createActivity(t *testing.T, e *echo.Echo, token, activityType string, duration int) uint {
	t.Helper()
	rec := doRequest(e, http.MethodPost, "/api/v1/activities", token, map[string]interface{}{
		"activity_type":   activityType,
		"duration":        duration,
		"calories_burned": duration * 8,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to log activity: status %d, body %s", rec.Code, rec.Body.String())
	}
	var activity models.Activity
	if err := jsonUnmarshal(rec.Body.Bytes(), &activity); err != nil {
		t.Fatalf("failed to decode activity: %v", err)
	}
	return activity.ID
}

func TestCreateActivityRejectsUnknownType(t *testing.T) {
	e, db := newTestServer(t)
	_, token := registerUser(t, e, "runner")

	rec := doRequest(e, http.MethodPost, "/api/v1/activities", token, map[string]interface{}{
		"activity_type":   "FLYING",
		"duration":        30,
		"calories_burned": 240,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown activity type, got %d", rec.Code)
	}

	var count int64
	db.Model(&models.Activity{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected activity must not be persisted, got %d rows", count)
	}
}

func TestCreateActivityRequiresPositiveDuration(t *testing.T) {
	e, _ := newTestServer(t)
	_, token := registerUser(t, e, "runner")

	rec := doRequest(e, http.MethodPost, "/api/v1/activities", token, map[string]interface{}{
		"activity_type":   "RUNNING",
		"duration":        0,
		"calories_burned": 0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero duration, got %d", rec.Code)
	}
}

func TestActivitiesAreOwnerScoped(t *testing.T) {
	e, _ := newTestServer(t)
	_, runnerToken := registerUser(t, e, "runner")
	_, swimmerToken := registerUser(t, e, "swimmer")

	activityID := createActivity(t, e, runnerToken, "RUNNING", 30)
	createActivity(t, e, swimmerToken, "SWIMMING", 45)

	// A foreign activity is indistinguishable from a missing one
	rec := doRequest(e, http.MethodGet, fmt.Sprintf("/api/v1/activities/%d", activityID), swimmerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 reading a foreign activity, got %d", rec.Code)
	}
	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/api/v1/activities/%d", activityID), swimmerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting a foreign activity, got %d", rec.Code)
	}
	rec = doRequest(e, http.MethodPut, fmt.Sprintf("/api/v1/activities/%d", activityID), swimmerToken, map[string]interface{}{
		"duration": 60,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating a foreign activity, got %d", rec.Code)
	}

	// The owner still sees it
	rec = doRequest(e, http.MethodGet, fmt.Sprintf("/api/v1/activities/%d", activityID), runnerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d", rec.Code)
	}

	// Listings only contain the caller's rows
	rec = doRequest(e, http.MethodGet, "/api/v1/activities", runnerToken, nil)
	var body struct {
		Data struct {
			Activities []models.Activity `json:"activities"`
		} `json:"data"`
	}
	if err := jsonUnmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode activities: %v", err)
	}
	if len(body.Data.Activities) != 1 || body.Data.Activities[0].ActivityType != "RUNNING" {
		t.Errorf("expected only the runner's activity, got %+v", body.Data.Activities)
	}
}

func TestUpdateActivity(t *testing.T) {
	e, _ := newTestServer(t)
	_, token := registerUser(t, e, "runner")
	activityID := createActivity(t, e, token, "RUNNING", 30)

	rec := doRequest(e, http.MethodPut, fmt.Sprintf("/api/v1/activities/%d", activityID), token, map[string]interface{}{
		"activity_type": "CYCLING",
		"duration":      90,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var activity models.Activity
	if err := jsonUnmarshal(rec.Body.Bytes(), &activity); err != nil {
		t.Fatalf("failed to decode activity: %v", err)
	}
	if activity.ActivityType != "CYCLING" || activity.Duration != 90 {
		t.Errorf("unexpected updated activity: %+v", activity)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	e, db := newTestServer(t)
	userID, token := registerUser(t, e, "runner")

	first := createActivity(t, e, token, "RUNNING", 30)
	second := createActivity(t, e, token, "GYM", 60)

	// sqlite timestamps can collide within a test, separate them
	var a models.Activity
	db.First(&a, first)
	db.Model(&models.Activity{}).Where("id = ?", second).Update("date", a.Date.Add(time.Hour))

	rec := doRequest(e, http.MethodGet, "/api/v1/activities/history", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var history []models.Activity
	if err := jsonUnmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].ActivityType != "GYM" || history[1].ActivityType != "RUNNING" {
		t.Errorf("expected newest first [GYM RUNNING], got [%s %s]", history[0].ActivityType, history[1].ActivityType)
	}
	for _, entry := range history {
		if entry.UserID != userID {
			t.Errorf("history leaked a foreign row: %+v", entry)
		}
	}
}
