package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// ActivityHandler handles HTTP requests for the fitness activity tracker.
// Every route is scoped to the authenticated user; activities of other
// users are never visible, so a foreign ID reads as not found.
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityRepo repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepository: activityRepo}
}

// RegisterActivityRoutes registers activity routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activities", h.GetActivities)
	g.POST("/activities", h.CreateActivity)
	g.GET("/activities/history", h.GetHistory)
	g.GET("/activities/:id", h.GetActivity)
	g.PUT("/activities/:id", h.UpdateActivity)
	g.DELETE("/activities/:id", h.DeleteActivity)
}

// CreateActivity logs a new activity for the authenticated user
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	activity := &models.Activity{
		UserID:         currentUserID,
		ActivityType:   req.ActivityType,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Date:           time.Now(),
	}

	if err := h.activityRepository.CreateActivity(activity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, activity)
}

// GetActivities lists the caller's activities newest first
func (h *ActivityHandler) GetActivities(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePagination(c)

	activities, total, err := h.activityRepository.GetActivitiesByUserID(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"activities": activities},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetHistory returns the caller's full newest-first activity history
func (h *ActivityHandler) GetHistory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	activities, err := h.activityRepository.GetHistory(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, activities)
}

// GetActivity retrieves one of the caller's activities
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid activity ID")
	}

	activity, err := h.activityRepository.GetActivityByID(uint(id), currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, activity)
}

// UpdateActivity updates one of the caller's activities
func (h *ActivityHandler) UpdateActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid activity ID")
	}

	var req models.UpdateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	activity, err := h.activityRepository.GetActivityByID(uint(id), currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.ActivityType != "" {
		activity.ActivityType = req.ActivityType
	}
	if req.Duration != 0 {
		activity.Duration = req.Duration
	}
	if req.CaloriesBurned != 0 {
		activity.CaloriesBurned = req.CaloriesBurned
	}

	if err := h.activityRepository.UpdateActivity(activity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, activity)
}

// DeleteActivity deletes one of the caller's activities
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid activity ID")
	}

	removed, err := h.activityRepository.DeleteActivity(uint(id), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
	}

	return c.NoContent(http.StatusNoContent)
}
