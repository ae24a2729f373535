package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	db                     *gorm.DB
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(db *gorm.DB, followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		db:                     db,
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:user_id", h.FollowUser)
	g.POST("/unfollow/:user_id", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a user. The relation is a set: following an
// already-followed target is a no-op, not an error.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing, err := h.followRepository.IsFollowing(currentUserID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if isFollowing {
		return c.JSON(http.StatusOK, echo.Map{"detail": "Already following " + target.Username})
	}

	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Relation, counters and notification land together or not at all.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		txUsers := repositories.NewPostgresUserRepository(tx)
		if err := repositories.NewPostgresFollowRepository(tx).CreateFollow(&models.Follow{
			FollowerID:  currentUserID,
			FollowingID: target.ID,
		}); err != nil {
			// Lost a race against an identical follow; the relation exists,
			// which is the requested end state.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		if err := txUsers.IncrementFollowingCount(currentUserID); err != nil {
			return err
		}
		if err := txUsers.IncrementFollowersCount(target.ID); err != nil {
			return err
		}
		actorID := actor.ID
		return h.notificationRepository.WithTx(tx).CreateNotification(&models.Notification{
			RecipientID: target.ID,
			ActorID:     currentUserID,
			Verb:        actor.Username + " started following you",
			TargetType:  models.TargetUser,
			TargetID:    &actorID,
		})
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "You are now following " + target.Username})
}

// UnfollowUser unfollows a user. Removing a non-followed target is a no-op.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		removed, err := repositories.NewPostgresFollowRepository(tx).DeleteFollow(currentUserID, target.ID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		txUsers := repositories.NewPostgresUserRepository(tx)
		if err := txUsers.DecrementFollowingCount(currentUserID); err != nil {
			return err
		}
		return txUsers.DecrementFollowersCount(target.ID)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "You are no longer following " + target.Username})
}

// GetFollowers lists the accounts following a user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	users, err := h.followRepository.GetFollowers(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, compact)
}

// GetFollowing lists the accounts a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	users, err := h.followRepository.GetFollowing(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, compact)
}
