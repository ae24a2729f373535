package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/socialite-app/backend/internal/models"
)

func TestLikeNotifiesAuthorOnce(t *testing.T) {
	e, db := newTestServer(t)
	bobID, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	postID := createPost(t, e, bobToken, "Hello", "first post")

	rec := doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), aliceToken, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on like, got %d (%s)", rec.Code, rec.Body.String())
	}

	var notifs []models.Notification
	db.Where("recipient_id = ?", bobID).Find(&notifs)
	if len(notifs) != 1 {
		t.Fatalf("expected exactly 1 notification for bob, got %d", len(notifs))
	}
	n := notifs[0]
	if n.Verb != "alice liked your post" {
		t.Errorf("unexpected notification verb %q", n.Verb)
	}
	if n.TargetType != models.TargetPost || n.TargetID == nil || *n.TargetID != postID {
		t.Errorf("notification target should be post %d, got %s/%v", postID, n.TargetType, n.TargetID)
	}
	if n.IsRead {
		t.Error("fresh notification must be unread")
	}
}

func TestDuplicateLikeIsConflict(t *testing.T) {
	e, db := newTestServer(t)
	bobID, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	postID := createPost(t, e, bobToken, "Hello", "first post")

	path := fmt.Sprintf("/api/v1/posts/%d/like", postID)
	if rec := doRequest(e, http.MethodPost, path, aliceToken, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first like: expected 201, got %d", rec.Code)
	}
	if rec := doRequest(e, http.MethodPost, path, aliceToken, nil); rec.Code != http.StatusConflict {
		t.Fatalf("second like: expected 409, got %d", rec.Code)
	}

	var likeCount int64
	db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likeCount)
	if likeCount != 1 {
		t.Errorf("expected exactly 1 like row, got %d", likeCount)
	}

	// The rejected duplicate must not have produced a second notification
	var notifCount int64
	db.Model(&models.Notification{}).Where("recipient_id = ?", bobID).Count(&notifCount)
	if notifCount != 1 {
		t.Errorf("expected exactly 1 notification, got %d", notifCount)
	}
}

func TestSelfLikeDoesNotNotify(t *testing.T) {
	e, db := newTestServer(t)
	bobID, bobToken := registerUser(t, e, "bob")
	postID := createPost(t, e, bobToken, "Hello", "first post")

	rec := doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), bobToken, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on self-like, got %d", rec.Code)
	}

	var notifCount int64
	db.Model(&models.Notification{}).Where("recipient_id = ?", bobID).Count(&notifCount)
	if notifCount != 0 {
		t.Errorf("self-like must not notify, got %d notifications", notifCount)
	}
}

func TestUnlikeWhenNotLiked(t *testing.T) {
	e, db := newTestServer(t)
	_, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	postID := createPost(t, e, bobToken, "Hello", "first post")

	rec := doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/unlike", postID), aliceToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unliking a not-liked post, got %d", rec.Code)
	}

	var likeCount int64
	db.Model(&models.Like{}).Count(&likeCount)
	if likeCount != 0 {
		t.Errorf("failed unlike must not mutate state, got %d like rows", likeCount)
	}
}

func TestRelikeAfterUnlike(t *testing.T) {
	e, db := newTestServer(t)
	_, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	postID := createPost(t, e, bobToken, "Hello", "first post")

	likePath := fmt.Sprintf("/api/v1/posts/%d/like", postID)
	unlikePath := fmt.Sprintf("/api/v1/posts/%d/unlike", postID)

	if rec := doRequest(e, http.MethodPost, likePath, aliceToken, nil); rec.Code != http.StatusCreated {
		t.Fatalf("like: expected 201, got %d", rec.Code)
	}
	if rec := doRequest(e, http.MethodPost, unlikePath, aliceToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("unlike: expected 200, got %d", rec.Code)
	}
	// Re-liking after unlike is permitted and creates a fresh fact
	if rec := doRequest(e, http.MethodPost, likePath, aliceToken, nil); rec.Code != http.StatusCreated {
		t.Fatalf("re-like: expected 201, got %d", rec.Code)
	}

	var likeCount int64
	db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likeCount)
	if likeCount != 1 {
		t.Errorf("expected 1 like row after re-like, got %d", likeCount)
	}
}

func TestLikeMissingPost(t *testing.T) {
	e, _ := newTestServer(t)
	_, token := registerUser(t, e, "alice")

	rec := doRequest(e, http.MethodPost, "/api/v1/posts/9999/like", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for liking a missing post, got %d", rec.Code)
	}
}
