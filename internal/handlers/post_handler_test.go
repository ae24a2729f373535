package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
)

func createComment(t *testing.T, e *echo.Echo, token string, postID uint, content string) uint {
	t.Helper()
	rec := doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), token, map[string]interface{}{
		"content": content,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create comment: status %d, body %s", rec.Code, rec.Body.String())
	}
	var comment models.Comment
	if err := jsonUnmarshal(rec.Body.Bytes(), &comment); err != nil {
		t.Fatalf("failed to decode comment: %v", err)
	}
	return comment.ID
}

func TestOnlyAuthorMutatesPost(t *testing.T) {
	e, db := newTestServer(t)
	_, bobToken := registerUser(t, e, "bob")
	_, mallToken := registerUser(t, e, "mallory")
	postID := createPost(t, e, bobToken, "Hello", "original")

	rec := doRequest(e, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", postID), mallToken, map[string]interface{}{
		"title": "Hijacked",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 updating a foreign post, got %d", rec.Code)
	}

	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", postID), mallToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 deleting a foreign post, got %d", rec.Code)
	}

	var post models.Post
	db.First(&post, postID)
	if post.Title != "Hello" {
		t.Errorf("post mutated by a non-author: %+v", post)
	}

	rec = doRequest(e, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", postID), bobToken, map[string]interface{}{
		"title": "Hello, edited",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when the author edits, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeletePostCascadesCommentsAndLikes(t *testing.T) {
	e, db := newTestServer(t)
	_, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	postID := createPost(t, e, bobToken, "Hello", "x")
	keptID := createPost(t, e, bobToken, "Kept", "y")

	createComment(t, e, aliceToken, postID, "nice one")
	createComment(t, e, aliceToken, keptID, "also nice")
	doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), aliceToken, nil)
	doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", keptID), aliceToken, nil)

	rec := doRequest(e, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", postID), bobToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	var comments, likes int64
	db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&comments)
	db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likes)
	if comments != 0 || likes != 0 {
		t.Errorf("expected comments and likes gone with the post, got %d comments, %d likes", comments, likes)
	}

	// Sibling post untouched
	db.Model(&models.Comment{}).Where("post_id = ?", keptID).Count(&comments)
	db.Model(&models.Like{}).Where("post_id = ?", keptID).Count(&likes)
	if comments != 1 || likes != 1 {
		t.Errorf("cascade leaked into another post: %d comments, %d likes", comments, likes)
	}
}

func TestCommentNotifiesPostAuthor(t *testing.T) {
	e, db := newTestServer(t)
	bobID, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	postID := createPost(t, e, bobToken, "Hello", "x")

	commentID := createComment(t, e, aliceToken, postID, "nice one")

	var notif models.Notification
	if err := db.Where("recipient_id = ?", bobID).First(&notif).Error; err != nil {
		t.Fatalf("expected a comment notification for bob: %v", err)
	}
	if notif.Verb != "alice commented on your post" {
		t.Errorf("unexpected verb: %q", notif.Verb)
	}
	if notif.TargetType != models.TargetComment || notif.TargetID == nil || *notif.TargetID != commentID {
		t.Errorf("notification should point at the comment: %+v", notif)
	}

	// Commenting on your own post stays silent
	createComment(t, e, bobToken, postID, "thanks")
	var count int64
	db.Model(&models.Notification{}).Where("recipient_id = ?", bobID).Count(&count)
	if count != 1 {
		t.Errorf("self-comment must not notify, got %d notifications", count)
	}
}

func TestOnlyAuthorMutatesComment(t *testing.T) {
	e, _ := newTestServer(t)
	_, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	postID := createPost(t, e, bobToken, "Hello", "x")
	commentID := createComment(t, e, aliceToken, postID, "nice one")

	rec := doRequest(e, http.MethodPut, fmt.Sprintf("/api/v1/comments/%d", commentID), bobToken, map[string]interface{}{
		"content": "rewritten",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 editing a foreign comment, got %d", rec.Code)
	}

	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", commentID), bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 deleting a foreign comment, got %d", rec.Code)
	}

	rec = doRequest(e, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", commentID), aliceToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 when the author deletes, got %d", rec.Code)
	}
}

func TestCommentOnMissingPost(t *testing.T) {
	e, _ := newTestServer(t)
	_, token := registerUser(t, e, "alice")

	rec := doRequest(e, http.MethodPost, "/api/v1/posts/999/comments", token, map[string]interface{}{
		"content": "into the void",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 commenting on a missing post, got %d", rec.Code)
	}
}

func TestPostSearchAndAuthorFilter(t *testing.T) {
	e, _ := newTestServer(t)
	bobID, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")
	createPost(t, e, bobToken, "Gopher tips", "x")
	createPost(t, e, bobToken, "Morning coffee", "y")
	createPost(t, e, aliceToken, "Gopher tricks", "z")

	titles := listPostTitles(t, e, "?search="+url.QueryEscape("gopher"))
	if len(titles) != 2 {
		t.Errorf("case-insensitive search failed, got %v", titles)
	}

	titles = listPostTitles(t, e, fmt.Sprintf("?author=%d&search=gopher", bobID))
	if len(titles) != 1 || titles[0] != "Gopher tips" {
		t.Errorf("combined author filter and search failed, got %v", titles)
	}
}

func listPostTitles(t *testing.T, e *echo.Echo, query string) []string {
	t.Helper()
	rec := doRequest(e, http.MethodGet, "/api/v1/posts"+query, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing posts, got %d", rec.Code)
	}
	var body struct {
		Data struct {
			Posts []struct {
				Title string `json:"title"`
			} `json:"posts"`
		} `json:"data"`
	}
	if err := jsonUnmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode posts: %v", err)
	}
	titles := make([]string, len(body.Data.Posts))
	for i, p := range body.Data.Posts {
		titles[i] = p.Title
	}
	return titles
}
