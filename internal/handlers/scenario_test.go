package handlers

import (
	"fmt"
	"net/http"
	"testing"
)

// Walks the whole happy path across accounts, follows, posts,
// the feed, likes, and notifications in one sitting.
func TestSocialFlowEndToEnd(t *testing.T) {
	e, _ := newTestServer(t)

	bobID, bobToken := registerUser(t, e, "bob")
	_, aliceToken := registerUser(t, e, "alice")

	rec := doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/follow/%d", bobID), aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("alice could not follow bob: %d %s", rec.Code, rec.Body.String())
	}

	postID := createPost(t, e, bobToken, "Hello", "first post")

	rec = doRequest(e, http.MethodGet, "/api/v1/posts/feed", aliceToken, nil)
	titles := feedTitles(t, rec.Body.Bytes())
	if len(titles) != 1 || titles[0] != "Hello" {
		t.Fatalf("alice's feed should be exactly [Hello], got %v", titles)
	}

	rec = doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), aliceToken, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("alice could not like the post: %d %s", rec.Code, rec.Body.String())
	}

	// Bob now has the follow and the like notifications, both unread
	rec = doRequest(e, http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]interface{})
	if count, _ := data["count"].(float64); int(count) != 2 {
		t.Fatalf("expected 2 unread notifications for bob, got %v", data["count"])
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	var notifBody struct {
		Data struct {
			Notifications []struct {
				Verb string `json:"verb"`
			} `json:"notifications"`
		} `json:"data"`
	}
	if err := jsonUnmarshal(rec.Body.Bytes(), &notifBody); err != nil {
		t.Fatalf("failed to decode notifications: %v", err)
	}
	verbs := make(map[string]bool)
	for _, n := range notifBody.Data.Notifications {
		verbs[n.Verb] = true
	}
	if !verbs["alice liked your post"] || !verbs["alice started following you"] {
		t.Fatalf("unexpected notification verbs: %v", verbs)
	}

	rec = doRequest(e, http.MethodPost, "/api/v1/notifications/mark-all-read", bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark-all-read failed: %d", rec.Code)
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	body = decodeBody(t, rec)
	data, _ = body["data"].(map[string]interface{})
	if count, _ := data["count"].(float64); int(count) != 0 {
		t.Fatalf("expected 0 unread after mark-all-read, got %v", data["count"])
	}

	// Unfollow empties the feed again
	rec = doRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/unfollow/%d", bobID), aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("alice could not unfollow bob: %d", rec.Code)
	}
	rec = doRequest(e, http.MethodGet, "/api/v1/posts/feed", aliceToken, nil)
	titles = feedTitles(t, rec.Body.Bytes())
	if len(titles) != 0 {
		t.Errorf("expected an empty feed after unfollowing, got %v", titles)
	}
}
