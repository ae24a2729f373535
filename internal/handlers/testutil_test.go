package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/middleware"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/repositories"
	"github.com/socialite-app/backend/pkg/config"
	"github.com/socialite-app/backend/validators"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database migrated with every model.
// A single connection keeps the in-memory database alive and shared.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Author{},
		&models.Book{},
		&models.Activity{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// newTestServer wires the full route table against an in-memory database,
// mirroring the production router.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := config.Load()

	e := echo.New()
	e.Validator = validators.NewValidator()

	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	bookRepo := repositories.NewPostgresBookRepository(db)
	authorRepo := repositories.NewPostgresAuthorRepository(db)
	activityRepo := repositories.NewPostgresActivityRepository(db)

	public := e.Group("/api/v1")
	NewAuthHandler(userRepo, cfg.JWTSecret).RegisterAuthRoutes(public)

	userHandler := NewUserHandler(userRepo)
	userHandler.RegisterPublicUserRoutes(public)

	postHandler := NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPublicPostRoutes(public)

	commentHandler := NewCommentHandler(db, commentRepo, postRepo, userRepo, notificationRepo)
	commentHandler.RegisterPublicCommentRoutes(public)

	bookHandler := NewBookHandler(bookRepo, authorRepo)
	bookHandler.RegisterPublicBookRoutes(public)

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler.RegisterUserRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	NewFollowHandler(db, followRepo, userRepo, notificationRepo).RegisterFollowRoutes(api)
	NewLikeHandler(db, likeRepo, postRepo, userRepo, notificationRepo).RegisterLikeRoutes(api)
	NewFeedHandler(postRepo, followRepo).RegisterFeedRoutes(api)
	NewNotificationHandler(notificationRepo, userRepo).RegisterNotificationRoutes(api)
	bookHandler.RegisterBookRoutes(api)
	NewActivityHandler(activityRepo).RegisterActivityRoutes(api)

	return e, db
}

// doRequest performs a request against the test server, optionally with a
// JSON body and bearer token.
func doRequest(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// jsonUnmarshal decodes raw JSON into v
func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// decodeBody unmarshals a response body into a generic map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// registerUser registers a user through the API and returns its ID and token
func registerUser(t *testing.T, e *echo.Echo, username string) (uint, string) {
	t.Helper()

	rec := doRequest(e, http.MethodPost, "/api/v1/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", username, rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response", username)
	}
	user, _ := body["user"].(map[string]interface{})
	id, _ := user["id"].(float64)
	return uint(id), token
}

// createPost creates a post through the API and returns its ID
func createPost(t *testing.T, e *echo.Echo, token, title, content string) uint {
	t.Helper()

	rec := doRequest(e, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"title":   title,
		"content": content,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post %q: expected 201, got %d (%s)", title, rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	id, _ := body["id"].(float64)
	return uint(id)
}
