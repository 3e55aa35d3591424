package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"snapfeed/internal/config"
	"snapfeed/internal/models"
	"snapfeed/internal/repository"
	"snapfeed/internal/service"
	"snapfeed/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func newTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db := setupHandlerTestDB(t)
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:      &config.Config{JWTSecret: "handler-test-secret-0123456789abcdef"},
		db:          db,
		blobs:       blobs,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	s.userService = service.NewUserService(userRepo, postRepo, blobs)
	s.postService = service.NewPostService(db, postRepo, userRepo, blobs)
	s.commentService = service.NewCommentService(db, commentRepo, postRepo, userRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

// multipartBody builds a multipart form with the given fields and an
// optional image part.
func multipartBody(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// signupUser registers an account through the API and returns the user's ID
// and a valid token.
func signupUser(t *testing.T, app *fiber.App, nickname string) (uint, string) {
	t.Helper()
	body, contentType := multipartBody(t, map[string]string{
		"nickname": nickname,
		"email":    nickname + "@example.com",
		"password": "s3cret",
	}, "", nil)

	req, err := http.NewRequest(http.MethodPost, "/api/users/signup", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.User.ID, out.Token
}

// createPostViaAPI uploads a post through the API and returns its ID and
// blob key.
func createPostViaAPI(t *testing.T, app *fiber.App, token, title, category string) (uint, string) {
	t.Helper()
	body, contentType := multipartBody(t, map[string]string{
		"title":       title,
		"description": "desc",
		"category":    category,
	}, "photo.jpg", []byte("jpeg-bytes"))

	req, err := http.NewRequest(http.MethodPost, "/api/posts", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post struct {
		ID    uint   `json:"id"`
		Image string `json:"image"`
	}
	decodeBody(t, resp, &post)
	return post.ID, post.Image
}
