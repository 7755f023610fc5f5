package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AlibekovAA/stride/internal/auth/service"
	commoncrypto "github.com/AlibekovAA/stride/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/stride/internal/common/http"
	"github.com/AlibekovAA/stride/internal/common/jwtverify"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/dataset"
	userrepo "github.com/AlibekovAA/stride/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupHandler(t *testing.T) http.Handler {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "test", "debug")
	store := dataset.NewFileStore(filepath.Join(t.TempDir(), "db.json"), log)
	repo := userrepo.NewSnapshotRepository(dataset.NewWriter(store))

	svc := service.NewAuthService(
		service.AuthServiceDeps{
			Repo:   repo,
			Hasher: &commoncrypto.BcryptHasher{Cost: 4},
			Log:    log,
		},
		service.AuthServiceConfig{JWTSecret: testSecret, AccessTokenTTL: time.Hour},
	)

	return NewHandler(svc, jwtverify.Middleware(testSecret, log), 5*time.Second, log)
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_RegisterLoginMe(t *testing.T) {
	h := setupHandler(t)

	rec := do(t, h, http.MethodPost, "/api/auth/register", `{"name":"Ana","email":"ana@example.com","password":"password123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var msg messageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &msg)
	if msg.Message != "User registered" {
		t.Errorf("unexpected register message %q", msg.Message)
	}

	rec = do(t, h, http.MethodPost, "/api/auth/login", `{"email":"ANA@example.com","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var tok tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &tok); err != nil || tok.Token == "" {
		t.Fatalf("expected token, got %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/user/me", "", tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("profile must not expose the password hash: %s", rec.Body.String())
	}
	var profile profileResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &profile)
	if profile.Email != "ana@example.com" || profile.Streak != 0 || profile.LastCompletionDate != nil {
		t.Errorf("unexpected profile %+v", profile)
	}
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	h := setupHandler(t)
	body := `{"name":"Ana","email":"ana@example.com","password":"password123"}`

	if rec := do(t, h, http.MethodPost, "/api/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/api/auth/register", body, "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var env commonhttp.ErrorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Code != "EMAIL_TAKEN" {
		t.Errorf("expected EMAIL_TAKEN, got %q", env.Code)
	}
}

func TestAuthHandler_BadRequests(t *testing.T) {
	h := setupHandler(t)

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"invalid json", "/api/auth/register", `{"name":`, http.StatusBadRequest, commonhttp.CodeInvalidJSON},
		{"missing field", "/api/auth/register", `{"name":"Ana","email":"a@example.com"}`, http.StatusBadRequest, commonhttp.CodeValidationFailed},
		{"unknown user", "/api/auth/login", `{"email":"ghost@example.com","password":"password123"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.path, tc.body, "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var env commonhttp.ErrorEnvelope
			_ = json.Unmarshal(rec.Body.Bytes(), &env)
			if env.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, env.Code)
			}
		})
	}
}

func TestAuthHandler_MeRequiresToken(t *testing.T) {
	h := setupHandler(t)

	if rec := do(t, h, http.MethodGet, "/api/user/me", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
