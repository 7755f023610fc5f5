package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/stride/internal/auth/service"
	commonhttp "github.com/AlibekovAA/stride/internal/common/http"
	"github.com/AlibekovAA/stride/internal/common/jwtverify"
	"github.com/AlibekovAA/stride/internal/common/logger"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type profileResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Streak             int        `json:"streak"`
	LastCompletionDate *time.Time `json:"lastCompletionDate"`
}

type Handler struct {
	auth           *service.AuthService
	log            *logger.Logger
	errors         *commonhttp.ErrorHandler
	requestTimeout time.Duration
}

func NewHandler(auth *service.AuthService, authMiddleware func(http.Handler) http.Handler, requestTimeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		auth:           auth,
		log:            log,
		errors:         commonhttp.NewErrorHandler(log),
		requestTimeout: requestTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.Handle("GET /api/user/me", authMiddleware(http.HandlerFunc(h.me)))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "register_decode_failed"}).Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteDecodeError(w, r, err)
		return
	}
	if details, ok := commonhttp.ValidateRequest(req); !ok {
		commonhttp.WriteValidationError(w, r, details)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	if _, err := h.auth.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, messageResponse{Message: "User registered"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_decode_failed"}).Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteDecodeError(w, r, err)
		return
	}
	if details, ok := commonhttp.ValidateRequest(req); !ok {
		commonhttp.WriteValidationError(w, r, details)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: result.AccessToken, ExpiresAt: result.ExpiresAt})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing authorization", nil, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	profile, err := h.auth.Profile(ctx, userdomain.ID(claims.UserID))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(p userdomain.Profile) profileResponse {
	return profileResponse{
		ID:                 string(p.ID),
		Name:               p.Name,
		Email:              p.Email,
		Streak:             p.Streak,
		LastCompletionDate: p.LastCompletionDate,
	}
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}
