package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/AlibekovAA/stride/internal/common/http"
	"github.com/AlibekovAA/stride/internal/common/jwtverify"
	"github.com/AlibekovAA/stride/internal/common/logger"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	"github.com/AlibekovAA/stride/internal/task/service"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

type Handler struct {
	tasks          *service.TaskService
	log            *logger.Logger
	errors         *commonhttp.ErrorHandler
	location       *time.Location
	requestTimeout time.Duration
}

type Config struct {
	// Location is used for deadlines sent without an offset.
	Location       *time.Location
	RequestTimeout time.Duration
}

func NewHandler(tasks *service.TaskService, authMiddleware func(http.Handler) http.Handler, cfg Config, log *logger.Logger) http.Handler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	h := &Handler{
		tasks:          tasks,
		log:            log,
		errors:         commonhttp.NewErrorHandler(log),
		location:       cfg.Location,
		requestTimeout: cfg.RequestTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/todos", h.list)
	mux.HandleFunc("POST /api/todos", h.create)
	mux.HandleFunc("PUT /api/todos/{id}/complete", h.complete)
	mux.HandleFunc("DELETE /api/todos/{id}", h.delete)
	return authMiddleware(mux)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	q := r.URL.Query()
	tasks := h.tasks.List(ctx, userID, service.ListOptions{
		AvailableMinutes: q.Get("availableMinutes"),
		Sort:             q.Get("sort"),
	})

	commonhttp.WriteJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"user_id": string(userID),
			"action":  "task_create_decode_failed",
		}).Warnf("task create failed: invalid json: %v", err)
		commonhttp.WriteDecodeError(w, r, err)
		return
	}

	deadline, err := parseDeadline(req.Deadline, h.location)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	task, err := h.tasks.Create(ctx, userID, service.CreateInput{
		Title:           req.Title,
		Deadline:        deadline,
		RequiredMinutes: req.RequiredMinutes,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	res, err := h.tasks.Complete(ctx, userID, taskdomain.ID(r.PathValue("id")))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toCompleteResponse(res))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	if err := h.tasks.Delete(ctx, userID, taskdomain.ID(r.PathValue("id"))); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "Deleted"})
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (userdomain.ID, bool) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok || claims.UserID == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing authorization", nil, commonhttp.TraceIDFromContext(r.Context()))
		return "", false
	}
	return userdomain.ID(claims.UserID), true
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}
