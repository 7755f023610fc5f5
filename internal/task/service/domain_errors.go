package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/stride/internal/common/errors"
)

var (
	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrTitleRequired = ErrValidation.WithMessage("title is required")

	ErrTitleTooLong = ErrValidation.WithMessage("title is too long")

	ErrInvalidDeadline = ErrValidation.WithMessage("deadline must be an RFC 3339 timestamp")

	ErrTaskNotFound = commonerrors.NewDomainError(
		"TASK_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"task not found",
	)
)
