package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainError_WithCauseKeepsIdentity(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrStoreWriteFailed.WithCause(cause)

	if !errors.Is(err, ErrStoreWriteFailed) {
		t.Error("expected derived error to match its sentinel")
	}
	if !errors.Is(err, cause) {
		t.Error("expected derived error to unwrap to its cause")
	}
	if errors.Is(err, ErrDatabaseError) {
		t.Error("did not expect a match against an unrelated sentinel")
	}
	if err.Error() != "failed to persist data: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestDomainError_WithMessage(t *testing.T) {
	err := ErrUserNotFound.WithMessage("no such account")
	if err.Message() != "no such account" {
		t.Errorf("expected overridden message, got %q", err.Message())
	}
	if err.HTTPStatus() != http.StatusNotFound || err.Code() != "USER_NOT_FOUND" {
		t.Error("expected code and status to be preserved")
	}
	if !errors.Is(err, ErrUserNotFound) {
		t.Error("expected message override to keep identity")
	}
}

func TestAsDomainError_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("complete task: %w", ErrInternalError)

	de, ok := AsDomainError(wrapped)
	if !ok {
		t.Fatal("expected a domain error")
	}
	if de.Category() != CategoryInternal {
		t.Errorf("expected INTERNAL, got %s", de.Category())
	}

	if _, ok := AsDomainError(errors.New("plain")); ok {
		t.Error("plain error must not be a domain error")
	}
	if IsDomainError(nil) {
		t.Error("nil is not a domain error")
	}
}
