package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		Validation("year %d out of range", 1999): http.StatusBadRequest,
		Unauthorized("invalid token"):            http.StatusUnauthorized,
		NotFound("household not found"):          http.StatusNotFound,
		Conflict("household already exists"):     http.StatusConflict,
		errors.New("connection reset"):           http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := HTTPStatus(err); got != want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", err, got, want)
		}
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get household: %w", NotFound("household not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Errorf("did not expect wrapped error to match ErrConflict")
	}
	if MessageOf(err) != "household not found" {
		t.Errorf("unexpected message %q", MessageOf(err))
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Internal("failed to list households", cause)

	if KindOf(err) != KindInternal {
		t.Errorf("expected internal kind, got %s", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be reachable through Unwrap")
	}
}
