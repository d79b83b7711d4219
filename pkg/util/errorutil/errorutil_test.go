package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{name: "domain error passes through", err: NewConflict("taken", nil), wantCode: "CONFLICT", wantStatus: http.StatusConflict},
		{name: "wrapped domain error", err: fmt.Errorf("ctx: %w", NewBadRequest("bad")), wantCode: "BAD_REQUEST", wantStatus: http.StatusBadRequest},
		{name: "fiber error", err: fiber.ErrNotFound, wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "no rows", err: pgx.ErrNoRows, wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), wantCode: "INTERNAL_ERROR", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	got := ToDomainError(cause)

	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}
