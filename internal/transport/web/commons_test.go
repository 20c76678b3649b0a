package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Olprog59/go-fromagerie/internal/domain"
	"github.com/Olprog59/go-fromagerie/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &service.Error{Kind: service.ErrNotFound, Message: "client with codcli 1 not found"}, http.StatusNotFound},
		{"conflict", &service.Error{Kind: service.ErrConflict, Message: "dup"}, http.StatusBadRequest},
		{"validation", &service.Error{Kind: service.ErrValidation, Message: "dep"}, http.StatusBadRequest},
		{"field error", &domain.FieldError{Field: "dep", Message: "too long"}, http.StatusBadRequest},
		{"internal", &service.Error{Kind: service.ErrInternal, Message: "disk I/O error"}, http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("get: %w", service.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestServiceError_KeepsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	serviceError(rec, &service.Error{Kind: service.ErrInternal, Message: "database is locked"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"database is locked"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name *string `json:"name"`
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "valid", body: `{"name":"Brie"}`},
		{name: "empty object", body: `{}`},
		{name: "unknown field", body: `{"nom":"Brie"}`, wantCode: http.StatusBadRequest, wantErr: "unknown field"},
		{name: "empty body", body: ``, wantCode: http.StatusBadRequest, wantErr: "empty"},
		{name: "two objects", body: `{}{}`, wantCode: http.StatusBadRequest, wantErr: "single JSON object"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`, wantCode: http.StatusRequestEntityTooLarge, wantErr: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			code, err := decodeJSON(httptest.NewRecorder(), req, &p)

			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKeys(t *testing.T) {
	id, err := intKey("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = intKey("4x")
	assert.Error(t, err)

	code, err := stringKey("2A")
	require.NoError(t, err)
	assert.Equal(t, "2A", code)

	_, err = stringKey("")
	assert.Error(t, err)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{2*time.Hour + 15*time.Minute + 30*time.Second, "2h 15m"},
		{26*time.Hour + 23*time.Minute, "1d 2h"},
		{3*time.Minute + 5*time.Second, "3m 5s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.in), tt.in.String())
	}
}
