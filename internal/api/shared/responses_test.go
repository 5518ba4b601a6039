package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithLogger(buf *bytes.Buffer) *http.Request {
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	req := httptest.NewRequest(http.MethodGet, "/api/cards/1/", nil)
	ctx := context.WithValue(req.Context(), TraceIDKey, "abc123")
	return req.WithContext(logger.WithLogger(ctx, log))
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"token": "t"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"token":"t"}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	var logs bytes.Buffer
	rec := httptest.NewRecorder()

	RespondWithError(rec, requestWithLogger(&logs), http.StatusNotFound, "Card not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Card not found", body.Error)
	assert.Equal(t, "abc123", body.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{"server error", http.StatusInternalServerError, nil, "ERROR"},
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"rate limited", http.StatusTooManyRequests, nil, "WARN"},
		{"elevated client error", http.StatusUnauthorized, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			rec := httptest.NewRecorder()
			err := errors.New("query failed: postgres://admin:hunter2@db:5432/kanban")

			RespondWithErrorAndLog(rec, requestWithLogger(&logs), tc.status, "Something went wrong", err, tc.opts...)

			assert.Equal(t, tc.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), "hunter2")
			assert.NotContains(t, rec.Body.String(), "query failed")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "abc123", entry["trace_id"])
			assert.NotContains(t, entry["error"], "hunter2")
		})
	}
}
