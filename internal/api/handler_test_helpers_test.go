package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRequest builds a request for userID (0 for none) with optional chi
// path parameters given as key, value pairs.
func newRequest(method, target, body string, userID int64, params ...string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := req.Context()
	if userID != 0 {
		ctx = shared.WithUserID(ctx, userID)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
