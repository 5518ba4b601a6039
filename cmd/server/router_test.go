package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/mocks"
)

type testServer struct {
	t      *testing.T
	server *httptest.Server
	uow    *mocks.MemoryUnitOfWork
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "error", ShutdownTimeoutSeconds: 1},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-characters",
			TokenLifetimeMinutes: 60,
			BcryptCost:           4,
		},
	}
	app := &application{config: cfg, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	uow := mocks.NewMemoryUnitOfWork()
	require.NoError(t, app.initServices(uow))

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return &testServer{t: t, server: server, uow: uow}
}

func (s *testServer) do(method, path, token string, body interface{}) (*http.Response, []byte) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(s.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, data
}

func (s *testServer) register(username string) string {
	s.t.Helper()
	resp, body := s.do(http.MethodPost, "/api/users/", "", map[string]string{
		"username": username,
		"password": "secret",
	})
	require.Equal(s.t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(body, &out))
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

func (s *testServer) create(path, token string, payload map[string]interface{}) int64 {
	s.t.Helper()
	resp, body := s.do(http.MethodPost, path, token, payload)
	require.Equal(s.t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(body, &out))
	return out.ID
}

type boardBody struct {
	ID      int64 `json:"id"`
	Columns []struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Cards []struct {
			ID   int64  `json:"id"`
			Task string `json:"task"`
		} `json:"cards"`
	} `json:"columns"`
}

func (s *testServer) board(token string, id int64) boardBody {
	s.t.Helper()
	resp, body := s.do(http.MethodGet, fmt.Sprintf("/api/boards/%d/", id), token, nil)
	require.Equal(s.t, http.StatusOK, resp.StatusCode, string(body))
	var out boardBody
	require.NoError(s.t, json.Unmarshal(body, &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestRegisterStoresHashAndReturnsToken(t *testing.T) {
	s := newTestServer(t)

	s.register("alice")

	user, err := s.uow.Stores().Users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.HashedPassword)
	assert.NotEmpty(t, user.HashedPassword)

	resp, _ := s.do(http.MethodPost, "/api/users", "", map[string]string{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := s.do(http.MethodPost, "/api/auth/login/", "", map[string]string{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	resp, _ = s.do(http.MethodPost, "/api/auth/login/", "", map[string]string{"username": "alice", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(http.MethodGet, "/api/boards/", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), `"trace_id"`)
}

func TestBulkColumnUpdateKeepsOtherColumns(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")
	boardID := s.create("/api/boards/", token, map[string]interface{}{"name": "Roadmap"})
	c1 := s.create("/api/columns/", token, map[string]interface{}{"name": "Todo", "position_id": 1, "board_id": boardID})
	c2 := s.create("/api/columns/", token, map[string]interface{}{"name": "Doing", "position_id": 2, "board_id": boardID})
	s.create("/api/columns/", token, map[string]interface{}{"name": "Done", "position_id": 3, "board_id": boardID})

	resp, body := s.do(http.MethodPatch, fmt.Sprintf("/api/columns/?board_id=%d", boardID), token, []map[string]interface{}{
		{"id": c2, "name": "In progress"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"name":"In progress","position_id":2,"board_id":%d}]`, c2, boardID),
		stripTimestamps(t, body))

	board := s.board(token, boardID)
	require.Len(t, board.Columns, 3)
	assert.Equal(t, "Todo", board.Columns[0].Name)
	assert.Equal(t, "In progress", board.Columns[1].Name)

	resp, body = s.do(http.MethodPut, "/api/columns", token, map[string]interface{}{
		"columns": []map[string]interface{}{{"id": c1, "delete": true}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `[]`, string(body))
	assert.Len(t, s.board(token, boardID).Columns, 2)
}

func TestBulkUnknownIDLeavesStoreUnchanged(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")
	boardID := s.create("/api/boards/", token, map[string]interface{}{"name": "Roadmap"})
	columnID := s.create("/api/columns/", token, map[string]interface{}{"name": "Todo", "position_id": 1, "board_id": boardID})
	cardID := s.create("/api/cards/", token, map[string]interface{}{"task": "x", "position_id": 1, "column_id": columnID})

	resp, body := s.do(http.MethodPatch, "/api/cards/", token, []map[string]interface{}{
		{"id": cardID, "delete": true},
		{"id": 999999, "task": "ghost"},
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(body))
	board := s.board(token, boardID)
	require.Len(t, board.Columns[0].Cards, 1)
	assert.Equal(t, cardID, board.Columns[0].Cards[0].ID)
}

func TestOutOfRangePositionIsRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")
	boardID := s.create("/api/boards/", token, map[string]interface{}{"name": "Roadmap"})
	columnID := s.create("/api/columns/", token, map[string]interface{}{"name": "Todo", "position_id": 1, "board_id": boardID})
	cardID := s.create("/api/cards/", token, map[string]interface{}{"task": "x", "position_id": 1, "column_id": columnID})

	resp, body := s.do(http.MethodPatch, "/api/cards/", token, []map[string]interface{}{
		{"id": cardID, "position_id": 3000000000},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "position_id")

	resp, body = s.do(http.MethodPatch, "/api/columns/", token, []map[string]interface{}{
		{"id": columnID, "position_id": -3000000000},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	resp, body = s.do(http.MethodPost, "/api/cards/", token, map[string]interface{}{
		"task": "y", "position_id": 3000000000, "column_id": columnID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	stored, ok := s.uow.Card(cardID)
	require.True(t, ok)
	assert.Equal(t, 1, stored.PositionID)
	column, ok := s.uow.Column(columnID)
	require.True(t, ok)
	assert.Equal(t, 1, column.PositionID)
}

func TestCardLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.register("alice")
	boardID := s.create("/api/boards/", token, map[string]interface{}{"name": "Roadmap"})
	columnID := s.create("/api/columns/", token, map[string]interface{}{"name": "Todo", "position_id": 1, "board_id": boardID})
	card1 := s.create("/api/cards/", token, map[string]interface{}{"task": "x", "position_id": 1, "column_id": columnID})
	card2 := s.create("/api/cards/", token, map[string]interface{}{"task": "w", "position_id": 2, "column_id": columnID})

	resp, body := s.do(http.MethodPatch, fmt.Sprintf("/api/cards/?column_id=%d", columnID), token,
		map[string]interface{}{"cards": []map[string]interface{}{
			{"id": card1, "delete": true},
			{"id": card2, "task": "z"},
		}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"task":"z","position_id":2,"column_id":%d}]`, card2, columnID),
		stripTimestamps(t, body))

	resp, _ = s.do(http.MethodGet, fmt.Sprintf("/api/cards/%d/", card1), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(http.MethodPatch, fmt.Sprintf("/api/cards/%d", card2), token, map[string]interface{}{"position_id": 7})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"position_id":7`)

	resp, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/cards/%d/", card2), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestOtherUsersResourcesAreNotFound(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	bob := s.register("bob")
	boardID := s.create("/api/boards/", alice, map[string]interface{}{"name": "Private"})
	columnID := s.create("/api/columns/", alice, map[string]interface{}{"name": "Todo", "position_id": 1, "board_id": boardID})

	resp, _ := s.do(http.MethodGet, fmt.Sprintf("/api/boards/%d/", boardID), bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/api/cards/", bob, map[string]interface{}{"task": "x", "position_id": 1, "column_id": columnID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodPatch, "/api/columns/", bob, []map[string]interface{}{{"id": columnID, "delete": true}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/boards/%d", boardID), alice, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, fmt.Sprintf("/api/columns/%d", columnID), alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// stripTimestamps removes created_at/updated_at from every object in a JSON array.
func stripTimestamps(t *testing.T, body []byte) string {
	t.Helper()
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &items))
	for _, item := range items {
		delete(item, "created_at")
		delete(item, "updated_at")
	}
	out, err := json.Marshal(items)
	require.NoError(t, err)
	return string(out)
}
