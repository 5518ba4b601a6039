package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/mocks"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid registration",
			body:       `{"username":"alice","password":"secret"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing username",
			body:       `{"password":"secret"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid username: required field",
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "domain rejects password",
			body:       `{"username":"alice","password":"123"}`,
			serviceErr: domain.ErrPasswordTooShort,
			wantStatus: http.StatusBadRequest,
			wantError:  domain.ErrPasswordTooShort.Error(),
		},
		{
			name:       "username taken",
			body:       `{"username":"alice","password":"secret"}`,
			serviceErr: store.ErrUsernameExists,
			wantStatus: http.StatusConflict,
			wantError:  "Username already exists",
		},
		{
			name:       "unexpected failure",
			body:       `{"username":"alice","password":"secret"}`,
			serviceErr: errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to create user",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			users := &mocks.MockUserService{
				RegisterFn: func(_ context.Context, username, password string) (string, error) {
					if tc.serviceErr != nil {
						return "", tc.serviceErr
					}
					return "token-for-" + username, nil
				},
			}
			handler := NewAuthHandler(users, testLogger())
			rec := httptest.NewRecorder()

			handler.Register(rec, newRequest(http.MethodPost, "/api/users/", tc.body, 0))

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusCreated {
				assert.JSONEq(t, `{"token":"token-for-alice"}`, rec.Body.String())
				return
			}
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, decodeError(t, rec).Error)
			}
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	users := &mocks.MockUserService{
		LoginFn: func(_ context.Context, username, password string) (string, error) {
			if username == "alice" && password == "secret" {
				return "login-token", nil
			}
			return "", service.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(users, testLogger())

	rec := httptest.NewRecorder()
	handler.Login(rec, newRequest(http.MethodPost, "/api/auth/login/", `{"username":"alice","password":"secret"}`, 0))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"login-token"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.Login(rec, newRequest(http.MethodPost, "/api/auth/login/", `{"username":"alice","password":"nope"}`, 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", decodeError(t, rec).Error)
}
