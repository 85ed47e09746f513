package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/store-rating-service/internal/models"
	"github.com/magabrotheeeer/store-rating-service/internal/services/auth"
)

// Мок сервиса аутентификации
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockToken      string
		mockRole       string
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid login",
			requestBody:    models.DummyLogin{Email: "a@x.com", Password: "password123"},
			mockToken:      "jwt.token.value",
			mockRole:       models.RoleUser,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing email",
			requestBody:    models.DummyLogin{Password: "password123"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Email is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "unknown email",
			requestBody:    models.DummyLogin{Email: "nobody@x.com", Password: "password123"},
			mockErr:        auth.ErrInvalidCredentials,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid credentials",
			wantStatus:     "Error",
		},
		{
			name:           "wrong password",
			requestBody:    models.DummyLogin{Email: "a@x.com", Password: "wrongpassword"},
			mockErr:        auth.ErrInvalidCredentials,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid credentials",
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			requestBody:    models.DummyLogin{Email: "a@x.com", Password: "password123"},
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not login",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if body, ok := tt.requestBody.(models.DummyLogin); ok && body.Email != "" && body.Password != "" {
				serviceMock.On("Login", mock.Anything, body.Email, body.Password).
					Return(tt.mockToken, tt.mockRole, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "jwt.token.value", data["token"])
				assert.Equal(t, models.RoleUser, data["role"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_IndistinguishableFailures(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("Login", mock.Anything, "nobody@x.com", "password123").
		Return("", "", auth.ErrInvalidCredentials).Once()
	serviceMock.On("Login", mock.Anything, "a@x.com", "wrongpassword").
		Return("", "", auth.ErrInvalidCredentials).Once()
	handler := New(newNoopLogger(), serviceMock)

	do := func(email, password string) (int, string) {
		body, err := json.Marshal(models.DummyLogin{Email: email, Password: password})
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code, rec.Body.String()
	}

	unknownCode, unknownBody := do("nobody@x.com", "password123")
	wrongCode, wrongBody := do("a@x.com", "wrongpassword")

	assert.Equal(t, unknownCode, wrongCode)
	assert.Equal(t, unknownBody, wrongBody)
}
