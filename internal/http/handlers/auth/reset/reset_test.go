package reset

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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/store-rating-service/internal/models"
	"github.com/magabrotheeeer/store-rating-service/internal/services/auth"
)

// Мок сервиса сброса пароля
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func doRequest(t *testing.T, handler *Handler, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/reset-password/"+token, bytes.NewReader(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("token", token)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestResetHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		requestBody    interface{}
		mockErr        error
		setupMock      bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid token and password",
			token:          "good-token",
			requestBody:    models.DummyResetPassword{Password: "newpassword"},
			setupMock:      true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			token:          "good-token",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - short password",
			token:          "good-token",
			requestBody:    models.DummyResetPassword{Password: "short"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Password is too short",
			wantStatus:     "Error",
		},
		{
			name:           "invalid or expired token",
			token:          "bad-token",
			requestBody:    models.DummyResetPassword{Password: "newpassword"},
			mockErr:        auth.ErrInvalidResetToken,
			setupMock:      true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid or expired token",
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			token:          "good-token",
			requestBody:    models.DummyResetPassword{Password: "newpassword"},
			mockErr:        errors.New("db error"),
			setupMock:      true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not reset password",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.setupMock {
				serviceMock.On("ResetPassword", mock.Anything, tt.token, "newpassword").
					Return(tt.mockErr).Once()
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

			rec := doRequest(t, handler, tt.token, bodyBytes)

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
				assert.Equal(t, "password updated successfully", data["message"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
