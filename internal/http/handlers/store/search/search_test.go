package search

import (
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

	"github.com/magabrotheeeer/store-rating-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// Мок сервиса поиска магазинов
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Search(ctx context.Context, userID int, query string) ([]*models.StoreWithRating, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StoreWithRating), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSearchHandler_ServeHTTP(t *testing.T) {
	avg := 4.5
	rows := []*models.StoreWithRating{
		{ID: 3, Name: "Coffee Corner", Address: "Main St 1", AvgRating: &avg, TotalRatings: 2},
	}

	tests := []struct {
		name           string
		userID         any
		query          string
		mockRows       []*models.StoreWithRating
		mockErr        error
		wantStatusCode int
		wantError      string
		wantCount      int
	}{
		{
			name:           "matching substring",
			userID:         2,
			query:          "coffee",
			mockRows:       rows,
			wantStatusCode: http.StatusOK,
			wantCount:      1,
		},
		{
			name:           "empty query matches all",
			userID:         2,
			query:          "",
			mockRows:       rows,
			wantStatusCode: http.StatusOK,
			wantCount:      1,
		},
		{
			name:           "no match",
			userID:         2,
			query:          "zzz",
			mockRows:       []*models.StoreWithRating{},
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name:           "missing user in context",
			userID:         nil,
			query:          "coffee",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "storage error",
			userID:         2,
			query:          "coffee",
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "search failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.mockRows != nil || tt.mockErr != nil {
				serviceMock.On("Search", mock.Anything, 2, tt.query).Return(tt.mockRows, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/stores/search?q="+tt.query, nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userID != nil {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data, ok := got["data"].([]any)
				assert.True(t, ok)
				assert.Len(t, data, tt.wantCount)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
