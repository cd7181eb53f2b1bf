package toggle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// MockService реализует интерфейс toggle.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Toggle(ctx context.Context, req models.DummyToggle) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func TestToggleHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "отметка снята",
			requestBody: models.DummyToggle{
				CustomerID: "8a2b1f44-9c1d-4e6a-b1f0-3c5d7e9a0b12",
				Date:       "2026-02-18",
				Meal:       "lunch",
			},
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, mock.AnythingOfType("models.DummyToggle")).
					Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"attending":false}}`,
		},
		{
			name: "невалидные данные",
			requestBody: models.DummyToggle{
				CustomerID: "",
				Date:       "",
				Meal:       "",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field CustomerID is a required field, field Date is a required field, field Meal is a required field"}`,
		},
		{
			name: "неизвестный приём пищи",
			requestBody: models.DummyToggle{
				CustomerID: "8a2b1f44-9c1d-4e6a-b1f0-3c5d7e9a0b12",
				Date:       "2026-02-18",
				Meal:       "breakfast",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Meal must be one of: lunch dinner"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.DummyToggle{
				CustomerID: "8a2b1f44-9c1d-4e6a-b1f0-3c5d7e9a0b12",
				Date:       "2026-02-18",
				Meal:       "dinner",
			},
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, mock.AnythingOfType("models.DummyToggle")).
					Return(false, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not toggle attendance"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/toggle", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
