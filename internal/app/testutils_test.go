package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/cinetix/movie-booking-api/internal/mailer"
	"github.com/cinetix/movie-booking-api/internal/mocks"
	"github.com/cinetix/movie-booking-api/internal/validator"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func newTestApplication(opts ...func(*application)) *application {
	app := &application{
		validator:     validator.NewValidator(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		screeningRepo: &mocks.MockScreeningRepo{},
		seatRepo:      &mocks.MockSeatRepo{},
		bookingRepo:   &mocks.MockBookingRepo{},
		paymentRepo:   &mocks.MockPaymentRepo{},
		mailer:        mailer.NewMockMailer(),
	}

	app.config.booking.unitPrice = decimal.NewFromInt(75000)
	app.config.booking.opTimeout = 5 * time.Second

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// withIdentity stamps the request context the way the authenticate middleware
// would for a valid token.
func withIdentity(r *http.Request, userId int, role domain.Role, email string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDContextKey, userId)
	ctx = context.WithValue(ctx, roleContextKey, role)

	if email != "" {
		ctx = context.WithValue(ctx, emailContextKey, email)
	}

	return r.WithContext(ctx)
}

// withURLParam injects a chi route parameter so handlers can be invoked
// without going through the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if len(validationResp.ValidationErrors) == 0 {
			if tt.wantErrMessage != "" && validationResp.Message != tt.wantErrMessage {
				t.Errorf("Error message = %v, want %v", validationResp.Message, tt.wantErrMessage)
			}
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
