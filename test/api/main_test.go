package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/salon-api/internal/handler"
	appointmentHandler "github.com/jwalitptl/salon-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/salon-api/internal/handler/auth"
	bookingHandler "github.com/jwalitptl/salon-api/internal/handler/booking"
	catalogHandler "github.com/jwalitptl/salon-api/internal/handler/catalog"
	customerHandler "github.com/jwalitptl/salon-api/internal/handler/customer"
	settingsHandler "github.com/jwalitptl/salon-api/internal/handler/settings"
	staffHandler "github.com/jwalitptl/salon-api/internal/handler/staff"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository/memory"
	"github.com/jwalitptl/salon-api/internal/router"
	authService "github.com/jwalitptl/salon-api/internal/service/auth"
	"github.com/jwalitptl/salon-api/internal/service/availability"
	"github.com/jwalitptl/salon-api/internal/service/booking"
	"github.com/jwalitptl/salon-api/internal/service/catalog"
	"github.com/jwalitptl/salon-api/internal/service/customer"
	"github.com/jwalitptl/salon-api/internal/service/settings"
	"github.com/jwalitptl/salon-api/internal/service/staff"
	jwtauth "github.com/jwalitptl/salon-api/pkg/auth"
	"github.com/jwalitptl/salon-api/pkg/logger"
)

var (
	baseURL   string
	authToken string
	store     *memory.Store
)

// Response mirrors the API envelope for assertions.
type Response struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func (r Response) IsSuccess() bool {
	return r.Status == "success"
}

func (r Response) GetString(key string) string {
	if val, ok := r.Data[key].(string); ok {
		return val
	}
	return ""
}

type noopNotifier struct{}

func (noopNotifier) BookingCreated(_ context.Context, _ *model.Appointment) error { return nil }

func TestMain(m *testing.M) {
	srv := setupServer()
	defer srv.Close()

	baseURL = srv.URL + "/api/v1"
	authToken = login()

	os.Exit(m.Run())
}

func setupServer() *httptest.Server {
	store = memory.NewStore()

	appLogger := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Output: io.Discard,
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	jwtSvc := jwtauth.NewJWTService("test-secret", time.Hour)
	authSvc := authService.NewService("admin", string(hash), jwtSvc)
	settingsSvc := settings.NewService(store.Settings())
	availabilitySvc := availability.NewService(store.Availability(), store.Appointments(), store.Staff())
	staffSvc := staff.NewService(store.Staff(), store.Availability())
	catalogSvc := catalog.NewService(store.Catalog())
	customerSvc := customer.NewService(store.Customers())
	bookingSvc := booking.NewService(
		store.Appointments(),
		store.Customers(),
		store.Staff(),
		store.Catalog(),
		availabilitySvc,
		settingsSvc,
		noopNotifier{},
		appLogger,
	)

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc),
		bookingHandler.NewHandler(bookingSvc, availabilitySvc),
		catalogHandler.NewHandler(catalogSvc),
		staffHandler.NewHandler(staffSvc),
		appointmentHandler.NewHandler(bookingSvc),
		customerHandler.NewHandler(customerSvc),
		settingsHandler.NewHandler(settingsSvc),
		handler.NewHandler(),
		router.RouterConfig{
			RateLimit:     rate.Limit(1000),
			RateBurst:     1000,
			Timeout:       10 * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "salon_api_test",
		},
	)
	r.Setup()

	return httptest.NewServer(r.Engine())
}

func login() string {
	resp := makeRequest("POST", "/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, "")
	if !resp.IsSuccess() {
		panic(fmt.Sprintf("login failed: %s", resp.Message))
	}
	return resp.GetString("token")
}

func makeRequest(method, path string, body interface{}, token string) Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return Response{Status: "error", Message: fmt.Sprintf("failed to marshal request body: %v", err)}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return Response{Status: "error", Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Response{Status: "error", Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{Status: "error", Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return response
}

// makeRawRequest returns the HTTP status code alongside the decoded
// envelope, for tests that assert on the exact status.
func makeRawRequest(method, path string, body interface{}, token string) (int, Response) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return 0, Response{Status: "error", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, Response{Status: "error", Message: err.Error()}
	}
	defer resp.Body.Close()

	var response Response
	_ = json.NewDecoder(resp.Body).Decode(&response)
	return resp.StatusCode, response
}

var nameCounter int

func uniqueName(prefix string) string {
	nameCounter++
	return fmt.Sprintf("%s %d-%d", prefix, time.Now().UnixNano(), nameCounter)
}

// nextDate returns the next occurrence of the given weekday, at least
// one day in the future, formatted as an appointment date.
func nextDate(day time.Weekday) string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(model.DateLayout)
}
