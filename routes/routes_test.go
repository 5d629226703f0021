package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	accountRepo "servicelink/database/repository/account"
	bookingRepo "servicelink/database/repository/booking"
	notificationRepo "servicelink/database/repository/notification"
	workerRepo "servicelink/database/repository/worker"
	"servicelink/handlers"
	"servicelink/middleware"
	"servicelink/services/auth"
	"servicelink/services/booking"
	"servicelink/services/directory"
	"servicelink/services/location"
	"servicelink/services/notification"
	"servicelink/services/payment"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const testAdminKey = "admin-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// newTestServer wires the full stack over the in-memory backends.
func newTestServer(t *testing.T, adminKey string) *gin.Engine {
	t.Helper()
	workers := workerRepo.NewMemoryWorkerRepo(append(workerRepo.SeedWorkers(), accountRepo.SeedWorkerAccount()))
	accounts := accountRepo.NewMemoryAccountRepo(accountRepo.SeedAccounts())

	authSvc, err := auth.NewDefaultAuthService(utils.NewMemoryKV(), accounts, workers,
		utils.NewTokenIssuer("test-secret", time.Hour), utils.LogOTPSender{Logger: zap.NewNop()}, nil, auth.Options{})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	locSvc := location.NewService(location.FixedGeolocator{}, nil)
	dir := directory.New(workers, nil)
	notifSvc, err := notification.NewDefaultNotificationService(notificationRepo.NewMemoryNotificationRepo(), nil)
	if err != nil {
		t.Fatalf("notification service: %v", err)
	}
	bookingSvc, err := booking.NewDefaultBookingService(utils.NewMemoryKV(), bookingRepo.NewMemoryBookingRepo(nil),
		dir, workers, payment.NewPaymentHandler(nil, "INR"), nil, booking.Options{})
	if err != nil {
		t.Fatalf("booking service: %v", err)
	}
	bookingSvc.Notifier = notifSvc

	hb := &handlers.HandlerBundle{
		AuthService:  authSvc,
		AdminKey:     adminKey,
		Auth:         handlers.NewAuthHandler(authSvc, locSvc),
		Location:     handlers.NewLocationHandler(locSvc),
		Workers:      handlers.NewWorkerHandler(dir, locSvc),
		Booking:      handlers.NewBookingHandler(bookingSvc),
		Notification: handlers.NewNotificationHandler(notifSvc),
		Admin:        handlers.NewAdminHandler(authSvc),
	}
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

type client struct {
	t       *testing.T
	r       *gin.Engine
	headers map[string]string
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

// signIn walks the session, role, login and verify steps and returns a bearer client.
func signIn(t *testing.T, r *gin.Engine, role, phone string) *client {
	t.Helper()
	c := &client{t: t, r: r, headers: map[string]string{}}
	code, body := c.do(http.MethodPost, "/api/auth/session", nil)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 from session, got %d", code)
	}
	c.headers[middleware.SessionHeader] = body["sessionId"].(string)

	if code, _ := c.do(http.MethodPost, "/api/auth/role", map[string]string{"role": role}); code != http.StatusOK {
		t.Fatalf("expected 200 from role, got %d", code)
	}
	if code, _ := c.do(http.MethodPost, "/api/auth/login", map[string]string{"phone": phone}); code != http.StatusAccepted {
		t.Fatalf("expected 202 from login, got %d", code)
	}
	code, body = c.do(http.MethodPost, "/api/auth/verify-otp", map[string]string{"otp": "1234"})
	if code != http.StatusOK {
		t.Fatalf("expected 200 from verify-otp, got %d (%v)", code, body)
	}
	c.headers["Authorization"] = "Bearer " + body["token"].(string)
	return c
}

// nextWeekday returns the first Monday to Friday date after today.
func nextWeekday() string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func TestBookingFlow(t *testing.T) {
	t.Parallel()
	r := newTestServer(t, testAdminKey)
	c := signIn(t, r, "client", "+91987654321")

	code, me := c.do(http.MethodGet, "/api/auth/me", nil)
	if code != http.StatusOK || me["next"] != "/client/dashboard" {
		t.Fatalf("expected dashboard route, got %d %v", code, me["next"])
	}

	if code, _ := c.do(http.MethodPost, "/api/booking/draft", map[string]string{"workerId": "worker456", "service": "Electrician"}); code != http.StatusCreated {
		t.Fatalf("expected 201 from initiate, got %d", code)
	}

	code, body := c.do(http.MethodPost, "/api/booking/draft/finalize", nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an incomplete draft, got %d", code)
	}
	if fields, _ := body["fields"].([]any); len(fields) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", body["fields"])
	}

	schedule := map[string]any{"date": nextWeekday(), "slot": map[string]string{"start": "09:00", "end": "17:00"}}
	if code, body := c.do(http.MethodPut, "/api/booking/draft/schedule", schedule); code != http.StatusOK {
		t.Fatalf("expected 200 from schedule, got %d (%v)", code, body)
	}
	if code, _ := c.do(http.MethodPut, "/api/booking/draft/location", map[string]string{"addressId": "addr1"}); code != http.StatusOK {
		t.Fatalf("expected 200 from location, got %d", code)
	}
	code, created := c.do(http.MethodPost, "/api/booking/draft/finalize", nil)
	if code != http.StatusCreated || created["status"] != "pending" {
		t.Fatalf("expected pending booking, got %d %v", code, created)
	}

	if code, _ := c.do(http.MethodGet, "/api/booking/draft", nil); code != http.StatusConflict {
		t.Fatalf("expected 409 once the draft is finalized, got %d", code)
	}

	code, list := c.do(http.MethodGet, "/api/bookings", nil)
	if bookings, _ := list["bookings"].([]any); code != http.StatusOK || len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d %v", code, list)
	}

	id := created["id"].(string)
	for _, status := range []string{"confirmed", "completed"} {
		if code, _ := c.do(http.MethodPatch, "/api/bookings/"+id+"/status", map[string]string{"status": status}); code != http.StatusForbidden {
			t.Fatalf("expected 403 for a client marking the booking %s, got %d", status, code)
		}
	}

	worker := signIn(t, r, "worker", "+91876543210")
	code, done := worker.do(http.MethodPatch, "/api/bookings/"+id+"/status", map[string]string{"status": "completed"})
	if code != http.StatusOK || done["status"] != "completed" {
		t.Fatalf("expected the worker to complete the booking, got %d %v", code, done)
	}
	code, _ = worker.do(http.MethodPatch, "/api/bookings/"+id+"/status", map[string]string{"status": "cancelled"})
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for an illegal transition, got %d", code)
	}
	code, paid := c.do(http.MethodPost, "/api/bookings/"+id+"/payment", map[string]any{"amount": 800, "method": "upi"})
	if code != http.StatusOK {
		t.Fatalf("expected 200 from payment, got %d (%v)", code, paid)
	}
}

func TestAuthErrors(t *testing.T) {
	t.Parallel()
	r := newTestServer(t, testAdminKey)
	anon := &client{t: t, r: r, headers: map[string]string{}}

	if code, _ := anon.do(http.MethodGet, "/api/location", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", code)
	}

	_, body := anon.do(http.MethodPost, "/api/auth/session", nil)
	anon.headers[middleware.SessionHeader] = body["sessionId"].(string)
	if code, _ := anon.do(http.MethodPost, "/api/auth/verify-otp", map[string]string{"otp": "1234"}); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 verifying before a role, got %d", code)
	}
	if code, _ := anon.do(http.MethodPost, "/api/booking/draft", map[string]string{"workerId": "w1", "service": "Electrician"}); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an anonymous draft, got %d", code)
	}

	bad := &client{t: t, r: r, headers: map[string]string{"Authorization": "Bearer not-a-token"}}
	if code, _ := bad.do(http.MethodGet, "/api/workers", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", code)
	}

	worker := signIn(t, r, "worker", "+91876543210")
	if code, _ := worker.do(http.MethodPost, "/api/booking/draft", map[string]string{"workerId": "w1", "service": "Electrician"}); code != http.StatusForbidden {
		t.Fatalf("expected 403 for a worker drafting a booking, got %d", code)
	}
	if code, _ := worker.do(http.MethodPost, "/api/auth/logout", nil); code != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", code)
	}
	if code, _ := worker.do(http.MethodGet, "/api/bookings", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", code)
	}
}

func TestWorkerDirectory(t *testing.T) {
	t.Parallel()
	r := newTestServer(t, testAdminKey)
	anon := &client{t: t, r: r, headers: map[string]string{}}

	code, body := anon.do(http.MethodGet, "/api/workers/search?skill=Plumber", nil)
	workers, _ := body["workers"].([]any)
	if code != http.StatusOK || len(workers) != 1 {
		t.Fatalf("expected one plumber, got %d %v", code, body)
	}
	if w := workers[0].(map[string]any); w["id"] != "w2" {
		t.Fatalf("expected w2, got %v", w["id"])
	}

	if code, _ := anon.do(http.MethodGet, "/api/workers/search?minRating=-1", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative rating, got %d", code)
	}
	if code, _ := anon.do(http.MethodGet, "/api/workers/ghost", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestWorkerDirectory_HidesPrivateFields(t *testing.T) {
	t.Parallel()
	r := newTestServer(t, testAdminKey)

	worker := signIn(t, r, "worker", "+91876543210")
	update := map[string]any{"worker": map[string]string{"governmentId": "ABCDE1234F"}}
	if code, body := worker.do(http.MethodPut, "/api/auth/profile", update); code != http.StatusOK {
		t.Fatalf("expected 200 from profile, got %d (%v)", code, body)
	}

	anon := &client{t: t, r: r, headers: map[string]string{}}
	private := []string{"governmentId", "phone", "email"}

	code, w := anon.do(http.MethodGet, "/api/workers/worker456", nil)
	if code != http.StatusOK || w["id"] != "worker456" {
		t.Fatalf("expected worker456, got %d %v", code, w)
	}
	for _, field := range private {
		if _, ok := w[field]; ok {
			t.Fatalf("expected %s to be hidden, got %v", field, w[field])
		}
	}
	if w["rating"] != 4.8 || w["verifiedWorker"] != true {
		t.Fatalf("expected public profile fields, got %v", w)
	}

	_, body := anon.do(http.MethodGet, "/api/workers", nil)
	for _, item := range body["workers"].([]any) {
		listed := item.(map[string]any)
		for _, field := range private {
			if _, ok := listed[field]; ok {
				t.Fatalf("expected %s hidden on %v in the listing", field, listed["id"])
			}
		}
	}
}

func TestAdminRoutes(t *testing.T) {
	t.Parallel()

	t.Run("disabled without a key", func(t *testing.T) {
		t.Parallel()
		c := &client{t: t, r: newTestServer(t, ""), headers: map[string]string{}}
		if code, _ := c.do(http.MethodPut, "/api/admin/workers/w1/verify", map[string]bool{"verified": false}); code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", code)
		}
	})

	t.Run("requires the key", func(t *testing.T) {
		t.Parallel()
		r := newTestServer(t, testAdminKey)
		c := &client{t: t, r: r, headers: map[string]string{middleware.AdminKeyHeader: "wrong"}}
		if code, _ := c.do(http.MethodPut, "/api/admin/workers/w1/verify", map[string]bool{"verified": false}); code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", code)
		}

		c.headers[middleware.AdminKeyHeader] = testAdminKey
		if code, _ := c.do(http.MethodPut, "/api/admin/workers/w1/verify", map[string]any{}); code != http.StatusBadRequest {
			t.Fatalf("expected 400 without verified, got %d", code)
		}
		code, body := c.do(http.MethodPut, "/api/admin/workers/w1/verify", map[string]bool{"verified": false})
		if code != http.StatusOK || body["verified"] != false {
			t.Fatalf("expected verification cleared, got %d %v", code, body)
		}

		_, list := c.do(http.MethodGet, "/api/workers/search?verifiedOnly=true&skill=Electrician", nil)
		for _, w := range list["workers"].([]any) {
			if w.(map[string]any)["id"] == "w1" {
				t.Fatal("expected w1 excluded from verified-only search")
			}
		}
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()
	c := &client{t: t, r: newTestServer(t, ""), headers: map[string]string{}}
	code, body := c.do(http.MethodGet, "/health", nil)
	if code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("expected healthy response, got %d %v", code, body)
	}
}
