package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/gjone124/restaurant-finder-backend/internal/apperr"
	"github.com/gjone124/restaurant-finder-backend/internal/auth"
)

const testSecret = "handler-test-secret"

type stubGeocoder struct {
	result string
	err    error
	lat    string
	lng    string
}

func (s *stubGeocoder) ReverseGeocode(ctx context.Context, lat, lng string) (string, error) {
	s.lat, s.lng = lat, lng
	return s.result, s.err
}

// makeApp wires the handler into a test app. Protected routes sit behind a
// bootstrap middleware that injects a parsed token when the X-User-ID header
// is set, which keeps these tests independent of the jwtware middleware.
func makeApp(repo Repository, geo *stubGeocoder) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))),
	})

	handler := NewHandler(NewService(repo), geo, testSecret)
	handler.RegisterPublicRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			tok := &jwt.Token{Claims: jwt.MapClaims{"_id": v}}
			c.Locals("user", tok)
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)

	return app
}

func postJSON(app *fiber.App, path, body string) (int, string) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestSignupCreatesSanitizedUser(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeApp(repo, &stubGeocoder{})

	status, body := postJSON(app, "/signup", `{"name":"Jenny","email":"j@example.com","password":"secret"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	if strings.Contains(body, "password") {
		t.Fatalf("response must not expose the password: %s", body)
	}

	var created User
	if err := json.Unmarshal([]byte(body), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(created.ID) != 24 {
		t.Fatalf("expected a 24-character id, got %q", created.ID)
	}

	stored, err := repo.GetByEmail("j@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.Password == "secret" {
		t.Fatal("password stored in plain text")
	}
}

func TestSignupNameBoundary(t *testing.T) {
	app := makeApp(NewInMemoryRepository(nil), &stubGeocoder{})

	status, _ := postJSON(app, "/signup", `{"name":"Jo","email":"a@example.com","password":"x"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("2-char name should be accepted, got %d", status)
	}

	status, body := postJSON(app, "/signup", `{"name":"J","email":"b@example.com","password":"x"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("1-char name should be rejected, got %d: %s", status, body)
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeApp(repo, &stubGeocoder{})

	status, _ := postJSON(app, "/signup", `{"name":"Jenny","email":"dup@example.com","password":"secret"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("first signup failed with %d", status)
	}

	status, body := postJSON(app, "/signup", `{"name":"Other","email":"dup@example.com","password":"different"}`)
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", status, body)
	}
	if !strings.Contains(body, "already exists") {
		t.Fatalf("unexpected conflict body: %s", body)
	}

	// no duplicate row was written
	stored, _ := repo.GetByEmail("dup@example.com")
	if stored.Name != "Jenny" {
		t.Fatalf("original record was replaced: %+v", stored)
	}
}

func TestSignupThenSigninRoundTrip(t *testing.T) {
	app := makeApp(NewInMemoryRepository(nil), &stubGeocoder{})

	status, body := postJSON(app, "/signup", `{"name":"Jenny","email":"rt@example.com","password":"secret"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("signup failed with %d", status)
	}
	var created User
	if err := json.Unmarshal([]byte(body), &created); err != nil {
		t.Fatalf("bad signup body: %v", err)
	}

	status, body = postJSON(app, "/signin", `{"email":"rt@example.com","password":"secret"}`)
	if status != fiber.StatusOK {
		t.Fatalf("signin failed with %d: %s", status, body)
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(body), &login); err != nil || login.Token == "" {
		t.Fatalf("no token in response: %s", body)
	}

	id, err := auth.ParseUserID(testSecret, login.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if id != created.ID {
		t.Fatalf("token id %q does not match created user %q", id, created.ID)
	}
}

func TestSigninFailuresAreIndistinguishable(t *testing.T) {
	app := makeApp(NewInMemoryRepository(nil), &stubGeocoder{})
	postJSON(app, "/signup", `{"name":"Jenny","email":"real@example.com","password":"secret"}`)

	status1, body1 := postJSON(app, "/signin", `{"email":"real@example.com","password":"wrong"}`)
	status2, body2 := postJSON(app, "/signin", `{"email":"ghost@example.com","password":"secret"}`)

	if status1 != fiber.StatusUnauthorized || status2 != fiber.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", status1, status2)
	}
	if body1 != body2 {
		t.Fatalf("wrong-password and unknown-email responses differ: %s vs %s", body1, body2)
	}
}

func TestGetCurrentUser(t *testing.T) {
	seed := []User{{ID: "65a1b2c3d4e5f6a7b8c9d0e1", Name: "Jenny", Email: "j@example.com", Password: "hash"}}
	app := makeApp(NewInMemoryRepository(seed), &stubGeocoder{})

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("X-User-ID", "65a1b2c3d4e5f6a7b8c9d0e1")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "j@example.com") || strings.Contains(string(b), "password") {
		t.Fatalf("unexpected body: %s", b)
	}

	// no token at all
	res, _ = app.Test(httptest.NewRequest("GET", "/users/me", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// valid format, no matching record
	req = httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("X-User-ID", "ffffffffffffffffffffffff")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", res.StatusCode)
	}

	// malformed identifier in the token
	req = httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("X-User-ID", "not-hex")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", res.StatusCode)
	}
}

func TestUpdateProfile(t *testing.T) {
	avatar := "https://example.com/old.png"
	seed := []User{{ID: "65a1b2c3d4e5f6a7b8c9d0e1", Name: "Old", Email: "j@example.com", Avatar: &avatar, Password: "hash"}}
	repo := NewInMemoryRepository(seed)
	app := makeApp(repo, &stubGeocoder{})

	// name only: avatar must survive
	req := httptest.NewRequest("PATCH", "/users/me", strings.NewReader(`{"name":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "65a1b2c3d4e5f6a7b8c9d0e1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	updated, _ := repo.GetByID("65a1b2c3d4e5f6a7b8c9d0e1")
	if updated.Name != "New" {
		t.Fatalf("name not updated: %+v", updated)
	}
	if updated.Avatar == nil || *updated.Avatar != avatar {
		t.Fatalf("avatar should be unchanged: %+v", updated)
	}

	// missing name is rejected
	req = httptest.NewRequest("PATCH", "/users/me", strings.NewReader(`{"avatar":"https://example.com/new.png"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "65a1b2c3d4e5f6a7b8c9d0e1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", res.StatusCode)
	}

	// unknown user
	req = httptest.NewRequest("PATCH", "/users/me", strings.NewReader(`{"name":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "ffffffffffffffffffffffff")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", res.StatusCode)
	}
}

func TestGetLocation(t *testing.T) {
	geo := &stubGeocoder{result: "Washington, DC, USA"}
	app := makeApp(NewInMemoryRepository(nil), geo)

	res, err := app.Test(httptest.NewRequest("GET", "/users/location", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Washington, DC, USA") {
		t.Fatalf("unexpected body: %s", b)
	}
	if geo.lat != defaultLatitude || geo.lng != defaultLongitude {
		t.Fatalf("default coordinates not applied: %s,%s", geo.lat, geo.lng)
	}
	// defaulted coordinates come back as numbers
	if !strings.Contains(string(b), `"latitude":38.89511`) ||
		!strings.Contains(string(b), `"longitude":-77.03637`) {
		t.Fatalf("default coordinates not numeric: %s", b)
	}

	// explicit coordinates pass through and stay strings
	res, _ = app.Test(httptest.NewRequest("GET", "/users/location?lat=51.5&lng=-0.12", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if geo.lat != "51.5" || geo.lng != "-0.12" {
		t.Fatalf("query coordinates not forwarded: %s,%s", geo.lat, geo.lng)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"latitude":"51.5"`) {
		t.Fatalf("supplied coordinates should echo as strings: %s", b)
	}
}

func TestGetLocationUpstreamFailure(t *testing.T) {
	geo := &stubGeocoder{err: errors.New("provider request failed: status 500")}
	app := makeApp(NewInMemoryRepository(nil), geo)

	res, _ := app.Test(httptest.NewRequest("GET", "/users/location", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Unable to retrieve location.") {
		t.Fatalf("unexpected body: %s", b)
	}
}
