package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"chitraboard/internal/authz"
	"chitraboard/internal/database"
	"chitraboard/internal/drafts"
	"chitraboard/internal/models"
	"chitraboard/internal/repository"
	"chitraboard/internal/security"
	"chitraboard/internal/service"
)

type testApp struct {
	auth       *service.AuthService
	middleware *Middleware
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	auth := service.NewAuthService(profileRepo, time.Hour, "accounts.chitraboard.local")
	limiter := security.NewRateLimiter(3, time.Minute)
	csrf := security.NewCSRFGenerator("test-secret")

	return &testApp{
		auth:       auth,
		middleware: NewMiddleware(auth, limiter, csrf),
	}
}

func (app *testApp) login(t *testing.T, username string, role models.Role) (*models.Profile, *http.Cookie) {
	t.Helper()
	profile, err := app.auth.Register(username, "password123", username+"@example.com", "Test "+username, role)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	session, _, err := app.auth.Login(username, "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return profile, &http.Cookie{Name: SessionCookieName, Value: session.ID}
}

func TestRequireAuth(t *testing.T) {
	app := setupApp(t)

	handler := app.middleware.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		profile := GetProfileFromContext(r.Context())
		respondJSON(w, http.StatusOK, map[string]string{"username": profile.Username})
	})

	// No cookie
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no cookie status = %d, want 401", rec.Code)
	}

	// Bogus session
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "nope"})
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad session status = %d, want 401", rec.Code)
	}

	// Valid session
	_, cookie := app.login(t, "asha", models.RoleTherapist)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/me", nil)
	req.AddCookie(cookie)
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid session status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["username"] != "asha" {
		t.Errorf("username = %q, want asha", body["username"])
	}
}

func TestRequireAction(t *testing.T) {
	app := setupApp(t)
	app.login(t, "first", models.RoleTherapist) // absorbs the admin slot

	handler := app.middleware.RequireAction(authz.ActionAuthorContent, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, nil)
	})

	_, therapistCookie := app.login(t, "ravi", models.RoleTherapist)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/activities", nil)
	req.AddCookie(therapistCookie)
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("therapist status = %d, want 200", rec.Code)
	}

	_, parentCookie := app.login(t, "meena", models.RoleParent)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/activities", nil)
	req.AddCookie(parentCookie)
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("parent status = %d, want 403", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	app := setupApp(t)
	handler := app.middleware.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, nil)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", rec.Code)
	}
}

func TestCSRFProtect(t *testing.T) {
	app := setupApp(t)
	_, cookie := app.login(t, "asha", models.RoleTherapist)

	csrf := security.NewCSRFGenerator("test-secret")
	token, err := csrf.GenerateToken(cookie.Value)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	handler := app.middleware.CSRFProtect(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, nil)
	})

	// Missing token
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/activities", nil)
	req.AddCookie(cookie)
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("missing token status = %d, want 403", rec.Code)
	}

	// Valid token
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/activities", nil)
	req.AddCookie(cookie)
	req.Header.Set("X-CSRF-Token", token)
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", rec.Code)
	}
}

func TestSymbolsEndpoints(t *testing.T) {
	h := NewSymbolsHandler(nil)

	rec := httptest.NewRecorder()
	h.ListSymbols(rec, httptest.NewRequest("GET", "/api/symbols", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var all []models.Symbol
	if err := json.NewDecoder(rec.Body).Decode(&all); err != nil {
		t.Fatalf("decode symbols: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("expected symbols in the library")
	}

	rec = httptest.NewRecorder()
	h.ListSymbols(rec, httptest.NewRequest("GET", "/api/symbols?category=food", nil))
	var food []models.Symbol
	if err := json.NewDecoder(rec.Body).Decode(&food); err != nil {
		t.Fatalf("decode symbols: %v", err)
	}
	if len(food) == 0 || len(food) == len(all) {
		t.Errorf("food filter returned %d of %d symbols", len(food), len(all))
	}
	for _, s := range food {
		if s.Category != models.CategoryFood {
			t.Errorf("symbol %s category = %s, want food", s.ID, s.Category)
		}
	}

	rec = httptest.NewRecorder()
	h.ListCategories(rec, httptest.NewRequest("GET", "/api/symbols/categories", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("categories status = %d", rec.Code)
	}
}

func TestShareHandlerRoundTrip(t *testing.T) {
	store, err := drafts.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open drafts: %v", err)
	}
	board := models.AACBoard{
		ID: "b1", Name: "Mealtime", Rows: 2, Cols: 2,
		Cells: []models.AACCell{
			{ID: "c1", SymbolID: "food-roti", Label: "Roti"},
			{ID: "c2"}, {ID: "c3"}, {ID: "c4"},
		},
	}
	if err := store.SaveBoard(board); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}

	shareService := service.NewShareService("test-secret", time.Hour, "http://localhost:8080")
	h := NewShareHandler(shareService, store)

	body, _ := json.Marshal(shareRequest{Kind: "board", DocumentID: "b1"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/share", bytes.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), ProfileContextKey, &models.Profile{ID: "p1", Role: models.RoleTherapist}))
	h.CreateShareLink(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created shareResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode share response: %v", err)
	}

	// Resolve without any session
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/shared/"+created.Token, nil)
	req.SetPathValue("token", created.Token)
	h.ResolveShareLink(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve status = %d: %s", rec.Code, rec.Body.String())
	}
	var resolved struct {
		Kind  string           `json:"kind"`
		Board models.AACBoard  `json:"board"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resolved); err != nil {
		t.Fatalf("decode resolved: %v", err)
	}
	if resolved.Kind != "board" || resolved.Board.Name != "Mealtime" {
		t.Errorf("resolved = %+v", resolved)
	}

	// QR endpoint renders a PNG
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/share/"+created.Token+"/qr.png", nil)
	req.SetPathValue("token", created.Token)
	h.ShareQRCode(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("qr status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("qr content type = %q", ct)
	}

	// Unknown document
	body, _ = json.Marshal(shareRequest{Kind: "schedule", DocumentID: "missing"})
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/share", bytes.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), ProfileContextKey, &models.Profile{ID: "p1", Role: models.RoleTherapist}))
	h.CreateShareLink(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing doc status = %d, want 404", rec.Code)
	}
}
