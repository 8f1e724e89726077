package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCSRFGenerator(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	token, err := gen.GenerateToken("session-123")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	if !gen.ValidateToken("session-123", token) {
		t.Error("valid token rejected")
	}
	if gen.ValidateToken("session-456", token) {
		t.Error("token accepted for wrong session")
	}
	if gen.ValidateToken("session-123", "bogus") {
		t.Error("bogus token accepted")
	}
	if gen.ValidateToken("", token) {
		t.Error("empty session accepted")
	}

	// Different secret produces different tokens
	other := NewCSRFGenerator("other-secret")
	if other.ValidateToken("session-123", token) {
		t.Error("token validated across secrets")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should be denied")
	}

	// A different IP has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("different IP should be allowed")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		realIP    string
		remote    string
		want      string
	}{
		{"remote addr only", "", "", "192.168.1.5:1234", "192.168.1.5:1234"},
		{"x-real-ip", "", "203.0.113.9", "192.168.1.5:1234", "203.0.113.9"},
		{"x-forwarded-for single", "203.0.113.7", "", "192.168.1.5:1234", "203.0.113.7"},
		{"x-forwarded-for chain", "203.0.113.7, 10.0.0.1", "", "192.168.1.5:1234", "203.0.113.7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-IP", tc.realIP)
			}
			if got := GetClientIP(r); got != tc.want {
				t.Errorf("GetClientIP() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword("correct horse battery", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}
	b, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken failed: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("token length = %d, want 64", len(a))
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
}

func TestSessionCookies(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)

	c := CreateSessionCookie(r, "session_id", "abc", time.Now().Add(time.Hour))
	if !c.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if c.Secure {
		t.Error("plain HTTP request should not set Secure")
	}

	r.Header.Set("X-Forwarded-Proto", "https")
	c = CreateSessionCookie(r, "session_id", "abc", time.Now().Add(time.Hour))
	if !c.Secure {
		t.Error("forwarded HTTPS request should set Secure")
	}

	d := CreateDeleteCookie(r, "session_id")
	if d.MaxAge != -1 {
		t.Errorf("delete cookie MaxAge = %d, want -1", d.MaxAge)
	}
}
