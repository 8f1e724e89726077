package credentials

import (
	"strings"
	"testing"
)

func TestGenerateChildUsername(t *testing.T) {
	for i := 0; i < 50; i++ {
		username, err := GenerateChildUsername()
		if err != nil {
			t.Fatalf("GenerateChildUsername failed: %v", err)
		}
		parts := strings.Split(username, "-")
		if len(parts) != 2 {
			t.Fatalf("username %q is not adjective-noun", username)
		}
		if parts[0] == "" || parts[1] == "" {
			t.Errorf("username %q has an empty part", username)
		}
	}
}

func TestGenerateChildPassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		password, err := GenerateChildPassword()
		if err != nil {
			t.Fatalf("GenerateChildPassword failed: %v", err)
		}
		if len(password) != 6 {
			t.Errorf("password length = %d, want 6", len(password))
		}
		for _, c := range password {
			if strings.ContainsRune("ilo01", c) {
				t.Errorf("password %q contains ambiguous character %q", password, c)
			}
		}
		seen[password] = true
	}
	// 100 draws from a 31^6 space should not all collide
	if len(seen) < 90 {
		t.Errorf("expected mostly unique passwords, got %d distinct", len(seen))
	}
}
