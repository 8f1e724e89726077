package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid simple", username: "asha", wantErr: false},
		{name: "valid with digits", username: "asha123", wantErr: false},
		{name: "valid with separators", username: "asha.k_rao-1", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "upper case", username: "Asha", wantErr: true},
		{name: "spaces", username: "asha rao", wantErr: true},
		{name: "leading dot", username: ".asha", wantErr: true},
		{name: "too long", username: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) err = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
	if err := ValidatePassword("longenough1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateDocumentName(t *testing.T) {
	if err := ValidateDocumentName("   "); err == nil {
		t.Error("expected error for blank name")
	}
	if err := ValidateDocumentName("Morning Routine"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateStars(t *testing.T) {
	for _, stars := range []int{1, 3, 5} {
		if err := ValidateStars(stars); err != nil {
			t.Errorf("ValidateStars(%d) = %v, want nil", stars, err)
		}
	}
	for _, stars := range []int{0, 6, -1} {
		if err := ValidateStars(stars); err == nil {
			t.Errorf("ValidateStars(%d) = nil, want error", stars)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"", "asha@example.com", "a.b@clinic.co.in"} {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}
	for _, email := range []string{"not-an-email", "a@b", "two@@example.com", "has space@example.com"} {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidationErrorFormatting(t *testing.T) {
	err := Error{Field: "name", Message: "name is required"}
	if err.Error() != "name: name is required" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should be true for Error")
	}
}
