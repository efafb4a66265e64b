package auth

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash equals plaintext")
	}

	if err := CheckPassword(hash, "hunter2hunter2"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong-password1"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"hunter2hunter2", true},
		{"short1a", false},
		{"nodigitshere", false},
		{"12345678", false},
	}
	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.ok && err != nil {
			t.Fatalf("ValidatePassword(%q) = %v, want nil", tt.password, err)
		}
		if !tt.ok && err == nil {
			t.Fatalf("ValidatePassword(%q) = nil, want error", tt.password)
		}
	}
}

func TestGenerateSecureToken(t *testing.T) {
	first := GenerateSecureToken(20)
	second := GenerateSecureToken(20)

	if len(first) != 40 {
		t.Fatalf("token length = %d, want 40 hex chars", len(first))
	}
	if first == second {
		t.Fatal("two tokens are identical")
	}
}
