package registration

import (
	"errors"
	"testing"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc123z", "ABC123Z"},
		{"  ABC123Z  ", "ABC123Z"},
		{"AbC123z", "ABC123Z"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.input); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateCode(t *testing.T) {
	valid := []string{"ABC123Z", "abc123z", "1234567", "ZZZZZZZ", " ABC123Z "}
	for _, code := range valid {
		if err := ValidateCode(code); err != nil {
			t.Errorf("ValidateCode(%q) = %v, want nil", code, err)
		}
	}

	invalid := []string{"", "AB12", "TOOLONGCODE", "AB12-34", "ABC 123", "ABC123!", "ABC123ZZ"}
	for _, code := range invalid {
		if err := ValidateCode(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("ValidateCode(%q) = %v, want ErrInvalidCode", code, err)
		}
	}
}
