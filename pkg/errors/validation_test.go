package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://api.pexels.com/v1", false},
		{"http localhost", "http://localhost:8080", false},

		{"empty", "", true},
		{"no scheme", "api.pexels.com", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "mountains", false},
		{"with spaces", "city at night", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 201), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNumbers(t *testing.T) {
	if err := ValidatePositive("width", 250); err != nil {
		t.Errorf("ValidatePositive(250) error: %v", err)
	}
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := ValidatePositive("width", v); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidatePositive(%v) error = %v, want INVALID_INPUT", v, err)
		}
	}

	if err := ValidateNonNegative("gap", 0); err != nil {
		t.Errorf("ValidateNonNegative(0) error: %v", err)
	}
	if err := ValidateNonNegative("gap", -0.5); err == nil {
		t.Error("ValidateNonNegative(-0.5) should fail")
	}

	if err := ValidatePhotoID(0); err == nil {
		t.Error("ValidatePhotoID(0) should fail")
	}
	if err := ValidatePhotoID(2014422); err != nil {
		t.Errorf("ValidatePhotoID() error: %v", err)
	}
}
