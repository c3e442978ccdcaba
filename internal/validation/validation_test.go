package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "user@example.com", wantErr: false},
		{name: "valid with plus", email: "user+tag@example.co.uk", wantErr: false},
		{name: "missing at", email: "userexample.com", wantErr: true},
		{name: "missing domain", email: "user@", wantErr: true},
		{name: "missing tld", email: "user@example", wantErr: true},
		{name: "contains space", email: "us er@example.com", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "longenough", wantErr: false},
		{name: "minimum length", password: "12345678", wantErr: false},
		{name: "too short", password: "1234567", wantErr: true},
		{name: "maximum length", password: strings.Repeat("a", 72), wantErr: false},
		{name: "too long for bcrypt", password: strings.Repeat("a", 73), wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "Asha Verma", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("x", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBody(t *testing.T) {
	if err := ValidateBody("hello", 10); err != nil {
		t.Errorf("ValidateBody() error = %v, want nil", err)
	}
	if err := ValidateBody("  ", 10); !errors.Is(err, ErrBodyEmpty) {
		t.Errorf("ValidateBody(blank) error = %v, want ErrBodyEmpty", err)
	}
	if err := ValidateBody(strings.Repeat("y", 11), 10); !errors.Is(err, ErrBodyTooLong) {
		t.Errorf("ValidateBody(long) error = %v, want ErrBodyTooLong", err)
	}
}
