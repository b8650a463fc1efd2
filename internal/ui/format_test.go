package ui

import (
	"testing"
	"time"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"authentication failed for user", "Check your username and password in the configuration"},
		{"syntax error line 1 at position 5", "Review the SQL of the named subqueries in the plan"},
		{"Object 'COMPANY' does not exist", "Verify the tables exist or check your database/schema context"},
		{"something else entirely", ""},
	}

	for _, tt := range tests {
		if got := getSuggestion(tt.message); got != tt.want {
			t.Errorf("getSuggestion(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{2500 * time.Millisecond, "2.5s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestColorFuncPassthrough(t *testing.T) {
	DisableColor()
	if got := ColorError("boom"); got != "boom" {
		t.Errorf("expected passthrough with color disabled, got %q", got)
	}
}
