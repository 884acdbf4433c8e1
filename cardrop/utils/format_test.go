package utils

import (
	"testing"
	"time"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Hour + 5*time.Minute, "1h 5m"},
		{4*time.Minute + 12*time.Second, "4m 12s"},
		{30 * time.Second, "30s"},
		{0, "0s"},
		{2 * time.Hour, "2h 0m"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatAuthor(t *testing.T) {
	if got := FormatAuthor("alice"); got != "@alice" {
		t.Errorf("FormatAuthor(alice) = %q", got)
	}
}
