package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestSanitize tests neutralization of hostile log values.
func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean string passes through",
			input: "https://example.com/home",
			want:  "https://example.com/home",
		},
		{
			name:  "newlines become spaces",
			input: "line1\nFAKE LOG ENTRY\r\nline2",
			want:  "line1 FAKE LOG ENTRY  line2",
		},
		{
			name:  "ANSI escape is neutralized",
			input: "name\x1b[31mred",
			want:  "name [31mred",
		},
		{
			name:  "tab becomes space",
			input: "a\tb",
			want:  "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("long values are truncated", func(t *testing.T) {
		t.Parallel()

		got := Sanitize(strings.Repeat("a", MaxValueLength+100))
		if len(got) != MaxValueLength+len("...(truncated)") {
			t.Errorf("expected truncation to %d plus marker, got length %d", MaxValueLength, len(got))
		}
		if !strings.HasSuffix(got, "...(truncated)") {
			t.Error("expected the truncation marker suffix")
		}
	})
}

// TestSanitizingHandler tests that hostile attribute values never reach
// the underlying handler verbatim.
func TestSanitizingHandler(t *testing.T) {
	t.Parallel()

	t.Run("sanitizes string attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("checking url", "url", "http://evil.example/\n2026/01/01 FAKE ADMIN LOGIN")

		out := buf.String()
		if strings.Contains(out, "\nFAKE") || strings.Contains(out, "\n2026/01/01 FAKE") {
			t.Errorf("expected newline to be neutralized, got %q", out)
		}
		if !strings.Contains(out, "FAKE ADMIN LOGIN") {
			t.Errorf("expected the payload text to survive as one line, got %q", out)
		}
	})

	t.Run("debug is gated by verbose", func(t *testing.T) {
		t.Parallel()

		var quiet bytes.Buffer
		NewLogger(&quiet, false).Debug("hidden")
		if quiet.Len() != 0 {
			t.Errorf("expected no debug output when not verbose, got %q", quiet.String())
		}

		var verbose bytes.Buffer
		NewLogger(&verbose, true).Debug("shown")
		if !strings.Contains(verbose.String(), "shown") {
			t.Errorf("expected debug output when verbose, got %q", verbose.String())
		}
	})

	t.Run("sanitizes attributes added with With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false).With("input", "a\nb")

		logger.Info("scored")
		if strings.Contains(buf.String(), "a\nb") {
			t.Errorf("expected With attribute to be sanitized, got %q", buf.String())
		}
	})

	t.Run("sanitizes grouped attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("scored", slog.Group("request", slog.String("url", "x\ny")))
		if strings.Contains(buf.String(), "x\ny") {
			t.Errorf("expected grouped attribute to be sanitized, got %q", buf.String())
		}
	})

	t.Run("nil inner handler falls back to default", func(t *testing.T) {
		t.Parallel()

		h := NewSanitizingHandler(nil)
		if h == nil {
			t.Fatal("expected a handler")
		}
	})
}
