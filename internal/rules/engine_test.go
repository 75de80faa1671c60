package rules

import (
	"slices"
	"strings"
	"testing"

	"github.com/urlsentry/urlsentry/internal/model"
)

// TestEngineScore tests the subtractive scoring of representative URLs.
func TestEngineScore(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	t.Run("clean https URL scores perfect", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("https://example.com/home")
		if res.Score != 1.0 {
			t.Errorf("expected score 1.0, got %v", res.Score)
		}
		if res.Category != model.CategorySafe {
			t.Errorf("expected SAFE, got %v", res.Category)
		}
		if len(res.Reasons) != 0 {
			t.Errorf("expected no reasons, got %v", res.Reasons)
		}
	})

	t.Run("plain http on an IP host", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("http://192.168.1.1/admin")
		if res.Score != 0.60 {
			t.Errorf("expected score 0.60, got %v", res.Score)
		}
		if res.Category != model.CategoryModerateRisk {
			t.Errorf("expected MODERATE_RISK, got %v", res.Category)
		}
		wantReasons := []string{
			"Insecure scheme (not HTTPS)",
			"IP address used instead of domain",
		}
		if !slices.Equal(res.Reasons, wantReasons) {
			t.Errorf("expected reasons %v, got %v", wantReasons, res.Reasons)
		}
	})

	t.Run("phishing host with script payload is dangerous", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("https://ph1shing.biz/<script>alert('x')</script>")
		if res.Category != model.CategoryDangerous {
			t.Errorf("expected DANGEROUS, got %v (score %v)", res.Category, res.Score)
		}
		if res.Score >= model.ModerateThreshold {
			t.Errorf("expected score below %v, got %v", model.ModerateThreshold, res.Score)
		}

		var haveTLD, haveDomain, havePath bool
		for _, reason := range res.Reasons {
			switch {
			case strings.HasPrefix(reason, "Suspicious top-level domain"):
				haveTLD = true
			case reason == "Suspicious domain name pattern":
				haveDomain = true
			case strings.HasPrefix(reason, "Suspicious path pattern matched"):
				havePath = true
			}
		}
		if !haveTLD || !haveDomain || !havePath {
			t.Errorf("expected TLD, domain, and path reasons, got %v", res.Reasons)
		}
	})

	t.Run("every key=value query parameter deducts", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("https://example.com/?id=1")
		if res.Score != 0.80 {
			t.Errorf("expected score 0.80, got %v", res.Score)
		}

		var haveQuery bool
		for _, reason := range res.Reasons {
			if strings.HasPrefix(reason, "Suspicious query pattern") {
				haveQuery = true
			}
		}
		if !haveQuery {
			t.Errorf("expected a query pattern reason, got %v", res.Reasons)
		}
	})

	t.Run("redirect parameter naming a bait domain", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("https://example.com/?redirect=getrich.biz")
		if !slices.Contains(res.Reasons, "Suspicious redirection in query") {
			t.Errorf("expected a redirection reason, got %v", res.Reasons)
		}
	})

	t.Run("long path", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("https://example.com/" + strings.Repeat("a", 150))
		if !slices.Contains(res.Reasons, "Path is unusually long") {
			t.Errorf("expected a long path reason, got %v", res.Reasons)
		}
	})

	t.Run("high entropy path and URL", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("https://example.com/abcdefghijklmnopqrstuvwxyz0123456789")
		if res.Score != 0.80 {
			t.Errorf("expected score 0.80, got %v", res.Score)
		}
		if !slices.Contains(res.Reasons, "High entropy path (possible obfuscation)") ||
			!slices.Contains(res.Reasons, "High entropy URL") {
			t.Errorf("expected both entropy reasons, got %v", res.Reasons)
		}
	})

	t.Run("redirect-like double slashes", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("https://example.com/a//b//c")
		if res.Score != 0.95 {
			t.Errorf("expected score 0.95, got %v", res.Score)
		}
		if !slices.Contains(res.Reasons, "Multiple redirect-like segments (//)") {
			t.Errorf("expected a double slash reason, got %v", res.Reasons)
		}
	})

	t.Run("unparseable input still scores", func(t *testing.T) {
		t.Parallel()

		res := engine.Score("http://exa mple.com/path")
		if res.Score < 0 || res.Score > 1 {
			t.Errorf("expected score within [0,1], got %v", res.Score)
		}
		// No scheme survives parsing, so the insecure scheme signal fires.
		if !slices.Contains(res.Reasons, "Insecure scheme (not HTTPS)") {
			t.Errorf("expected an insecure scheme reason, got %v", res.Reasons)
		}
	})
}

// TestEngineScoreBounds tests that heavy signal stacking never pushes the
// score outside [0.0, 1.0].
func TestEngineScoreBounds(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	hostile := "http://ph1sh.getrich.ru/<script>alert(document.cookie)</script>/" +
		strings.Repeat("Zx9", 60) +
		"?redirect=getrich.biz&q=%27%20OR%201%3D1&payload=data:text/html;base64,PHNjcmlwdD4="

	res := engine.Score(hostile)
	if res.Score < 0 || res.Score > 1 {
		t.Fatalf("expected score within [0,1], got %v", res.Score)
	}
	if res.Category != model.CategoryDangerous {
		t.Errorf("expected DANGEROUS, got %v", res.Category)
	}
}

// TestEngineScoreIdempotent tests that scoring the same URL twice yields
// the same score and the same reason order.
func TestEngineScoreIdempotent(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	url := "http://ph1shing.ru/login?next=getrich.biz&user=admin%27--&redirect=malware.top"

	first := engine.Score(url)
	second := engine.Score(url)

	if first.Score != second.Score {
		t.Errorf("expected equal scores, got %v and %v", first.Score, second.Score)
	}
	if !slices.Equal(first.Reasons, second.Reasons) {
		t.Errorf("expected identical reason order, got %v and %v", first.Reasons, second.Reasons)
	}
}

// TestEngineScoreMonotonic tests that adding a risk signal never raises
// the score.
func TestEngineScoreMonotonic(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	pairs := []struct {
		name    string
		cleaner string
		riskier string
	}{
		{
			name:    "scheme downgrade",
			cleaner: "https://example.com/home",
			riskier: "http://example.com/home",
		},
		{
			name:    "suspicious TLD",
			cleaner: "https://shop.example.com/cart",
			riskier: "https://shop.example.ru/cart",
		},
		{
			name:    "payload in path",
			cleaner: "https://example.com/search",
			riskier: "https://example.com/search/<script>alert(1)</script>",
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clean := engine.Score(tt.cleaner)
			risky := engine.Score(tt.riskier)
			if risky.Score > clean.Score {
				t.Errorf("expected %q (%v) to score no higher than %q (%v)",
					tt.riskier, risky.Score, tt.cleaner, clean.Score)
			}
		})
	}
}

// TestEngineCustomWeights tests that weights drive the deductions.
func TestEngineCustomWeights(t *testing.T) {
	t.Parallel()

	t.Run("zero weights keep any URL at 1.0", func(t *testing.T) {
		t.Parallel()

		engine := NewEngineWithWeights(Weights{})
		res := engine.Score("http://192.168.1.1/<script>alert(1)</script>?redirect=getrich.ru")
		if res.Score != 1.0 {
			t.Errorf("expected score 1.0 with zero weights, got %v", res.Score)
		}
		// Reasons are still reported; only the deduction is weighted.
		if len(res.Reasons) == 0 {
			t.Error("expected reasons to be reported even with zero weights")
		}
	})

	t.Run("single weight isolates one signal", func(t *testing.T) {
		t.Parallel()

		engine := NewEngineWithWeights(Weights{IPHost: 0.25})
		res := engine.Score("http://10.0.0.1/")
		if res.Score != 0.75 {
			t.Errorf("expected score 0.75, got %v", res.Score)
		}
	})
}
