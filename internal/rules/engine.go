package rules

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/urlsentry/urlsentry/internal/model"
	"github.com/urlsentry/urlsentry/internal/urlinfo"
)

// Weights holds the deduction applied per detected signal. All weights
// are positive; the engine subtracts them from the starting score.
type Weights struct {
	// InsecureScheme applies when the scheme is anything but https.
	InsecureScheme float64

	// IPHost applies when the host is a literal IPv4 address.
	IPHost float64

	// SuspiciousTLD applies when the top-level domain is in the
	// suspicious set.
	SuspiciousTLD float64

	// SuspiciousDomain applies when the hostname contains a suspicious
	// keyword.
	SuspiciousDomain float64

	// PathPattern applies when the path matches an injection or XSS
	// pattern.
	PathPattern float64

	// LongPath applies when the path exceeds maxPathLength characters.
	LongPath float64

	// HighEntropyPath applies when path entropy exceeds entropyThreshold.
	HighEntropyPath float64

	// QueryPattern applies per query parameter matching an injection,
	// XSS, or encoded-payload pattern.
	QueryPattern float64

	// QueryRedirect applies per query parameter whose key hints at
	// redirection and whose value names a suspicious domain keyword.
	QueryRedirect float64

	// LongURL applies when the whole URL exceeds maxURLLength characters.
	LongURL float64

	// HighEntropyURL applies when whole-URL entropy exceeds
	// entropyThreshold.
	HighEntropyURL float64

	// DoubleSlashes applies when the URL contains more than two "//"
	// occurrences.
	DoubleSlashes float64
}

// DefaultWeights returns the production weight set.
func DefaultWeights() Weights {
	return Weights{
		InsecureScheme:   0.10,
		IPHost:           0.30,
		SuspiciousTLD:    0.20,
		SuspiciousDomain: 0.20,
		PathPattern:      0.20,
		LongPath:         0.10,
		HighEntropyPath:  0.10,
		QueryPattern:     0.20,
		QueryRedirect:    0.20,
		LongURL:          0.10,
		HighEntropyURL:   0.10,
		DoubleSlashes:    0.05,
	}
}

// Structural limits for the length and entropy signals.
const (
	maxPathLength    = 100
	maxURLLength     = 200
	entropyThreshold = 4.5
	maxDoubleSlashes = 2
)

// Engine scores URLs by subtractive lexical analysis.
//
// Design decision: Regular expressions are compiled once in NewEngine
// rather than per call. The engine carries no other state, so a single
// instance is safe for concurrent use.
type Engine struct {
	weights Weights

	// pathPatterns are checked against the path; first match wins.
	pathPatterns []*regexp.Regexp

	// queryPatterns additionally include encoded-payload patterns and
	// are checked per query parameter; first match per parameter wins.
	queryPatterns []*regexp.Regexp
}

// NewEngine creates an Engine with the default weight set.
func NewEngine() *Engine {
	return NewEngineWithWeights(DefaultWeights())
}

// NewEngineWithWeights creates an Engine with a custom weight set.
// Tests use this to prove monotonicity and threshold behavior.
func NewEngineWithWeights(w Weights) *Engine {
	return &Engine{
		weights:       w,
		pathPatterns:  compilePatterns(sqlInjectionPatterns, xssPatterns),
		queryPatterns: compilePatterns(sqlInjectionPatterns, xssPatterns, encodedPayloadPatterns),
	}
}

// compilePatterns compiles the given pattern groups case-insensitively,
// preserving group order so that reason strings are deterministic.
func compilePatterns(groups ...[]string) []*regexp.Regexp {
	var compiled []*regexp.Regexp
	for _, group := range groups {
		for _, p := range group {
			compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
		}
	}
	return compiled
}

// Score evaluates a single URL. It never fails and never panics on
// malformed input: unparseable text degrades to empty scheme/host and is
// scored on whatever signals remain observable.
func (e *Engine) Score(rawURL string) model.ScoreResult {
	info := urlinfo.Parse(rawURL)

	score := 1.0
	reasons := make([]string, 0, 4)

	deduct := func(weight float64, reason string) {
		score -= weight
		reasons = append(reasons, reason)
	}

	// Scheme: anything but https is unencrypted or unknown.
	if info.Scheme != "https" {
		deduct(e.weights.InsecureScheme, "Insecure scheme (not HTTPS)")
	}

	// Host shape signals.
	if info.IsIP {
		deduct(e.weights.IPHost, "IP address used instead of domain")
	}
	if suspiciousTLDs[info.TLD] {
		deduct(e.weights.SuspiciousTLD, fmt.Sprintf("Suspicious top-level domain: %s", info.TLD))
	}
	if containsAny(info.Host, suspiciousDomainKeywords) {
		deduct(e.weights.SuspiciousDomain, "Suspicious domain name pattern")
	}

	// Path signals. Pattern matching is first-match-wins so a path does
	// not get punished once per overlapping pattern; the remaining path
	// signals are all still checked.
	path := strings.ToLower(info.Path)
	if pattern := firstMatch(e.pathPatterns, path); pattern != "" {
		deduct(e.weights.PathPattern, fmt.Sprintf("Suspicious path pattern matched: %s", pattern))
	}
	if len(path) > maxPathLength {
		deduct(e.weights.LongPath, "Path is unusually long")
	}
	if urlinfo.Entropy(path) > entropyThreshold {
		deduct(e.weights.HighEntropyPath, "High entropy path (possible obfuscation)")
	}

	// Query signals, one pass per parameter. Keys are sorted so that
	// repeated scoring of the same URL yields reasons in the same order.
	keys := make([]string, 0, len(info.Query))
	for key := range info.Query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		values := info.Query[key]
		full := key + "=" + strings.Join(values, " ")
		if pattern := firstMatch(e.queryPatterns, full); pattern != "" {
			deduct(e.weights.QueryPattern, fmt.Sprintf("Suspicious query pattern: %s", pattern))
		}

		if containsAny(strings.ToLower(key), redirectKeyHints) {
			for _, value := range values {
				if containsAny(value, suspiciousDomainKeywords) {
					deduct(e.weights.QueryRedirect, "Suspicious redirection in query")
					break
				}
			}
		}
	}

	// Whole-URL structure signals.
	if len(rawURL) > maxURLLength {
		deduct(e.weights.LongURL, "Very long URL")
	}
	if urlinfo.Entropy(rawURL) > entropyThreshold {
		deduct(e.weights.HighEntropyURL, "High entropy URL")
	}
	if strings.Count(rawURL, "//") > maxDoubleSlashes {
		deduct(e.weights.DoubleSlashes, "Multiple redirect-like segments (//)")
	}

	score = math.Round(clamp(score)*100) / 100

	return model.ScoreResult{
		URL:      rawURL,
		Score:    score,
		Category: model.CategoryForScore(score),
		Reasons:  reasons,
	}
}

// firstMatch returns the source text of the first pattern matching s,
// or "" when none match.
func firstMatch(patterns []*regexp.Regexp, s string) string {
	for _, p := range patterns {
		if p.MatchString(s) {
			// Strip the case-insensitivity prefix added at compile time
			// so reasons show the pattern as declared.
			return strings.TrimPrefix(p.String(), "(?i)")
		}
	}
	return ""
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// clamp bounds v to [0.0, 1.0].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
