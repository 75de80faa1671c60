package corpus

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/urlsentry/urlsentry/internal/model"
)

// Characters used for random junk segments and noise.
const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	lowercase    = "abcdefghijklmnopqrstuvwxyz"
	punctDigits  = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~0123456789"
)

// Generator produces synthetic corpus strings from a seeded random
// source. All randomness flows through the one *rand.Rand, so a Generator
// is deterministic for its seed but must not be shared across goroutines.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator with the given seed. The same seed and the
// same call sequence always yield the same output sequence.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // Reproducibility requires a seeded PRNG; no cryptographic use.
}

// NewRandom creates a Generator seeded from the current time, for callers
// that want variety rather than reproducibility.
func NewRandom() *Generator {
	return New(time.Now().UnixNano())
}

// Valid generates a benign URL: https scheme, trusted domain, benign
// path, and a small benign query string.
func (g *Generator) Valid() string {
	var sb strings.Builder
	sb.WriteString("https://")
	sb.WriteString(g.pick(safeSubdomains))
	sb.WriteString(g.pick(safeDomains))
	sb.WriteString(g.pick(safePaths))
	sb.WriteString(g.benignQuery())
	return sb.String()
}

// Invalid generates a malicious URL: a dotted-quad IP or a suspicious
// domain/TLD combination, an optional phishing-style subdomain, an attack
// payload path with optional junk suffix, and an attack payload query.
func (g *Generator) Invalid() string {
	scheme := g.pick(schemes)

	var host string
	if g.rng.Float64() < 0.33 {
		host = g.dottedQuad()
	} else {
		host = g.pick(suspiciousDomains) + g.pick(suspiciousTLDs)
	}

	payload := strings.TrimSpace(g.pick(attackPayloads()))
	path := "/" + payload
	if g.rng.Float64() < 0.5 {
		path += "/" + g.randomString(alphanumeric, 10+g.rng.Intn(91))
	}

	query := "?" + g.pick(suspiciousQueryKeys) + "=" + url.QueryEscape(g.pick(queryPayloads()))

	return scheme + "://" + g.pick(suspiciousSubdomains) + host + path + query
}

// EdgeCase generates a rare but plausible URL shape: bare IP, FTP,
// encoded payload on a normal domain, unusual port, or a schemeless
// partial URL.
func (g *Generator) EdgeCase() string {
	switch g.rng.Intn(5) {
	case 0:
		return "http://" + g.dottedQuad()
	case 1:
		return fmt.Sprintf("ftp://randomsite%d.xyz/file%d.txt", 1+g.rng.Intn(9999), 1+g.rng.Intn(99999))
	case 2:
		return "http://example.com" + encodedXSSPath
	case 3:
		return fmt.Sprintf("http://example.com:%d/index", 1025+g.rng.Intn(65535-1025+1))
	default:
		return fmt.Sprintf("www.site%d.com/path%d", 1+g.rng.Intn(9999), 1+g.rng.Intn(999))
	}
}

// NotAURL generates a string that is not a URL at all: random
// alphanumerics, space-joined pseudo-words, punctuation noise, or a
// truncated scheme prefix.
func (g *Generator) NotAURL() string {
	length := 8 + g.rng.Intn(33)
	switch g.rng.Intn(4) {
	case 0:
		return g.randomString(alphanumeric, length)
	case 1:
		words := make([]string, 2+g.rng.Intn(6))
		for i := range words {
			words[i] = g.randomString(lowercase, 2+g.rng.Intn(7))
		}
		return strings.Join(words, " ")
	case 2:
		return g.randomString(punctDigits, length)
	default:
		return "http://" + g.randomString(lowercase, 1+g.rng.Intn(5))
	}
}

// Generate produces one string for the given corpus label.
func (g *Generator) Generate(label model.Label) string {
	switch label {
	case model.LabelBenign:
		return g.Valid()
	case model.LabelPhishing:
		return g.Invalid()
	case model.LabelEdgeCase:
		return g.EdgeCase()
	default:
		return g.NotAURL()
	}
}

// Batch produces n labeled entries of one class.
func (g *Generator) Batch(n int, label model.Label) []model.CorpusEntry {
	entries := make([]model.CorpusEntry, n)
	for i := range entries {
		entries[i] = model.CorpusEntry{Text: g.Generate(label), Label: label}
	}
	return entries
}

// Dataset produces perClass entries for every corpus class in a fixed
// class order, suitable for fitting a classifier bundle.
func (g *Generator) Dataset(perClass int) []model.CorpusEntry {
	classes := []model.Label{model.LabelBenign, model.LabelPhishing, model.LabelEdgeCase, model.LabelNotAURL}
	entries := make([]model.CorpusEntry, 0, perClass*len(classes))
	for _, label := range classes {
		entries = append(entries, g.Batch(perClass, label)...)
	}
	return entries
}

// benignQuery builds a query string of 1-3 benign key/value pairs.
func (g *Generator) benignQuery() string {
	n := 1 + g.rng.Intn(3)
	pairs := make([]string, n)
	for i := range pairs {
		pairs[i] = g.pick(safeQueryKeys) + "=" + g.pick(safeQueryValues)
	}
	return "?" + strings.Join(pairs, "&")
}

// dottedQuad returns a random IPv4 literal with octets in [1, 255].
func (g *Generator) dottedQuad() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		1+g.rng.Intn(255), 1+g.rng.Intn(255), 1+g.rng.Intn(255), 1+g.rng.Intn(255))
}

// pick returns a uniformly random element of choices.
func (g *Generator) pick(choices []string) string {
	return choices[g.rng.Intn(len(choices))]
}

// randomString returns a string of length n drawn from charset.
func (g *Generator) randomString(charset string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(charset[g.rng.Intn(len(charset))])
	}
	return sb.String()
}
