package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/urlsentry/urlsentry/internal/model"
)

// DefaultMaxLen is the fixed input length in characters. Longer input is
// truncated, shorter input padded. Must match the length the bundle was
// fitted with.
const DefaultMaxLen = 200

// padToken is the token id reserved for padding and unknown characters.
// Its weight row is all zeros so padding never shifts the distribution.
const padToken = 0

// Bundle is a trained classifier: character vocabulary, label set, and
// per-token log-weights. A Bundle is loaded once per process and is
// immutable afterwards.
type Bundle struct {
	// Version identifies the bundle format for forward compatibility.
	Version int `json:"version"`

	// MaxLen is the fixed sequence length the bundle was fitted with.
	MaxLen int `json:"max_len"`

	// Vocab maps single characters to token ids starting at 1.
	// Id 0 is reserved for padding/unknown.
	Vocab map[string]int `json:"vocab"`

	// LabelSet is the ordered label set; prediction indices refer to it.
	LabelSet []model.Label `json:"labels"`

	// Weights holds one row per token id (including the zero padding
	// row) with one log-weight per label.
	Weights [][]float64 `json:"weights"`

	// Bias holds one log-prior per label.
	Bias []float64 `json:"bias"`
}

// Model is the inference contract the adapter depends on. Implementations
// return a probability distribution over Labels() for arbitrary input
// text. Tests substitute a stub; production uses a loaded Bundle.
type Model interface {
	// Labels returns the ordered label set predictions refer to.
	Labels() []model.Label

	// Predict returns one probability per label, summing to 1.
	Predict(text string) ([]float64, error)
}

// ErrInvalidBundle is returned when a bundle file is structurally broken:
// empty vocabulary or label set, or mismatched weight dimensions.
var ErrInvalidBundle = errors.New("invalid model bundle")

// LoadBundle reads and validates a bundle from path.
//
// Failure here is fatal by design: callers must abort startup rather than
// continue without classification (see package documentation).
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided bundle path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read model bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode model bundle %s: %w", path, err)
	}

	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &b, nil
}

// Save writes the bundle to path as indented JSON.
func (b *Bundle) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write model bundle: %w", err)
	}
	return nil
}

// validate checks the structural invariants the inference path relies on.
func (b *Bundle) validate() error {
	if b.MaxLen <= 0 {
		return fmt.Errorf("%w: non-positive max_len %d", ErrInvalidBundle, b.MaxLen)
	}
	if len(b.Vocab) == 0 {
		return fmt.Errorf("%w: empty vocabulary", ErrInvalidBundle)
	}
	if len(b.LabelSet) == 0 {
		return fmt.Errorf("%w: empty label set", ErrInvalidBundle)
	}
	if len(b.Bias) != len(b.LabelSet) {
		return fmt.Errorf("%w: %d bias entries for %d labels", ErrInvalidBundle, len(b.Bias), len(b.LabelSet))
	}
	if len(b.Weights) != len(b.Vocab)+1 {
		return fmt.Errorf("%w: %d weight rows for vocabulary of %d", ErrInvalidBundle, len(b.Weights), len(b.Vocab))
	}
	for id, row := range b.Weights {
		if len(row) != len(b.LabelSet) {
			return fmt.Errorf("%w: weight row %d has %d entries for %d labels", ErrInvalidBundle, id, len(row), len(b.LabelSet))
		}
	}
	for ch, id := range b.Vocab {
		if id <= padToken || id >= len(b.Weights) {
			return fmt.Errorf("%w: token id %d for %q out of range", ErrInvalidBundle, id, ch)
		}
	}
	return nil
}

// Labels returns the bundle's ordered label set.
func (b *Bundle) Labels() []model.Label { return b.LabelSet }

// Tokenize converts text to a fixed-length token sequence: one token per
// character through the vocabulary, unknown characters mapped to the
// padding token, then truncated or right-padded to MaxLen.
func (b *Bundle) Tokenize(text string) []int {
	tokens := make([]int, b.MaxLen)
	for i, r := range []rune(text) {
		if i >= b.MaxLen {
			break
		}
		tokens[i] = b.Vocab[string(r)]
	}
	return tokens
}

// Predict runs inference: accumulate the weight row of every token in the
// padded sequence, add the bias, and normalize with softmax.
func (b *Bundle) Predict(text string) ([]float64, error) {
	logits := make([]float64, len(b.LabelSet))
	copy(logits, b.Bias)

	for _, id := range b.Tokenize(text) {
		if id == padToken {
			continue
		}
		row := b.Weights[id]
		for i := range logits {
			logits[i] += row[i]
		}
	}

	return softmax(logits), nil
}

// softmax converts logits to a probability distribution. The max-logit
// shift keeps the exponentials in range for strongly negative logits.
func softmax(logits []float64) []float64 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
