package classifier

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/urlsentry/urlsentry/internal/model"
)

// testBundle returns a small valid bundle over a two-character
// vocabulary. Character "a" strongly favors benign, "b" strongly favors
// phishing.
func testBundle() *Bundle {
	return &Bundle{
		Version: 1,
		MaxLen:  8,
		Vocab:   map[string]int{"a": 1, "b": 2},
		LabelSet: []model.Label{
			model.LabelBenign,
			model.LabelPhishing,
		},
		Weights: [][]float64{
			{0, 0},
			{0, -3},
			{-3, 0},
		},
		Bias: []float64{0, 0},
	}
}

// TestBundleSaveLoad tests that a bundle survives the save/load cycle.
func TestBundleSaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := testBundle().Save(path); err != nil {
		t.Fatalf("failed to save bundle: %v", err)
	}

	loaded, err := LoadBundle(path)
	if err != nil {
		t.Fatalf("failed to load bundle: %v", err)
	}

	if loaded.MaxLen != 8 {
		t.Errorf("expected max_len 8, got %d", loaded.MaxLen)
	}
	if len(loaded.Labels()) != 2 {
		t.Errorf("expected 2 labels, got %d", len(loaded.Labels()))
	}
	if loaded.Vocab["b"] != 2 {
		t.Errorf("expected token id 2 for %q, got %d", "b", loaded.Vocab["b"])
	}
}

// TestLoadBundleFailures tests that broken bundles are rejected rather
// than silently loaded. A gate running without a working model must not
// report safe verdicts.
func TestLoadBundleFailures(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadBundle(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Fatal("expected an error for a missing bundle file")
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bundle.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		if _, err := LoadBundle(path); err == nil {
			t.Fatal("expected an error for malformed JSON")
		}
	})

	corrupt := []struct {
		name   string
		mutate func(*Bundle)
	}{
		{name: "non-positive max_len", mutate: func(b *Bundle) { b.MaxLen = 0 }},
		{name: "empty vocabulary", mutate: func(b *Bundle) { b.Vocab = map[string]int{} }},
		{name: "empty label set", mutate: func(b *Bundle) { b.LabelSet = nil }},
		{name: "bias length mismatch", mutate: func(b *Bundle) { b.Bias = []float64{0} }},
		{name: "missing weight row", mutate: func(b *Bundle) { b.Weights = b.Weights[:2] }},
		{name: "short weight row", mutate: func(b *Bundle) { b.Weights[1] = []float64{0} }},
		{name: "token id out of range", mutate: func(b *Bundle) { b.Vocab["b"] = 9 }},
	}

	for _, tt := range corrupt {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := testBundle()
			tt.mutate(b)

			path := filepath.Join(t.TempDir(), "bundle.json")
			if err := b.Save(path); err != nil {
				t.Fatalf("failed to save fixture: %v", err)
			}

			_, err := LoadBundle(path)
			if !errors.Is(err, ErrInvalidBundle) {
				t.Errorf("expected ErrInvalidBundle, got %v", err)
			}
		})
	}
}

// TestBundleTokenize tests the fixed-length character tokenization.
func TestBundleTokenize(t *testing.T) {
	t.Parallel()

	b := testBundle()

	t.Run("pads short input", func(t *testing.T) {
		t.Parallel()

		tokens := b.Tokenize("ab")
		if len(tokens) != b.MaxLen {
			t.Fatalf("expected %d tokens, got %d", b.MaxLen, len(tokens))
		}
		want := []int{1, 2, 0, 0, 0, 0, 0, 0}
		for i, id := range want {
			if tokens[i] != id {
				t.Errorf("token %d = %d, want %d", i, tokens[i], id)
			}
		}
	})

	t.Run("truncates long input", func(t *testing.T) {
		t.Parallel()

		tokens := b.Tokenize("aaaaaaaaaabbbb")
		if len(tokens) != b.MaxLen {
			t.Fatalf("expected %d tokens, got %d", b.MaxLen, len(tokens))
		}
		for i, id := range tokens {
			if id != 1 {
				t.Errorf("token %d = %d, want truncation to keep only %q", i, id, "a")
			}
		}
	})

	t.Run("unknown characters map to padding", func(t *testing.T) {
		t.Parallel()

		tokens := b.Tokenize("azb")
		if tokens[1] != 0 {
			t.Errorf("expected unknown character to map to 0, got %d", tokens[1])
		}
	})
}

// TestBundlePredict tests inference over the toy weights.
func TestBundlePredict(t *testing.T) {
	t.Parallel()

	b := testBundle()

	t.Run("probabilities sum to one", func(t *testing.T) {
		t.Parallel()

		probs, err := b.Predict("abab")
		if err != nil {
			t.Fatalf("failed to predict: %v", err)
		}
		var sum float64
		for _, p := range probs {
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("expected probabilities to sum to 1, got %v", sum)
		}
	})

	t.Run("weights separate the classes", func(t *testing.T) {
		t.Parallel()

		benign, err := b.Predict("aaaa")
		if err != nil {
			t.Fatalf("failed to predict: %v", err)
		}
		if benign[0] <= benign[1] {
			t.Errorf("expected %q to favor benign, got %v", "aaaa", benign)
		}

		phishing, err := b.Predict("bbbb")
		if err != nil {
			t.Fatalf("failed to predict: %v", err)
		}
		if phishing[1] <= phishing[0] {
			t.Errorf("expected %q to favor phishing, got %v", "bbbb", phishing)
		}
	})

	t.Run("padding never shifts the distribution", func(t *testing.T) {
		t.Parallel()

		short, err := b.Predict("ab")
		if err != nil {
			t.Fatalf("failed to predict: %v", err)
		}
		// "ab" and "abzz" reach the model as the same token sequence:
		// unknown characters and padding share the zero-weight token.
		padded, err := b.Predict("abzz")
		if err != nil {
			t.Fatalf("failed to predict: %v", err)
		}
		for i := range short {
			if math.Abs(short[i]-padded[i]) > 1e-12 {
				t.Errorf("expected identical distributions, got %v and %v", short, padded)
			}
		}
	})
}
