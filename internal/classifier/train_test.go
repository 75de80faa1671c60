package classifier

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/urlsentry/urlsentry/internal/model"
)

// trainingEntries returns a tiny corpus with fully disjoint character
// distributions per class, so the fitted weights must separate them.
func trainingEntries() []model.CorpusEntry {
	return []model.CorpusEntry{
		{Text: "aaaa", Label: model.LabelBenign},
		{Text: "aaab", Label: model.LabelBenign},
		{Text: "cccc", Label: model.LabelPhishing},
		{Text: "cccd", Label: model.LabelPhishing},
		{Text: "eeee", Label: model.LabelEdgeCase},
		{Text: "eeef", Label: model.LabelEdgeCase},
		{Text: "gggg", Label: model.LabelNotAURL},
		{Text: "gggh", Label: model.LabelNotAURL},
	}
}

// TestFit tests fitting a bundle from labeled entries.
func TestFit(t *testing.T) {
	t.Parallel()

	t.Run("produces a loadable bundle", func(t *testing.T) {
		t.Parallel()

		bundle, err := Fit(trainingEntries())
		if err != nil {
			t.Fatalf("failed to fit: %v", err)
		}

		if bundle.MaxLen != DefaultMaxLen {
			t.Errorf("expected max_len %d, got %d", DefaultMaxLen, bundle.MaxLen)
		}
		if len(bundle.Labels()) != len(model.Labels()) {
			t.Errorf("expected %d labels, got %d", len(model.Labels()), len(bundle.Labels()))
		}
		// Eight distinct training characters, ids from 1.
		if len(bundle.Vocab) != 8 {
			t.Errorf("expected vocabulary of 8, got %d", len(bundle.Vocab))
		}

		// The save/load cycle revalidates every structural invariant.
		path := filepath.Join(t.TempDir(), "bundle.json")
		if err := bundle.Save(path); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if _, err := LoadBundle(path); err != nil {
			t.Fatalf("fitted bundle failed validation on reload: %v", err)
		}
	})

	t.Run("fitted model separates the classes", func(t *testing.T) {
		t.Parallel()

		bundle, err := Fit(trainingEntries())
		if err != nil {
			t.Fatalf("failed to fit: %v", err)
		}

		checks := []struct {
			text string
			want model.Label
		}{
			{text: "aaaa", want: model.LabelBenign},
			{text: "cccc", want: model.LabelPhishing},
			{text: "eeee", want: model.LabelEdgeCase},
			{text: "gggg", want: model.LabelNotAURL},
		}
		for _, c := range checks {
			probs, err := bundle.Predict(c.text)
			if err != nil {
				t.Fatalf("failed to predict %q: %v", c.text, err)
			}
			best := 0
			for i := range probs {
				if probs[i] > probs[best] {
					best = i
				}
			}
			if got := bundle.Labels()[best]; got != c.want {
				t.Errorf("Predict(%q) favored %q, want %q", c.text, got, c.want)
			}
		}
	})

	t.Run("deterministic for the same corpus", func(t *testing.T) {
		t.Parallel()

		first, err := Fit(trainingEntries())
		if err != nil {
			t.Fatalf("failed to fit: %v", err)
		}
		second, err := Fit(trainingEntries())
		if err != nil {
			t.Fatalf("failed to fit: %v", err)
		}

		for ch, id := range first.Vocab {
			if second.Vocab[ch] != id {
				t.Errorf("expected stable token id for %q, got %d and %d", ch, id, second.Vocab[ch])
			}
		}
		for i := range first.Bias {
			if first.Bias[i] != second.Bias[i] {
				t.Errorf("expected identical bias, got %v and %v", first.Bias, second.Bias)
			}
		}
	})
}

// TestFitFailures tests rejection of unusable corpora.
func TestFitFailures(t *testing.T) {
	t.Parallel()

	t.Run("empty corpus", func(t *testing.T) {
		t.Parallel()

		if _, err := Fit(nil); !errors.Is(err, ErrInvalidBundle) {
			t.Errorf("expected ErrInvalidBundle, got %v", err)
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		t.Parallel()

		entries := []model.CorpusEntry{{Text: "x", Label: "mystery"}}
		if _, err := Fit(entries); !errors.Is(err, ErrInvalidBundle) {
			t.Errorf("expected ErrInvalidBundle, got %v", err)
		}
	})

	t.Run("missing class", func(t *testing.T) {
		t.Parallel()

		entries := []model.CorpusEntry{
			{Text: "aaaa", Label: model.LabelBenign},
			{Text: "cccc", Label: model.LabelPhishing},
		}
		if _, err := Fit(entries); !errors.Is(err, ErrInvalidBundle) {
			t.Errorf("expected ErrInvalidBundle, got %v", err)
		}
	})
}
