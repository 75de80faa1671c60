package classifier

import (
	"fmt"
	"math"
	"sort"

	"github.com/urlsentry/urlsentry/internal/model"
)

// Fit builds a Bundle from labeled corpus entries using additive-smoothed
// per-label character frequencies: each token's weight row holds the
// log-likelihood of that character under each label, and the bias holds
// the log class priors. Inference over these weights recovers the
// posterior class distribution.
//
// This is the only model producer in the repository; it exists so the
// adapter has a real bundle to load and so the synthetic corpus can be
// turned into a working classifier end to end. It intentionally has no
// training knobs beyond the data itself.
func Fit(entries []model.CorpusEntry) (*Bundle, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no training entries", ErrInvalidBundle)
	}

	labels := model.Labels()
	labelIndex := make(map[model.Label]int, len(labels))
	for i, l := range labels {
		labelIndex[l] = i
	}

	// Collect the character vocabulary. Sorted assignment keeps token
	// ids, and therefore the whole bundle, deterministic for a given
	// corpus.
	charSet := make(map[string]struct{})
	for _, e := range entries {
		for _, r := range e.Text {
			charSet[string(r)] = struct{}{}
		}
	}
	chars := make([]string, 0, len(charSet))
	for ch := range charSet {
		chars = append(chars, ch)
	}
	sort.Strings(chars)

	vocab := make(map[string]int, len(chars))
	for i, ch := range chars {
		vocab[ch] = i + 1 // id 0 is the padding token
	}

	// Count character occurrences per label, truncating each sample to
	// the fixed sequence length exactly as inference will.
	counts := make([][]float64, len(vocab)+1)
	for i := range counts {
		counts[i] = make([]float64, len(labels))
	}
	totals := make([]float64, len(labels))
	classSizes := make([]float64, len(labels))

	for _, e := range entries {
		li, ok := labelIndex[e.Label]
		if !ok {
			return nil, fmt.Errorf("%w: unknown label %q", ErrInvalidBundle, e.Label)
		}
		classSizes[li]++
		for i, r := range []rune(e.Text) {
			if i >= DefaultMaxLen {
				break
			}
			counts[vocab[string(r)]][li]++
			totals[li]++
		}
	}

	// Laplace smoothing keeps unseen (label, character) pairs at a small
	// nonzero likelihood instead of forcing the posterior to zero.
	vocabSize := float64(len(vocab))
	weights := make([][]float64, len(vocab)+1)
	weights[padToken] = make([]float64, len(labels))
	for id := 1; id <= len(vocab); id++ {
		row := make([]float64, len(labels))
		for li := range labels {
			row[li] = math.Log((counts[id][li] + 1) / (totals[li] + vocabSize))
		}
		weights[id] = row
	}

	bias := make([]float64, len(labels))
	total := float64(len(entries))
	for li := range labels {
		if classSizes[li] == 0 {
			return nil, fmt.Errorf("%w: no training entries for label %q", ErrInvalidBundle, labels[li])
		}
		bias[li] = math.Log(classSizes[li] / total)
	}

	return &Bundle{
		Version:  1,
		MaxLen:   DefaultMaxLen,
		Vocab:    vocab,
		LabelSet: labels,
		Weights:  weights,
		Bias:     bias,
	}, nil
}
