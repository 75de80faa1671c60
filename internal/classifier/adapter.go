package classifier

import (
	"fmt"
	"math"
	"sort"

	"github.com/urlsentry/urlsentry/internal/config"
	"github.com/urlsentry/urlsentry/internal/model"
	"github.com/urlsentry/urlsentry/internal/urlinfo"
)

// Explanations attached to classifier results. The not-a-URL and
// edge-case texts describe the prediction; the warning text flags input
// that was submitted to inference despite not parsing as a URL.
const (
	explanationAllowlisted = "Trusted domain (allowlisted)."
	explanationNotAURL     = "Input does not appear to be a URL."
	explanationEdgeCase    = "Input is a rare/edge-case URL (e.g., IP, FTP, encoded, or partial)."
	warningInvalidURL      = "Input is not a valid URL. Prediction may not be meaningful."
)

// minRiskScore floors the score of any non-benign, non-noise prediction
// so that malicious or edge findings are never reported as zero risk,
// even when the model is barely confident.
const minRiskScore = 0.1

// Adapter wraps a pretrained sequence model behind the classification
// contract: allowlist short-circuit, inference, top-2 confidence
// extraction, explanation synthesis, and score assignment.
//
// Design decision: The Adapter receives its Model and allowlist at
// construction (an explicit inference context) instead of reading
// process-global state. This makes the dependency injectable: tests pass
// a stub model, and a future hot-reload would only need a new Adapter.
type Adapter struct {
	model     Model
	allowlist config.Allowlist
}

// NewAdapter creates an Adapter over the given model and allowlist.
func NewAdapter(m Model, allowlist config.Allowlist) *Adapter {
	return &Adapter{model: m, allowlist: allowlist}
}

// Classify evaluates a single input string.
//
// Classification is total over inputs: non-URL text is not rejected but
// submitted to the model, which carries dedicated not_a_url and edge_case
// classes for exactly that. Only a model runtime failure returns an
// error; callers surface it per input (the process bridge maps it onto
// its ERROR protocol line).
func (a *Adapter) Classify(rawURL string) (model.ClassifierResult, error) {
	info := urlinfo.Parse(rawURL)

	// Allowlisted hosts bypass inference entirely. Exact host match
	// only: subdomains of trusted domains are not implicitly trusted.
	if info.Host != "" && a.allowlist.Contains(info.Host) {
		return model.ClassifierResult{
			URL:         rawURL,
			Prediction:  model.LabelBenign,
			Score:       0.0,
			ResultFlag:  0,
			Explanation: explanationAllowlisted,
		}, nil
	}

	// Invalid shape is a warning, not a rejection: the model recognizes
	// non-URL noise as its own class.
	var warning string
	if !info.IsValidURL() {
		warning = warningInvalidURL
	}

	probs, err := a.model.Predict(rawURL)
	if err != nil {
		return model.ClassifierResult{}, fmt.Errorf("inference failed: %w", err)
	}
	labels := a.model.Labels()
	if len(probs) != len(labels) {
		return model.ClassifierResult{}, fmt.Errorf("inference failed: %d probabilities for %d labels", len(probs), len(labels))
	}

	top := topTwo(labels, probs)
	class1, conf1 := top[0].label, top[0].confidence

	var explanation string
	switch {
	case class1 == model.LabelNotAURL:
		explanation = explanationNotAURL
	case class1 == model.LabelEdgeCase:
		explanation = explanationEdgeCase
	case warning != "":
		explanation = warning
	}

	var score float64
	switch class1 {
	case model.LabelNotAURL:
		score = 1.0
	case model.LabelBenign:
		score = 0.0
	default:
		score = math.Max(minRiskScore, math.Round(conf1*100)/100)
	}

	resultFlag := 1
	if class1 == model.LabelBenign {
		resultFlag = 0
	}

	return model.ClassifierResult{
		URL:         rawURL,
		Prediction:  class1,
		Score:       score,
		ResultFlag:  resultFlag,
		Explanation: explanation,
	}, nil
}

// ranked pairs a label with its predicted confidence.
type ranked struct {
	label      model.Label
	confidence float64
}

// topTwo returns the two highest-confidence classes in descending order.
// With fewer than two labels the single class is duplicated so callers
// can always index both entries.
func topTwo(labels []model.Label, probs []float64) [2]ranked {
	all := make([]ranked, len(labels))
	for i, l := range labels {
		all[i] = ranked{label: l, confidence: probs[i]}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].confidence > all[j].confidence })

	if len(all) == 1 {
		return [2]ranked{all[0], all[0]}
	}
	return [2]ranked{all[0], all[1]}
}
