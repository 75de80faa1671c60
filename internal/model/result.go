package model

// ScoreResult is the output of the lexical rule engine for a single URL.
//
// Invariant: Score is always within [0.0, 1.0] and monotonically
// non-increasing in the number of detected risk signals; every signal
// subtracts weight, none adds. Category is derived from Score via
// CategoryForScore, never set independently.
type ScoreResult struct {
	// URL is the input exactly as received.
	URL string `json:"url"`

	// Score is the residual trust score after all signal deductions,
	// clamped to [0.0, 1.0] and rounded to two decimal places.
	Score float64 `json:"score"`

	// Category is the risk grade derived from Score.
	Category Category `json:"category"`

	// Reasons lists one human-readable line per detected signal, in
	// detection order. Empty for a fully clean URL.
	Reasons []string `json:"reasons"`
}

// ClassifierResult is the output of the sequence classifier adapter.
//
// Invariant: ResultFlag is 0 exactly when Prediction is LabelBenign.
type ClassifierResult struct {
	// URL is the input exactly as received.
	URL string `json:"url"`

	// Prediction is the top classifier label.
	Prediction Label `json:"prediction"`

	// Score is the risk score in [0.0, 1.0]: 1.0 for not_a_url, 0.0 for
	// benign, otherwise the top-class confidence floored at 0.1 so that
	// malicious findings are never reported as zero risk.
	Score float64 `json:"score"`

	// ResultFlag is 0 for benign, 1 for everything else. It drives the
	// process bridge exit code.
	ResultFlag int `json:"result"`

	// Explanation is an optional human-readable note: why the input was
	// short-circuited, flagged as noise, or flagged as an edge case.
	Explanation string `json:"explanation,omitempty"`
}

// Outcome is the normalized response the scoring facade exposes to
// external callers regardless of which strategy produced it.
//
// Design decision: The two strategies keep their own richer result shapes;
// Outcome flattens only what the service boundary needs. Verdict carries
// either a Category string or a classifier Label, and Status mirrors the
// allow/block decision the original middleware derived from the category.
type Outcome struct {
	// URL is the input exactly as received.
	URL string `json:"url"`

	// Score is the strategy's risk or trust score in [0.0, 1.0].
	Score float64 `json:"score"`

	// Verdict is the category (rule-based) or prediction label
	// (model-based) as a string.
	Verdict string `json:"verdict"`

	// Reasons carries the rule engine's reason list or the classifier's
	// single explanation.
	Reasons []string `json:"reasons,omitempty"`

	// Status is "allowed" or "blocked".
	Status string `json:"status"`
}

// Outcome status values.
const (
	StatusAllowed = "allowed"
	StatusBlocked = "blocked"
)
