package model

// CorpusEntry is a single labeled synthetic sample produced by the corpus
// generator. Entries feed both adversarial testing of the rule engine and
// training data for the classifier bundle.
type CorpusEntry struct {
	// Text is the generated string. It is usually a URL but for
	// LabelNotAURL it is deliberately arbitrary noise.
	Text string `json:"text"`

	// Label is the class the generator produced the text for.
	Label Label `json:"label"`
}

// ClassStats aggregates scoring results for one corpus class during a
// batch evaluation run.
type ClassStats struct {
	// Label is the corpus class these statistics describe.
	Label Label `json:"label"`

	// Count is the number of samples evaluated.
	Count int `json:"count"`

	// MeanRuleScore is the mean rule-engine score across the class.
	MeanRuleScore float64 `json:"mean_rule_score"`

	// Categories counts rule-engine categories across the class,
	// keyed by Category.String().
	Categories map[string]int `json:"categories"`

	// Flagged counts samples the classifier marked non-benign.
	// Zero when the evaluation ran without a classifier.
	Flagged int `json:"flagged"`
}

// Evaluation is the aggregate result of scoring a generated corpus batch
// with the available strategies. It backs the eval report writers.
type Evaluation struct {
	// Seed is the generator seed the batch was produced from.
	Seed int64 `json:"seed"`

	// PerClass is the number of samples generated per corpus class.
	PerClass int `json:"per_class"`

	// Classes holds per-class aggregates in generation order.
	Classes []ClassStats `json:"classes"`

	// ClassifierUsed records whether a model bundle participated.
	ClassifierUsed bool `json:"classifier_used"`
}

// Stats returns the aggregate for the given label, or nil if the class
// was not part of the evaluation.
func (e *Evaluation) Stats(label Label) *ClassStats {
	for i := range e.Classes {
		if e.Classes[i].Label == label {
			return &e.Classes[i]
		}
	}
	return nil
}
