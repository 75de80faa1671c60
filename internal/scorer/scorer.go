package scorer

import (
	"fmt"

	"github.com/urlsentry/urlsentry/internal/classifier"
	"github.com/urlsentry/urlsentry/internal/config"
	"github.com/urlsentry/urlsentry/internal/model"
	"github.com/urlsentry/urlsentry/internal/rules"
)

// Scorer is the single scoring capability external callers depend on.
// Both strategies implement it; which one a caller gets is decided by
// configuration, not by code changes.
type Scorer interface {
	// Name identifies the strategy ("rules" or "model").
	Name() string

	// Evaluate scores one input string and returns the normalized
	// outcome. The rule-based strategy never fails; the model-based
	// strategy returns per-input inference errors.
	Evaluate(url string) (model.Outcome, error)
}

// RuleBased adapts the lexical rule engine to the Scorer capability.
type RuleBased struct {
	engine *rules.Engine
}

// NewRuleBased creates the rule-based strategy.
func NewRuleBased(engine *rules.Engine) *RuleBased {
	return &RuleBased{engine: engine}
}

// Name returns the strategy name.
func (s *RuleBased) Name() string { return config.StrategyRules }

// Evaluate scores the URL with the rule engine. A non-SAFE category
// blocks, mirroring the gate semantics of the service boundary.
func (s *RuleBased) Evaluate(url string) (model.Outcome, error) {
	res := s.engine.Score(url)

	status := model.StatusAllowed
	if res.Category != model.CategorySafe {
		status = model.StatusBlocked
	}

	return model.Outcome{
		URL:     res.URL,
		Score:   res.Score,
		Verdict: res.Category.String(),
		Reasons: res.Reasons,
		Status:  status,
	}, nil
}

// ModelBased adapts the classifier adapter to the Scorer capability.
type ModelBased struct {
	adapter *classifier.Adapter
}

// NewModelBased creates the model-based strategy.
func NewModelBased(adapter *classifier.Adapter) *ModelBased {
	return &ModelBased{adapter: adapter}
}

// Name returns the strategy name.
func (s *ModelBased) Name() string { return config.StrategyModel }

// Evaluate classifies the URL. Any non-benign prediction blocks.
func (s *ModelBased) Evaluate(url string) (model.Outcome, error) {
	res, err := s.adapter.Classify(url)
	if err != nil {
		return model.Outcome{}, err
	}

	status := model.StatusAllowed
	if res.ResultFlag != 0 {
		status = model.StatusBlocked
	}

	var reasons []string
	if res.Explanation != "" {
		reasons = []string{res.Explanation}
	}

	return model.Outcome{
		URL:     res.URL,
		Score:   res.Score,
		Verdict: res.Prediction.String(),
		Reasons: reasons,
		Status:  status,
	}, nil
}

// ForStrategy builds the Scorer selected by cfg.Strategy. The model-based
// strategy requires a loaded bundle; passing a nil model with
// StrategyModel is a configuration error.
func ForStrategy(cfg *config.Config, engine *rules.Engine, m classifier.Model) (Scorer, error) {
	switch cfg.Strategy {
	case config.StrategyRules:
		return NewRuleBased(engine), nil
	case config.StrategyModel:
		if m == nil {
			return nil, fmt.Errorf("strategy %q requires a model bundle", cfg.Strategy)
		}
		return NewModelBased(classifier.NewAdapter(m, cfg.Allowlist)), nil
	default:
		return nil, fmt.Errorf("%w: got %q", config.ErrInvalidStrategy, cfg.Strategy)
	}
}
