package corpus

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/urlsentry/urlsentry/internal/classifier"
	"github.com/urlsentry/urlsentry/internal/model"
	"github.com/urlsentry/urlsentry/internal/rules"
)

// Evaluator scores generated corpus batches with the available scoring
// strategies and aggregates the results per class. It backs the eval
// command and the statistical round-trip check: across a large batch the
// mean rule-engine score of benign output must exceed that of malicious
// output.
//
// Design decision: We bound concurrency with errgroup.SetLimit rather
// than a hand-rolled worker pool; each sample gets its own goroutine but
// only the configured number run simultaneously. Scoring is pure CPU
// work, so the default limit is modest.
type Evaluator struct {
	// engine is the rule engine; always present.
	engine *rules.Engine

	// adapter optionally adds classifier verdicts to the aggregates.
	adapter *classifier.Adapter

	// concurrency is the maximum number of concurrent scoring calls.
	concurrency int

	// logger is used for evaluation progress and per-sample failures.
	logger *slog.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithAdapter adds a classifier adapter to the evaluation.
func WithAdapter(a *classifier.Adapter) EvaluatorOption {
	return func(e *Evaluator) { e.adapter = a }
}

// WithConcurrency sets the maximum number of concurrent scoring calls.
func WithConcurrency(n int) EvaluatorOption {
	return func(e *Evaluator) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) { e.logger = logger }
}

// NewEvaluator creates an Evaluator over the given rule engine.
func NewEvaluator(engine *rules.Engine, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		engine:      engine,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// sampleResult carries one scored sample back to the aggregation step.
type sampleResult struct {
	label     model.Label
	ruleScore float64
	category  model.Category
	flagged   bool
}

// Run generates perClass samples for every corpus class from the given
// seed and scores them. It returns aggregated per-class statistics in
// generation order. Per-sample classifier failures are logged and counted
// as flagged rather than aborting the batch; only context cancellation
// stops the run.
func (e *Evaluator) Run(ctx context.Context, seed int64, perClass int) (*model.Evaluation, error) {
	entries := New(seed).Dataset(perClass)

	e.logger.Info("starting corpus evaluation",
		"seed", seed,
		"per_class", perClass,
		"total", len(entries),
		"classifier", e.adapter != nil,
	)

	results := make([]sampleResult, len(entries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			res := e.engine.Score(entry.Text)
			sample := sampleResult{
				label:     entry.Label,
				ruleScore: res.Score,
				category:  res.Category,
			}

			if e.adapter != nil {
				cls, err := e.adapter.Classify(entry.Text)
				if err != nil {
					// A sample the model cannot judge is treated as
					// flagged: evaluation must not understate risk.
					e.logger.Warn("classification failed", "text", entry.Text, "error", err)
					sample.flagged = true
				} else {
					sample.flagged = cls.ResultFlag != 0
				}
			}

			mu.Lock()
			results[i] = sample
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.aggregate(seed, perClass, results), nil
}

// aggregate folds per-sample results into per-class statistics,
// preserving generation order of the classes.
func (e *Evaluator) aggregate(seed int64, perClass int, results []sampleResult) *model.Evaluation {
	order := []model.Label{model.LabelBenign, model.LabelPhishing, model.LabelEdgeCase, model.LabelNotAURL}

	byLabel := make(map[model.Label]*model.ClassStats, len(order))
	sums := make(map[model.Label]float64, len(order))
	eval := &model.Evaluation{
		Seed:           seed,
		PerClass:       perClass,
		Classes:        make([]model.ClassStats, 0, len(order)),
		ClassifierUsed: e.adapter != nil,
	}

	for _, label := range order {
		eval.Classes = append(eval.Classes, model.ClassStats{
			Label:      label,
			Categories: make(map[string]int),
		})
		byLabel[label] = &eval.Classes[len(eval.Classes)-1]
	}

	for _, r := range results {
		stats := byLabel[r.label]
		stats.Count++
		sums[r.label] += r.ruleScore
		stats.Categories[r.category.String()]++
		if r.flagged {
			stats.Flagged++
		}
	}

	for _, label := range order {
		if stats := byLabel[label]; stats.Count > 0 {
			stats.MeanRuleScore = sums[label] / float64(stats.Count)
		}
	}
	return eval
}
