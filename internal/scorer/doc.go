// Package scorer presents the two scoring strategies behind a single
// capability. The rule engine and the classifier adapter keep their own
// richer result shapes; the facade normalizes both into model.Outcome so
// external callers interact with one contract and select a strategy by
// configuration rather than by importing strategy packages directly.
package scorer
