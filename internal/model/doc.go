// Package model defines the core data types shared across the scoring
// engine: risk categories, classifier labels, scoring results, and the
// normalized outcome exposed to external callers.
//
// Design decision: Domain types live in a dedicated package rather than in
// the packages that produce them so that the rule engine, the classifier
// adapter, the report writers, and the history store can share them without
// import cycles. The types here are plain values with no behavior beyond
// formatting; all scoring logic stays in the producing packages.
package model
