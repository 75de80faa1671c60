// Package rules implements the deterministic lexical rule engine.
//
// The engine starts every URL at a trust score of 1.0 and subtracts a
// fixed weight for each structural or lexical risk signal it detects,
// recording one human-readable reason per signal. Signals only ever
// subtract; the score is monotonically non-increasing in the number of
// detected signals. The final score is clamped to [0.0, 1.0], rounded to
// two decimals, and mapped onto a category by fixed thresholds.
//
// The engine is purely functional: no I/O, no hidden state, identical
// output for identical input.
package rules
