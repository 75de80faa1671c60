// Package corpus generates synthetic labeled URL corpora and evaluates
// the scoring strategies against them.
//
// The generator produces four classes of strings from templates and
// payload libraries: valid benign URLs, invalid/malicious URLs carrying
// injection or XSS payloads, rare-but-legitimate edge cases, and plain
// non-URL noise. Output is deterministic for a given seed: the same seed
// and the same call sequence always produce the same strings, which makes
// adversarial regression tests reproducible.
//
// Generator instances are independent; parallel workloads should create
// one seeded generator per goroutine rather than sharing an instance.
package corpus
