// Package classifier implements the sequence classifier adapter: an
// allowlist short-circuit, character-level tokenization against a fixed
// vocabulary, inference over a pretrained model bundle, top-2 confidence
// extraction, and explanation synthesis.
//
// The model bundle (vocabulary, label set, weights) is loaded once at
// process start and is read-only afterwards. Loading is fail-closed: a
// missing or malformed bundle aborts startup instead of silently skipping
// classification, because a security gate that cannot classify must not
// pretend everything is safe.
//
// Design decision: Inference hides behind the small Model interface so
// tests can inject a stub with fixed distributions. The shipped
// implementation is the Bundle itself: per-token log-weights accumulated
// over the padded sequence and normalized with softmax. That keeps
// inference dependency-free and deterministic while preserving the
// contract of the original sequence model (fixed-length character input,
// probability distribution over the bundle's label set).
package classifier
