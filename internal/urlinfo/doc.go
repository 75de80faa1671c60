// Package urlinfo provides lenient URL decomposition and the string
// statistics the scoring strategies share.
//
// Parsing here never fails: any input, including prose or binary noise,
// degrades to an Info with empty scheme and host rather than an error.
// Both scoring strategies rely on this so that non-URL input flows through
// the normal scoring paths and is judged there, instead of being rejected
// upstream.
//
// Design decision: We use golang.org/x/net/publicsuffix for registrable
// domain and TLD derivation instead of splitting on dots because the
// public suffix list correctly handles multi-label suffixes (co.uk,
// com.au) that naive splitting misclassifies.
package urlinfo
