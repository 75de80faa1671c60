// Package main provides the entry point for the urlsentry CLI.
//
// urlsentry is a URL threat-scoring engine. It grades arbitrary strings
// purporting to be URLs with two independent strategies: a deterministic
// lexical rule engine and a pretrained sequence classifier, and ships a
// synthetic corpus generator for adversarial testing and training data.
//
// Usage:
//
//	urlsentry check <url>
//	urlsentry score <url>
//	urlsentry generate --class phishing --count 10
//
// See --help for all available options.
package main

// main is the entry point for urlsentry.
func main() {
	Execute()
}
