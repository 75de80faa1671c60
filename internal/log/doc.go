// Package log provides logging for the scoring engine, built on top of
// the standard slog package.
//
// The strings this engine logs are hostile by construction: scored URLs
// carry live SQL injection, XSS, and encoded payloads, and generated
// corpus samples contain arbitrary noise. The SanitizingHandler therefore
// neutralizes every logged attribute value before it reaches the
// underlying handler:
//   - Control characters (including CR/LF) are replaced, preventing
//     log-injection through crafted URLs
//   - Oversized values are truncated with an ellipsis marker, keeping a
//     single adversarial input from flooding the log
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Info("scored url",
//	    "url", "https://evil.tk/<script>\nFAKE LOG LINE</script>",
//	)
package log
