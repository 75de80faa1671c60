package rules

// Pattern and keyword sets the engine matches against. These are fixed
// engine data, not configuration: changing them changes scoring semantics
// and therefore warrants a release, unlike the allowlist which is runtime
// configuration.

// sqlInjectionPatterns match classic SQL injection markers in paths and
// query parameters: quote/comment tokens (raw or percent-encoded) and
// well-known statement fragments.
var sqlInjectionPatterns = []string{
	`(%27)|(')|(--)`,
	`(%3D)|(=)`,
	`(%3B)|(;)`,
	`(OR\s+1=1)`,
	`(UNION\s+SELECT)`,
	`(DROP\s+TABLE)`,
}

// xssPatterns match script injection attempts: script/svg/img vectors,
// event handlers, and the usual cookie-theft and alert probes.
var xssPatterns = []string{
	`<script.*?>.*?</script.*?>`,
	`<.*?onerror=.*?>`,
	`<svg.*?onload=.*?>`,
	`(document\.cookie)`,
	`(alert\s*\()`,
}

// encodedPayloadPatterns match payload smuggling through data URIs,
// base64 blobs, and eval calls. Only checked in query parameters, where
// encoded payloads are typically delivered.
var encodedPayloadPatterns = []string{
	`(base64,)`,
	`(data:text/html)`,
	`(eval\(.*\))`,
}

// suspiciousTLDs are top-level domains with disproportionate abuse rates
// in phishing feeds. Presence alone is not conclusive, hence the moderate
// weight.
var suspiciousTLDs = map[string]bool{
	".ru":      true,
	".xyz":     true,
	".top":     true,
	".biz":     true,
	".click":   true,
	".gq":      true,
	".ml":      true,
	".tk":      true,
	".zip":     true,
	".country": true,
}

// suspiciousDomainKeywords are substrings that frequently appear in
// phishing hostnames, either as typosquats (ph1sh, cl1ck) or as
// urgency/credential bait.
var suspiciousDomainKeywords = []string{
	"ph1sh",
	"cl1ck",
	"0auth",
	"secure-login",
	"getrich",
	"malware",
	"update-your-password",
}

// redirectKeyHints are query key substrings that suggest the parameter
// controls a redirect target.
var redirectKeyHints = []string{"redirect", "url", "next"}
