package corpus

// Template and payload libraries the generator composes strings from.
// The attack payloads intentionally mirror what the rule engine's pattern
// sets detect so generated invalid URLs exercise every signal category.

var safeDomains = []string{
	"example.com",
	"mytrustedsite.org",
	"shop.safe.net",
	"university.edu",
	"govservices.in",
}

var safeSubdomains = []string{"", "www.", "api.", "shop.", "blog."}

var safePaths = []string{
	"/home", "/about", "/products", "/services",
	"/contact", "/blog", "/news", "/dashboard",
}

var safeQueryKeys = []string{"utm_source", "ref", "id", "lang", "theme"}

var safeQueryValues = []string{"google", "newsletter", "42", "en", "dark"}

var suspiciousTLDs = []string{".ru", ".xyz", ".top", ".biz", ".click", ".gq", ".ml", ".tk"}

var suspiciousDomains = []string{
	"malware-download",
	"free-bitcoin",
	"get-rich-now",
	"ph1shing",
	"clickjack",
	"untrustedlogin",
}

var suspiciousSubdomains = []string{"", "login.", "secure.", "click.", "verify.", "track."}

var suspiciousQueryKeys = []string{"q", "search", "input", "url"}

var sqlInjectionPayloads = []string{
	"' OR 1=1 --",
	"'; DROP TABLE users; --",
	"' UNION SELECT password FROM users --",
}

var xssPayloads = []string{
	"<script>alert(1)</script>",
	"<img src=x onerror=alert('XSS')>",
	"<svg/onload=alert(1)>",
}

var redirectionPayloads = []string{
	"?redirect=http://evil.com",
	"?next=https://phish.com",
}

// encodedPayloads holds base64-encoded script payloads
// ("<script>alert('hacked')</script>" below).
var encodedPayloads = []string{
	"PHNjcmlwdD5hbGVydCgnaGFja2VkJyk8L3NjcmlwdD4=",
}

var schemes = []string{"http", "https"}

// encodedXSSPath is the fixed percent-encoded XSS path used by the
// edge-case template: an encoded payload on an otherwise normal domain.
const encodedXSSPath = "/%3Csvg/onload=alert(1)%3E"

// attackPayloads returns the union of all attack payload libraries in a
// fixed order, so indexed random draws stay deterministic per seed.
func attackPayloads() []string {
	union := make([]string, 0, len(sqlInjectionPayloads)+len(xssPayloads)+len(redirectionPayloads)+len(encodedPayloads))
	union = append(union, sqlInjectionPayloads...)
	union = append(union, xssPayloads...)
	union = append(union, redirectionPayloads...)
	union = append(union, encodedPayloads...)
	return union
}

// queryPayloads is the attack union without the redirection payloads,
// which only make sense as paths (they contain their own "?").
func queryPayloads() []string {
	union := make([]string, 0, len(sqlInjectionPayloads)+len(xssPayloads)+len(encodedPayloads))
	union = append(union, sqlInjectionPayloads...)
	union = append(union, xssPayloads...)
	union = append(union, encodedPayloads...)
	return union
}
