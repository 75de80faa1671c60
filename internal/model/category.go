package model

// Category represents the risk level assigned by the lexical rule engine.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Category int

const (
	// CategorySafe indicates no meaningful risk signals were detected.
	// Safe URLs pass the security gate unchanged.
	CategorySafe Category = iota

	// CategoryModerateRisk indicates some risk signals were detected but
	// the URL is not conclusively malicious. Examples: plain HTTP on an
	// otherwise normal domain, a single suspicious query parameter.
	CategoryModerateRisk

	// CategoryDangerous indicates strong or multiple risk signals.
	// Examples: injection payloads in the path, IP literals combined with
	// suspicious keywords, high-entropy obfuscated URLs.
	CategoryDangerous
)

// Score thresholds that map a rule-engine score onto a Category.
// A score greater than or equal to SafeThreshold is SAFE; a score greater
// than or equal to ModerateThreshold (but below SafeThreshold) is
// MODERATE_RISK; everything below is DANGEROUS.
const (
	SafeThreshold     = 0.85
	ModerateThreshold = 0.60
)

// CategoryForScore maps a score in [0.0, 1.0] onto a Category using the
// fixed thresholds. Category is a pure function of the score: two URLs
// with the same score always land in the same category.
func CategoryForScore(score float64) Category {
	switch {
	case score >= SafeThreshold:
		return CategorySafe
	case score >= ModerateThreshold:
		return CategoryModerateRisk
	default:
		return CategoryDangerous
	}
}

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategorySafe:
		return "SAFE"
	case CategoryModerateRisk:
		return "MODERATE_RISK"
	case CategoryDangerous:
		return "DANGEROUS"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the category as its string form so that JSON
// consumers see "SAFE" rather than an opaque integer.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}
