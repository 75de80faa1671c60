package model

// Label is a classifier output class. The label set is defined by the
// model bundle at training time; these constants cover the canonical set.
//
// The classifier taxonomy is parallel to but distinct from Category:
// the rule engine grades risk (SAFE/MODERATE_RISK/DANGEROUS) while the
// classifier names what the input is (benign/phishing/edge_case/not_a_url).
type Label string

const (
	// LabelBenign marks ordinary, trustworthy URLs.
	LabelBenign Label = "benign"

	// LabelPhishing marks malicious URLs: phishing, injection payloads,
	// malware distribution, and similar.
	LabelPhishing Label = "phishing"

	// LabelEdgeCase marks rare but legitimate URL shapes that confuse
	// naive validators: bare IP literals, FTP URLs, percent-encoded
	// paths, schemeless partial URLs, unusual ports.
	LabelEdgeCase Label = "edge_case"

	// LabelNotAURL marks inputs that are not URLs at all: prose, random
	// noise, truncated scheme prefixes.
	LabelNotAURL Label = "not_a_url"
)

// Labels returns the canonical label set in training order.
func Labels() []Label {
	return []Label{LabelBenign, LabelEdgeCase, LabelNotAURL, LabelPhishing}
}

// String returns the label text.
func (l Label) String() string { return string(l) }
