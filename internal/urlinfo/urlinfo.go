package urlinfo

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info is the decomposed view of an input string. All fields are derived
// once at parse time; Info is immutable afterwards.
type Info struct {
	// Raw is the input exactly as received.
	Raw string

	// Scheme is the lowercased URL scheme, or "" when the input has none.
	Scheme string

	// Host is the lowercased hostname with any port removed, or "" when
	// the input has no authority component.
	Host string

	// Port is the port string, or "" when none was given.
	Port string

	// Path is the URL path. For schemeless input like "www.example.com/x"
	// the whole string lands here, matching permissive URL parsers.
	Path string

	// RawQuery is the query string without the leading "?".
	RawQuery string

	// Query maps query keys to their values. Keys may repeat in the
	// input; repeated values are preserved in order.
	Query url.Values

	// RegistrableDomain is the effective TLD plus one label
	// (e.g. "example.co.uk"), or "" when it cannot be derived.
	RegistrableDomain string

	// TLD is the public suffix with a leading dot (e.g. ".ru"), or ""
	// for IP hosts and hosts without a recognizable suffix.
	TLD string

	// IsIP reports whether Host is a literal IPv4 address.
	IsIP bool
}

// Parse decomposes raw into an Info. It never fails: input that cannot be
// parsed as a URL yields an Info with empty Scheme and Host so callers can
// still score it.
func Parse(raw string) Info {
	info := Info{Raw: raw, Query: url.Values{}}

	u, err := url.Parse(raw)
	if err != nil {
		// Unparseable input is still scoreable text. Leave scheme and
		// host empty and let the strategies judge the raw string.
		return info
	}

	info.Scheme = strings.ToLower(u.Scheme)
	info.Host = strings.ToLower(u.Hostname())
	info.Port = u.Port()
	info.Path = u.Path
	info.RawQuery = u.RawQuery

	// ParseQuery reports an error on malformed escapes but still returns
	// every pair it managed to decode. Attack inputs are malformed by
	// nature, so we keep the partial result and ignore the error.
	if values, qerr := url.ParseQuery(u.RawQuery); qerr == nil || len(values) > 0 {
		info.Query = values
	}

	if info.Host == "" {
		return info
	}

	if ip := net.ParseIP(info.Host); ip != nil && ip.To4() != nil {
		info.IsIP = true
		return info
	}

	if strings.Contains(info.Host, ".") {
		if suffix, _ := publicsuffix.PublicSuffix(info.Host); suffix != "" && suffix != info.Host {
			info.TLD = "." + suffix
		}
		if domain, derr := publicsuffix.EffectiveTLDPlusOne(info.Host); derr == nil {
			info.RegistrableDomain = domain
		}
	}

	return info
}

// IsValidURL reports whether the input had both a scheme and a host.
// The classifier uses this as a soft signal only; invalid input is still
// submitted to inference so the model can recognize it as noise.
func (i Info) IsValidURL() bool {
	return i.Scheme != "" && i.Host != ""
}
