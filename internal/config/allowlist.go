package config

import (
	"sort"
	"strings"
)

// defaultAllowlistEntries are the compiled-in trusted hosts used when no
// config file supplies an allowlist. Kept deliberately short: the
// allowlist is a bypass, and every entry is a host the classifier will
// never see.
var defaultAllowlistEntries = []string{
	"www.google.com",
	"www.microsoft.com",
	"github.com",
	"www.wikipedia.org",
}

// Allowlist is an immutable set of trusted hosts consulted before
// classifier inference. Matching is exact on the lowercased host;
// subdomains are not implicitly trusted.
//
// Design decision: The set is built once and never mutated, so it is safe
// for concurrent reads without locking (loaded at process start, read-only
// thereafter).
type Allowlist struct {
	hosts map[string]struct{}
}

// NewAllowlist builds an Allowlist from the given hosts. Entries are
// lowercased and deduplicated; empty entries are dropped.
func NewAllowlist(hosts []string) Allowlist {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			set[h] = struct{}{}
		}
	}
	return Allowlist{hosts: set}
}

// DefaultAllowlist returns the compiled-in allowlist.
func DefaultAllowlist() Allowlist {
	return NewAllowlist(defaultAllowlistEntries)
}

// Contains reports whether host is trusted. The empty host is never
// trusted, so inputs without an authority component cannot short-circuit
// classification.
func (a Allowlist) Contains(host string) bool {
	if host == "" {
		return false
	}
	_, ok := a.hosts[strings.ToLower(host)]
	return ok
}

// Len returns the number of trusted hosts.
func (a Allowlist) Len() int { return len(a.hosts) }

// Hosts returns the trusted hosts in sorted order, for display and for
// writing starter config files.
func (a Allowlist) Hosts() []string {
	hosts := make([]string, 0, len(a.hosts))
	for h := range a.hosts {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}
