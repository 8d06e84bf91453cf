package resolver

import (
	"net"
	"strings"
)

// CandidateKey extracts the cache lookup key from a raw Host header.
// The second return is false when the host carries no tenant context at all.
func CandidateKey(host, platformDomain string, reserved []string) (string, bool) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return "", false
	}

	host = stripPort(host)
	host = strings.TrimSuffix(host, ".")

	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return "", false
	}
	if host == platformDomain {
		return "", false
	}

	// <name>.<platformDomain> → <name>; ".localhost" always counts as a
	// platform-style suffix so dev hosts behave like production ones.
	var name string
	switch {
	case strings.HasSuffix(host, "."+platformDomain):
		name = strings.TrimSuffix(host, "."+platformDomain)
	case strings.HasSuffix(host, ".localhost"):
		name = strings.TrimSuffix(host, ".localhost")
	default:
		// Outside the platform domain the full host is a candidate custom domain.
		return host, true
	}

	if name == "" {
		return "", false
	}
	for _, sub := range reserved {
		if name == sub {
			return "", false
		}
	}
	return name, true
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	// net.SplitHostPort rejects bare IPv6 literals; unwrap brackets manually.
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}
