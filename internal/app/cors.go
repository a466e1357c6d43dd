package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a browser Origin header matches one of
// the configured host patterns. Gift pages are embedded and shared, so
// patterns are matched on the host part only: an exact host
// ("gifts.example.com"), a subdomain wildcard ("*.example.com") that
// covers per-creator subdomains, or a port wildcard ("localhost:*")
// for local dashboard builds.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		switch {
		case pattern == host:
			return true
		case strings.HasPrefix(pattern, "*."):
			if strings.HasSuffix(host, pattern[1:]) {
				return true
			}
		case strings.HasSuffix(pattern, ":*"):
			if strings.HasPrefix(host, pattern[:len(pattern)-1]) {
				return true
			}
		}
	}
	return false
}
