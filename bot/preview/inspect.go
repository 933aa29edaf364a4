package preview

import (
	"net/url"
	"strings"
)

// Inspect parses raw as an absolute URL and extracts its host.
// Returns ErrInvalidURL when parsing fails or the URL has no host.
func Inspect(raw string) (ResolvedURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ResolvedURL{}, ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ResolvedURL{}, ErrInvalidURL
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ResolvedURL{}, ErrInvalidURL
	}

	return ResolvedURL{Raw: raw, Host: host}, nil
}

// ResolveKind maps a host to a provider. Matching is exact: bare github.com
// and www.reddit.com only, no subdomains and no bare reddit.com.
func ResolveKind(host string) Kind {
	switch host {
	case "github.com":
		return KindGitHub
	case "www.reddit.com":
		return KindReddit
	default:
		return KindUnsupported
	}
}
