package ident

import (
	"net/url"
	"strings"
)

// trackingParams are query parameters stripped during URL normalization.
// They identify campaigns and sessions, not documents.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"fbclid":       true,
	"gclid":        true,
	"ref":          true,
	"ref_":         true,
	"source":       true,
}

// NormalizeURL canonicalizes a URL for index lookups: scheme and host are
// lowercased, the scheme collapses to https, tracking query parameters
// are removed, fragments are dropped, and the trailing slash is stripped.
// Inputs that do not parse as absolute URLs are returned lowercased and
// trimmed so lookups still behave deterministically.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimRight(raw, "/"))
	}

	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)
	u.Host = strings.TrimPrefix(u.Host, "www.")
	u.Fragment = ""

	q := u.Query()
	for param := range q {
		if trackingParams[strings.ToLower(param)] {
			q.Del(param)
		}
	}
	u.RawQuery = q.Encode()

	u.Path = strings.TrimRight(u.Path, "/")

	return u.String()
}
