package service

import "strings"

// redirectURLFields lists where providers put the hosted page URL. Earlier
// names win when several are populated.
var redirectURLFields = []string{
	"url",
	"checkout_url",
	"hosted_url",
	"session_url",
	"portal_url",
	"billing_url",
}

// ResolveRedirectURL returns the first non-empty redirect URL in a provider
// response, or "" when there is none.
func ResolveRedirectURL(payload map[string]any) string {
	for _, field := range redirectURLFields {
		if s, ok := payload[field].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
