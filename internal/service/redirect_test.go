package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRedirectURL(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"nil payload", nil, ""},
		{"no candidates", map[string]any{"id": "sess_1"}, ""},
		{"url", map[string]any{"url": "https://a"}, "https://a"},
		{"checkout_url", map[string]any{"checkout_url": "https://b"}, "https://b"},
		{"hosted_url", map[string]any{"hosted_url": "https://c"}, "https://c"},
		{"session_url", map[string]any{"session_url": "https://d"}, "https://d"},
		{"portal_url", map[string]any{"portal_url": "https://e"}, "https://e"},
		{"billing_url", map[string]any{"billing_url": "https://f"}, "https://f"},
		{
			"url beats everything",
			map[string]any{"billing_url": "https://f", "checkout_url": "https://b", "url": "https://a"},
			"https://a",
		},
		{
			"checkout_url beats hosted_url",
			map[string]any{"hosted_url": "https://c", "checkout_url": "https://b"},
			"https://b",
		},
		{
			"session_url beats portal_url",
			map[string]any{"portal_url": "https://e", "session_url": "https://d"},
			"https://d",
		},
		{"empty earlier field skipped", map[string]any{"url": "", "hosted_url": "https://c"}, "https://c"},
		{"blank earlier field skipped", map[string]any{"url": "  ", "portal_url": "https://e"}, "https://e"},
		{"non-string ignored", map[string]any{"url": 42, "billing_url": "https://f"}, "https://f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRedirectURL(tt.payload))
		})
	}
}
