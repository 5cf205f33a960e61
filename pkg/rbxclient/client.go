package rbxclient

import (
	"fmt"
	"strings"

	"github.com/rbxsync-io/rbxsync/internal/client"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// New creates a new Open Cloud API client. The configuration is read once at
// construction and never mutated afterwards; no network call is performed.
func New(config *rbxcloud.Config) (rbxcloud.Client, error) {
	if config == nil {
		return nil, rbxcloud.NewConfigError("config is required")
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	cli, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// normalizeBaseURL trims a trailing slash and adds https:// when no scheme
// is present. An empty value defers to the client default.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}

	normalized := strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}
