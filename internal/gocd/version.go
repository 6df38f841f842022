package gocd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ServerVersion describes the GoCD server build
type ServerVersion struct {
	Version     string `json:"version"`
	BuildNumber string `json:"build_number"`
	GitSHA      string `json:"git_sha"`
	FullVersion string `json:"full_version"`
}

// Version fetches the GoCD server version. Used by the doctor command to
// verify connectivity and credentials.
func (c *Client) Version(ctx context.Context, token string) (*ServerVersion, error) {
	data, err := c.request(ctx, token, http.MethodGet, "version", "v1", nil)
	if err != nil {
		return nil, err
	}

	var v ServerVersion
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode version response: %w", err)
	}

	return &v, nil
}
