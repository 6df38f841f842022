package gocd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// StageInstance fetches a specific stage run
func (c *Client) StageInstance(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int) (json.RawMessage, error) {
	path := fmt.Sprintf("stages/%s/%d/%s/%d",
		url.PathEscape(pipeline), pipelineCounter, url.PathEscape(stage), stageCounter)
	return c.request(ctx, token, http.MethodGet, path, "v3", nil)
}

// RunStage triggers a manual stage in a pipeline run
func (c *Client) RunStage(ctx context.Context, token, pipeline string, pipelineCounter int, stage string) (json.RawMessage, error) {
	path := fmt.Sprintf("stages/%s/%d/%s/run",
		url.PathEscape(pipeline), pipelineCounter, url.PathEscape(stage))
	return c.request(ctx, token, http.MethodPost, path, "v2", nil)
}

// CancelStage cancels a running stage
func (c *Client) CancelStage(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int) (json.RawMessage, error) {
	path := fmt.Sprintf("stages/%s/%d/%s/%d/cancel",
		url.PathEscape(pipeline), pipelineCounter, url.PathEscape(stage), stageCounter)
	return c.request(ctx, token, http.MethodPost, path, "v3", nil)
}
