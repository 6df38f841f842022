package gocd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// JobHistory fetches the run history of a job
func (c *Client) JobHistory(ctx context.Context, token, pipeline, stage, job string) (json.RawMessage, error) {
	path := fmt.Sprintf("jobs/%s/%s/%s/history",
		url.PathEscape(pipeline), url.PathEscape(stage), url.PathEscape(job))
	return c.request(ctx, token, http.MethodGet, path, "v1", nil)
}

// JobInstance fetches a specific job run
func (c *Client) JobInstance(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int, job string) (json.RawMessage, error) {
	path := fmt.Sprintf("jobs/%s/%d/%s/%d/%s",
		url.PathEscape(pipeline), pipelineCounter, url.PathEscape(stage), stageCounter, url.PathEscape(job))
	return c.request(ctx, token, http.MethodGet, path, "v1", nil)
}
