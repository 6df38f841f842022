package gocd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
)

// PipelineStatus fetches the pause/lock/schedulable state of a pipeline
func (c *Client) PipelineStatus(ctx context.Context, token, name string) (json.RawMessage, error) {
	path := fmt.Sprintf("pipelines/%s/status", url.PathEscape(name))
	return c.request(ctx, token, http.MethodGet, path, "v1", nil)
}

// PipelineHistory fetches the run history of a pipeline. pageSize and after
// are passed through to the upstream cursor; zero values are omitted.
func (c *Client) PipelineHistory(ctx context.Context, token, name string, pageSize int, after string) (json.RawMessage, error) {
	path := fmt.Sprintf("pipelines/%s/history", url.PathEscape(name))

	params := url.Values{}
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	if after != "" {
		params.Set("after", after)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return c.request(ctx, token, http.MethodGet, path, "v1", nil)
}

// PipelineInstance fetches a specific run of a pipeline by counter
func (c *Client) PipelineInstance(ctx context.Context, token, name string, counter int) (json.RawMessage, error) {
	path := fmt.Sprintf("pipelines/%s/%d", url.PathEscape(name), counter)
	return c.request(ctx, token, http.MethodGet, path, "v1", nil)
}

// TriggerOptions configures a pipeline trigger request
type TriggerOptions struct {
	// EnvironmentVariables are injected into the scheduled run
	EnvironmentVariables map[string]string

	// UpdateMaterials forces a material update before scheduling
	UpdateMaterials *bool
}

type scheduleEnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type scheduleRequest struct {
	EnvironmentVariables            []scheduleEnvVar `json:"environment_variables,omitempty"`
	UpdateMaterialsBeforeScheduling *bool            `json:"update_materials_before_scheduling,omitempty"`
}

// TriggerPipeline schedules a new run of a pipeline. When no options are
// given the request body is omitted entirely.
func (c *Client) TriggerPipeline(ctx context.Context, token, name string, opts TriggerOptions) (json.RawMessage, error) {
	path := fmt.Sprintf("pipelines/%s/schedule", url.PathEscape(name))

	var body any
	if len(opts.EnvironmentVariables) > 0 || opts.UpdateMaterials != nil {
		req := scheduleRequest{
			UpdateMaterialsBeforeScheduling: opts.UpdateMaterials,
		}
		// Sorted for a deterministic request body
		names := make([]string, 0, len(opts.EnvironmentVariables))
		for n := range opts.EnvironmentVariables {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			req.EnvironmentVariables = append(req.EnvironmentVariables, scheduleEnvVar{
				Name:  n,
				Value: opts.EnvironmentVariables[n],
			})
		}
		body = req
	}

	return c.request(ctx, token, http.MethodPost, path, "v1", body)
}

// PausePipeline pauses a pipeline. With an empty reason the request body is
// omitted rather than carrying a null pause_cause.
func (c *Client) PausePipeline(ctx context.Context, token, name, reason string) (json.RawMessage, error) {
	path := fmt.Sprintf("pipelines/%s/pause", url.PathEscape(name))

	var body any
	if reason != "" {
		body = map[string]string{"pause_cause": reason}
	}

	return c.request(ctx, token, http.MethodPost, path, "v1", body)
}

// UnpausePipeline resumes a paused pipeline
func (c *Client) UnpausePipeline(ctx context.Context, token, name string) (json.RawMessage, error) {
	path := fmt.Sprintf("pipelines/%s/unpause", url.PathEscape(name))
	return c.request(ctx, token, http.MethodPost, path, "v1", nil)
}
