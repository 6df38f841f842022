package gocd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Pipeline is the canonical pipeline produced by the dashboard normalizer.
// Group is denormalized from the owning pipeline group at construction time.
type Pipeline struct {
	Name      string     `json:"name"`
	Group     string     `json:"group"`
	Locked    bool       `json:"locked"`
	PauseInfo *PauseInfo `json:"pauseInfo"`
}

// PauseInfo is nil only when the upstream representation carries no pause
// metadata at all (bare name list). "Not paused" is always represented with
// Paused=false and a non-nil PauseInfo.
type PauseInfo struct {
	Paused      bool    `json:"paused"`
	PausedBy    *string `json:"pausedBy"`
	PauseReason *string `json:"pauseReason"`
}

// dashboardResponse covers both envelope variants the dashboard endpoint
// returns: groups nested under _embedded, or as a top-level fallback field.
type dashboardResponse struct {
	Embedded struct {
		PipelineGroups json.RawMessage `json:"pipeline_groups"`
	} `json:"_embedded"`
	PipelineGroups json.RawMessage `json:"pipeline_groups"`
}

// dashboardGroup covers both per-group variants: pipelines under the
// embedded-collection key, or directly on the group.
type dashboardGroup struct {
	Name     string `json:"name"`
	Embedded struct {
		Pipelines json.RawMessage `json:"pipelines"`
	} `json:"_embedded"`
	Pipelines json.RawMessage `json:"pipelines"`
}

// pipelineEntry is the object form of a per-pipeline entry
type pipelineEntry struct {
	Name      string `json:"name"`
	Locked    bool   `json:"locked"`
	PauseInfo *struct {
		Paused      bool    `json:"paused"`
		PausedBy    *string `json:"paused_by"`
		PauseReason *string `json:"pause_reason"`
	} `json:"pause_info"`
}

// ListPipelines fetches the dashboard and reconciles its shape variants into
// one canonical pipeline list. Groups are processed in their given order and
// pipelines preserve source order; the result is the flat concatenation.
func (c *Client) ListPipelines(ctx context.Context, token string) ([]Pipeline, error) {
	data, err := c.request(ctx, token, http.MethodGet, "dashboard", "v4", nil)
	if err != nil {
		return nil, err
	}

	var resp dashboardResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard response: %w", err)
	}

	groupsRaw := resp.Embedded.PipelineGroups
	if groupsRaw == nil {
		groupsRaw = resp.PipelineGroups
	}
	if groupsRaw == nil {
		return nil, &ValidationError{Message: "missing pipeline_groups field"}
	}

	var groups []dashboardGroup
	if err := json.Unmarshal(groupsRaw, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline groups: %w", err)
	}

	pipelines := []Pipeline{}
	for _, group := range groups {
		normalized, err := normalizeGroup(group)
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, normalized...)
	}

	return pipelines, nil
}

// normalizeGroup expands one pipeline group into canonical pipelines.
//
// The entry shape (bare name string vs. object) is sniffed once per group
// from the first element only; groups are assumed homogeneous. A group that
// mixed shapes would misparse its later entries — this mirrors the observed
// upstream behavior and is intentionally not generalized.
func normalizeGroup(group dashboardGroup) ([]Pipeline, error) {
	entriesRaw := group.Embedded.Pipelines
	if entriesRaw == nil {
		entriesRaw = group.Pipelines
	}
	if entriesRaw == nil {
		// A group without pipelines contributes nothing; not an error
		return nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(entriesRaw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode pipelines for group %q: %w", group.Name, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	if isJSONString(entries[0]) {
		var names []string
		if err := json.Unmarshal(entriesRaw, &names); err != nil {
			return nil, fmt.Errorf("failed to decode pipeline names for group %q: %w", group.Name, err)
		}

		pipelines := make([]Pipeline, 0, len(names))
		for _, name := range names {
			pipelines = append(pipelines, Pipeline{
				Name:      name,
				Group:     group.Name,
				Locked:    false,
				PauseInfo: nil,
			})
		}
		return pipelines, nil
	}

	var objects []pipelineEntry
	if err := json.Unmarshal(entriesRaw, &objects); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline entries for group %q: %w", group.Name, err)
	}

	pipelines := make([]Pipeline, 0, len(objects))
	for _, entry := range objects {
		p := Pipeline{
			Name:   entry.Name,
			Group:  group.Name,
			Locked: entry.Locked,
		}
		if entry.PauseInfo != nil {
			// pause_info present: materialize all three fields even when
			// some are null upstream
			p.PauseInfo = &PauseInfo{
				Paused:      entry.PauseInfo.Paused,
				PausedBy:    entry.PauseInfo.PausedBy,
				PauseReason: entry.PauseInfo.PauseReason,
			}
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, nil
}

// isJSONString reports whether the raw value is a JSON string literal
func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}
