package gocd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// consoleLogPath is where the GoCD agent writes the job console output
const consoleLogPath = "cruise-output/console.log"

// jobFilesPath builds the unversioned files path for a job run
func jobFilesPath(pipeline string, pipelineCounter int, stage string, stageCounter int, job string) string {
	return fmt.Sprintf("files/%s/%d/%s/%d/%s",
		url.PathEscape(pipeline), pipelineCounter, url.PathEscape(stage), stageCounter, url.PathEscape(job))
}

// escapeArtifactPath percent-encodes an artifact path segment by segment,
// preserving the directory separators.
func escapeArtifactPath(artifactPath string) string {
	segments := strings.Split(artifactPath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// ConsoleLog fetches the console output of a job run as raw text
func (c *Client) ConsoleLog(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int, job string) (string, error) {
	path := jobFilesPath(pipeline, pipelineCounter, stage, stageCounter, job) + "/" + consoleLogPath
	return c.requestText(ctx, token, path)
}

// Artifact fetches a single job artifact as raw text
func (c *Client) Artifact(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int, job, artifactPath string) (string, error) {
	path := jobFilesPath(pipeline, pipelineCounter, stage, stageCounter, job) + "/" + escapeArtifactPath(artifactPath)
	return c.requestText(ctx, token, path)
}
