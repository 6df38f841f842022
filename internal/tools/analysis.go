package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Toolset) analysisTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("analyze_job_failures",
				mcp.WithDescription("Best-effort failure analysis of a job run: locates JUnit test reports and scans the console log for errors. Partial results are expected; missing data sources are reported in the summary, not as errors."),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("pipeline_counter", mcp.Required(), mcp.Description("Pipeline counter")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
				mcp.WithNumber("stage_counter", mcp.Required(), mcp.Description("Stage counter")),
				mcp.WithString("job", mcp.Required(), mcp.Description("Job name")),
			),
			Handler: t.handleAnalyzeFailures,
		},
	}
}

func (t *Toolset) handleAnalyzeFailures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, pipelineCounter, stage, stageCounter, job, err := jobRef(req)
	if err != nil {
		return errorResult(err), nil
	}

	result := t.analyzer.AnalyzeFailures(ctx, t.token(ctx), pipeline, pipelineCounter, stage, stageCounter, job)
	return jsonResult(result), nil
}
