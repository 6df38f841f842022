package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Toolset) jobTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_job_history",
				mcp.WithDescription("Get the run history of a job"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
				mcp.WithString("job", mcp.Required(), mcp.Description("Job name")),
			),
			Handler: t.handleJobHistory,
		},
		{
			Tool: mcp.NewTool("get_job_instance",
				mcp.WithDescription("Get a specific job run within a stage run"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("pipeline_counter", mcp.Required(), mcp.Description("Pipeline counter")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
				mcp.WithNumber("stage_counter", mcp.Required(), mcp.Description("Stage counter")),
				mcp.WithString("job", mcp.Required(), mcp.Description("Job name")),
			),
			Handler: t.handleJobInstance,
		},
		{
			Tool: mcp.NewTool("get_console_log",
				mcp.WithDescription("Fetch the console output of a job run as raw text"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("pipeline_counter", mcp.Required(), mcp.Description("Pipeline counter")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
				mcp.WithNumber("stage_counter", mcp.Required(), mcp.Description("Stage counter")),
				mcp.WithString("job", mcp.Required(), mcp.Description("Job name")),
			),
			Handler: t.handleConsoleLog,
		},
		{
			Tool: mcp.NewTool("get_artifact",
				mcp.WithDescription("Fetch a job artifact as raw text"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("pipeline_counter", mcp.Required(), mcp.Description("Pipeline counter")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
				mcp.WithNumber("stage_counter", mcp.Required(), mcp.Description("Stage counter")),
				mcp.WithString("job", mcp.Required(), mcp.Description("Job name")),
				mcp.WithString("path", mcp.Required(), mcp.Description("Artifact path relative to the job, e.g. test-results/junit.xml")),
			),
			Handler: t.handleArtifact,
		},
	}
}

// jobRef extracts the full job run coordinates shared by the files tools
func jobRef(req mcp.CallToolRequest) (pipeline string, pipelineCounter int, stage string, stageCounter int, job string, err error) {
	if pipeline, err = req.RequireString("pipeline"); err != nil {
		return
	}
	if pipelineCounter, err = req.RequireInt("pipeline_counter"); err != nil {
		return
	}
	if stage, err = req.RequireString("stage"); err != nil {
		return
	}
	if stageCounter, err = req.RequireInt("stage_counter"); err != nil {
		return
	}
	job, err = req.RequireString("job")
	return
}

func (t *Toolset) handleJobHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, err := req.RequireString("pipeline")
	if err != nil {
		return errorResult(err), nil
	}
	stage, err := req.RequireString("stage")
	if err != nil {
		return errorResult(err), nil
	}
	job, err := req.RequireString("job")
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.JobHistory(ctx, t.token(ctx), pipeline, stage, job)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handleJobInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, pipelineCounter, stage, stageCounter, job, err := jobRef(req)
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.JobInstance(ctx, t.token(ctx), pipeline, pipelineCounter, stage, stageCounter, job)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handleConsoleLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, pipelineCounter, stage, stageCounter, job, err := jobRef(req)
	if err != nil {
		return errorResult(err), nil
	}

	consoleLog, err := t.client.ConsoleLog(ctx, t.token(ctx), pipeline, pipelineCounter, stage, stageCounter, job)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(consoleLog), nil
}

func (t *Toolset) handleArtifact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, pipelineCounter, stage, stageCounter, job, err := jobRef(req)
	if err != nil {
		return errorResult(err), nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return errorResult(err), nil
	}

	content, err := t.client.Artifact(ctx, t.token(ctx), pipeline, pipelineCounter, stage, stageCounter, job, path)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(content), nil
}
