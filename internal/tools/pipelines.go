package tools

import (
	"context"

	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Toolset) pipelineTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("list_pipelines",
				mcp.WithDescription("List all pipelines grouped by pipeline group, with lock and pause state"),
			),
			Handler: t.handleListPipelines,
		},
		{
			Tool: mcp.NewTool("get_pipeline_status",
				mcp.WithDescription("Get the pause, lock and schedulable state of a pipeline"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
			),
			Handler: t.handlePipelineStatus,
		},
		{
			Tool: mcp.NewTool("get_pipeline_history",
				mcp.WithDescription("Get the run history of a pipeline"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("page_size", mcp.Description("Number of runs per page (default server-side)")),
				mcp.WithString("after", mcp.Description("Cursor: return runs after this counter")),
			),
			Handler: t.handlePipelineHistory,
		},
		{
			Tool: mcp.NewTool("get_pipeline_instance",
				mcp.WithDescription("Get a specific run of a pipeline by counter"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("counter", mcp.Required(), mcp.Description("Pipeline counter")),
			),
			Handler: t.handlePipelineInstance,
		},
		{
			Tool: mcp.NewTool("trigger_pipeline",
				mcp.WithDescription("Schedule a new run of a pipeline"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithObject("environment_variables",
					mcp.Description("Environment variables for the run, as a name to value object")),
				mcp.WithBoolean("update_materials_before_scheduling",
					mcp.Description("Force a material update before scheduling")),
			),
			Handler: t.handleTriggerPipeline,
		},
		{
			Tool: mcp.NewTool("pause_pipeline",
				mcp.WithDescription("Pause scheduling of a pipeline"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithString("reason", mcp.Description("Reason for pausing")),
			),
			Handler: t.handlePausePipeline,
		},
		{
			Tool: mcp.NewTool("unpause_pipeline",
				mcp.WithDescription("Resume scheduling of a paused pipeline"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
			),
			Handler: t.handleUnpausePipeline,
		},
	}
}

func (t *Toolset) handleListPipelines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipelines, err := t.client.ListPipelines(ctx, t.token(ctx))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(pipelines), nil
}

func (t *Toolset) handlePipelineStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, err := req.RequireString("pipeline")
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.PipelineStatus(ctx, t.token(ctx), pipeline)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handlePipelineHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, err := req.RequireString("pipeline")
	if err != nil {
		return errorResult(err), nil
	}
	pageSize := req.GetInt("page_size", 0)
	after := req.GetString("after", "")

	data, err := t.client.PipelineHistory(ctx, t.token(ctx), pipeline, pageSize, after)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handlePipelineInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, err := req.RequireString("pipeline")
	if err != nil {
		return errorResult(err), nil
	}
	counter, err := req.RequireInt("counter")
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.PipelineInstance(ctx, t.token(ctx), pipeline, counter)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handleTriggerPipeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, err := req.RequireString("pipeline")
	if err != nil {
		return errorResult(err), nil
	}

	opts := gocd.TriggerOptions{}

	if raw, ok := req.GetArguments()["environment_variables"].(map[string]any); ok && len(raw) > 0 {
		opts.EnvironmentVariables = make(map[string]string, len(raw))
		for name, value := range raw {
			if s, ok := value.(string); ok {
				opts.EnvironmentVariables[name] = s
			}
		}
	}
	if raw, ok := req.GetArguments()["update_materials_before_scheduling"].(bool); ok {
		opts.UpdateMaterials = &raw
	}

	data, err := t.client.TriggerPipeline(ctx, t.token(ctx), pipeline, opts)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handlePausePipeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, err := req.RequireString("pipeline")
	if err != nil {
		return errorResult(err), nil
	}
	reason := req.GetString("reason", "")

	data, err := t.client.PausePipeline(ctx, t.token(ctx), pipeline, reason)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handleUnpausePipeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, err := req.RequireString("pipeline")
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.UnpausePipeline(ctx, t.token(ctx), pipeline)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}
