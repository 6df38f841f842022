package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Toolset) stageTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_stage_instance",
				mcp.WithDescription("Get a specific stage run within a pipeline run"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("pipeline_counter", mcp.Required(), mcp.Description("Pipeline counter")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
				mcp.WithNumber("stage_counter", mcp.Required(), mcp.Description("Stage counter")),
			),
			Handler: t.handleStageInstance,
		},
		{
			Tool: mcp.NewTool("run_stage",
				mcp.WithDescription("Trigger a manual stage in a pipeline run"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("pipeline_counter", mcp.Required(), mcp.Description("Pipeline counter")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
			),
			Handler: t.handleRunStage,
		},
		{
			Tool: mcp.NewTool("cancel_stage",
				mcp.WithDescription("Cancel a running stage"),
				mcp.WithString("pipeline", mcp.Required(), mcp.Description("Pipeline name")),
				mcp.WithNumber("pipeline_counter", mcp.Required(), mcp.Description("Pipeline counter")),
				mcp.WithString("stage", mcp.Required(), mcp.Description("Stage name")),
				mcp.WithNumber("stage_counter", mcp.Required(), mcp.Description("Stage counter")),
			),
			Handler: t.handleCancelStage,
		},
	}
}

// stageRef extracts the pipeline/counter/stage argument triple shared by the
// stage tools. stageCounter is only read when withStageCounter is set.
func stageRef(req mcp.CallToolRequest, withStageCounter bool) (pipeline string, pipelineCounter int, stage string, stageCounter int, err error) {
	if pipeline, err = req.RequireString("pipeline"); err != nil {
		return
	}
	if pipelineCounter, err = req.RequireInt("pipeline_counter"); err != nil {
		return
	}
	if stage, err = req.RequireString("stage"); err != nil {
		return
	}
	if withStageCounter {
		stageCounter, err = req.RequireInt("stage_counter")
	}
	return
}

func (t *Toolset) handleStageInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, pipelineCounter, stage, stageCounter, err := stageRef(req, true)
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.StageInstance(ctx, t.token(ctx), pipeline, pipelineCounter, stage, stageCounter)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handleRunStage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, pipelineCounter, stage, _, err := stageRef(req, false)
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.RunStage(ctx, t.token(ctx), pipeline, pipelineCounter, stage)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}

func (t *Toolset) handleCancelStage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pipeline, pipelineCounter, stage, stageCounter, err := stageRef(req, true)
	if err != nil {
		return errorResult(err), nil
	}

	data, err := t.client.CancelStage(ctx, t.token(ctx), pipeline, pipelineCounter, stage, stageCounter)
	if err != nil {
		return errorResult(err), nil
	}
	return rawResult(data), nil
}
