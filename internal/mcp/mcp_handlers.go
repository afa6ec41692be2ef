package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/keymemory/KETIPreDataIntegration/core"
	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	trainer contract.Trainer
	mgr     contract.RunManager
}

func (h *toolHandler) handleAlignSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Series1Path = request.GetString("series1", "")
	cfg.Series2Path = request.GetString("series2", "")
	cfg.Strategy = schema.Strategy(request.GetString("strategy", ""))
	if m := request.GetString("method", ""); m != "" {
		cfg.ImputeMethod = schema.ImputeMethod(m)
	}
	if n := request.GetInt("n_neighbors", 0); n > 0 {
		cfg.NNeighbors = n
	}
	if d := request.GetInt("emb_dim", 0); d > 0 {
		cfg.EmbDim = d
	}
	if w := request.GetInt("window_size", 0); w > 0 {
		cfg.WindowSize = w
	}
	if b := request.GetInt("batch_size", 0); b > 0 {
		cfg.BatchSize = b
	}
	if e := request.GetInt("epochs", 0); e > 0 {
		cfg.Epochs = e
	}
	if m := request.GetString("mode", ""); m != "" {
		cfg.TrainMode = schema.TrainMode(m)
	}

	result, rec, err := core.GetAlignmentResult(ctx, cfg, h.trainer, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("alignment failed: %v", err)), nil
	}

	summary := struct {
		Strategy    schema.Strategy  `json:"strategy"`
		Record      schema.RunRecord `json:"record"`
		LossHistory []float64        `json:"loss_history,omitempty"`
		Columns     []string         `json:"columns"`
		Rows        int              `json:"rows"`
	}{
		Strategy:    result.Strategy,
		Record:      rec,
		LossHistory: result.LossHistory,
		Columns:     result.Aligned.Columns,
		Rows:        result.Aligned.Rows(),
	}
	jsonData, _ := json.MarshalIndent(summary, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.mgr.GetRunStore().GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status lookup failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
