// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
)

// NewMCPServer initializes and configures the tsalign MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, tr contract.Trainer, mgr contract.RunManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Time Series Alignment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		trainer: tr,
		mgr:     mgr,
	}

	// --- 1. Tool: align_series ---
	s.AddTool(mcp.NewTool("align_series",
		mcp.WithDescription("Align two time series sampled at different rates onto a common time index."),
		mcp.WithString("series1", mcp.Description("Path to the first series file (.csv or .parquet)."), mcp.Required()),
		mcp.WithString("series2", mcp.Description("Path to the second series file (.csv or .parquet)."), mcp.Required()),
		mcp.WithString("strategy", mcp.Description("Alignment strategy."), mcp.Required(), mcp.Enum("upsample", "downsample", "embedding")),
		mcp.WithString("method", mcp.Description("Imputation method for the upsample strategy (knn or mean). Defaults to 'mean'."), mcp.Enum("knn", "mean")),
		mcp.WithNumber("n_neighbors", mcp.Description("Neighbor count for knn imputation.")),
		mcp.WithNumber("emb_dim", mcp.Description("Embedding width for the embedding strategy.")),
		mcp.WithNumber("window_size", mcp.Description("Window size for the embedding strategy.")),
		mcp.WithNumber("batch_size", mcp.Description("Training batch size for the embedding strategy.")),
		mcp.WithNumber("epochs", mcp.Description("Training epoch count for the embedding strategy.")),
		mcp.WithString("mode", mcp.Description("Whether to train a new model or load the checkpoint (train or eval)."), mcp.Enum("train", "eval")),
	), h.handleAlignSeries)

	// --- 2. Tool: get_run_status ---
	s.AddTool(mcp.NewTool("get_run_status",
		mcp.WithDescription("Report how many alignment runs are recorded and when the last one started."),
	), h.handleGetRunStatus)

	return s
}

// StartMCPServer starts the tsalign MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, tr contract.Trainer, mgr contract.RunManager) error {
	s := NewMCPServer(baseCfg, tr, mgr)
	return server.ServeStdio(s)
}
