package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/internal/mcp"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// mcpSetup loads the ambient configuration for the MCP server. The MCP
// surface supplies series paths and strategy per request, so the full
// sharedSetup (which requires positional arguments) does not apply.
func mcpSetup() error {
	if err := runsSetup(); err != nil {
		return err
	}

	// Baseline parameter values for requests that omit them.
	cfg.ImputeMethod = schema.MeanImpute
	cfg.NNeighbors = contract.DefaultNeighbors
	cfg.EmbDim = contract.DefaultEmbDim
	cfg.WindowSize = contract.DefaultWindowSize
	cfg.BatchSize = contract.DefaultBatchSize
	cfg.Epochs = contract.DefaultEpochs
	cfg.TrainMode = schema.TrainModeTrain
	cfg.CheckpointPath = viper.GetString("checkpoint")
	if cfg.CheckpointPath == "" {
		cfg.CheckpointPath = contract.DefaultCheckpointPath
	}
	cfg.Precision = contract.DefaultPrecision
	cfg.Limit = contract.DefaultLimit
	cfg.Output = schema.TextOut

	return nil
}

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the tsalign MCP server",
	Long:  `Launch an MCP server that allows AI agents to align time series via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return mcpSetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, alignTrainer, runManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
