// Package cmd defines the command-line interface for tsalign.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("strategy", "s", "", "Alignment strategy: upsample or downsample or embedding")
	rootCmd.PersistentFlags().String("method", string(schema.MeanImpute), "Imputation method for upsample: knn or mean")
	rootCmd.PersistentFlags().Int("n-neighbors", contract.DefaultNeighbors, "Neighbor count for knn imputation")
	rootCmd.PersistentFlags().Int("emb-dim", contract.DefaultEmbDim, "Embedding width for the embedding strategy")
	rootCmd.PersistentFlags().Int("window-size", contract.DefaultWindowSize, "Sliding window size for the embedding strategy")
	rootCmd.PersistentFlags().Int("batch-size", contract.DefaultBatchSize, "Training batch size for the embedding strategy")
	rootCmd.PersistentFlags().Int("epochs", contract.DefaultEpochs, "Training epoch count for the embedding strategy")
	rootCmd.PersistentFlags().String("train-mode", string(schema.TrainModeTrain), "Whether to train a new model or load the checkpoint: train or eval")
	rootCmd.PersistentFlags().String("checkpoint", contract.DefaultCheckpointPath, "Path to the model checkpoint file")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultLimit, "Number of preview rows to display")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
