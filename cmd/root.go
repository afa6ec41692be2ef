package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/internal/runstore"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// alignTrainer is the trainer used by the embedding strategy.
var alignTrainer contract.Trainer

// runManager is the global run tracking manager instance.
var runManager contract.RunManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "tsalign",
	Short:              "Align two time series sampled at different rates onto a common index.",
	Long:               `tsalign joins two irregularly sampled time series over their shared time range and aligns them by upsampling, downsampling, or learned window embeddings.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".tsalign") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("TSALIGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper. Strategy deliberately has no default: it is a
	// required choice.
	viper.SetDefault("method", string(schema.MeanImpute))
	viper.SetDefault("emb-dim", contract.DefaultEmbDim)
	viper.SetDefault("window-size", contract.DefaultWindowSize)
	viper.SetDefault("batch-size", contract.DefaultBatchSize)
	viper.SetDefault("epochs", contract.DefaultEpochs)
	viper.SetDefault("train-mode", string(schema.TrainModeTrain))
	viper.SetDefault("checkpoint", contract.DefaultCheckpointPath)
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("limit", contract.DefaultLimit)
	viper.SetDefault("run-backend", string(schema.SQLiteBackend))
	viper.SetDefault("run-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 2 {
		input.Series1PathStr = args[0]
		input.Series2PathStr = args[1]
	}

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Initialize persistence layer with validated config.
	if err := runstore.InitStores(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	return nil
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	defer runstore.CloseStores()
	return rootCmd.Execute()
}

// SetTrainer sets the global trainer.
func SetTrainer(tr contract.Trainer) {
	alignTrainer = tr
}

// SetRunManager sets the global run tracking manager.
func SetRunManager(mgr contract.RunManager) {
	runManager = mgr
}
