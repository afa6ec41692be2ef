package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Loss label constants.
const (
	ConvergedValue = "Converged" // Final loss well below start
	PlateauValue   = "Plateau"   // Loss barely moved
	DivergingValue = "Diverging" // Final loss above start
	UntrainedValue = "Untrained" // No loss history (eval mode or non-embedding)
)

// Color variables for console output.
var (
	ConvergedColor = color.New(color.FgGreen, color.Bold)
	PlateauColor   = color.New(color.FgYellow)
	DivergingColor = color.New(color.FgRed, color.Bold)
	UntrainedColor = color.New(color.FgCyan)
)

// GetPlainLossLabel summarizes a loss history as a plain text label.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLossLabel(history []float64) string {
	if len(history) < 2 {
		return UntrainedValue
	}
	first, last := history[0], history[len(history)-1]
	switch {
	case last > first:
		return DivergingValue
	case first == 0 || (first-last)/first < 0.05:
		return PlateauValue
	default:
		return ConvergedValue
	}
}

// GetColorLossLabel returns a colored label for console output (table).
// It uses GetPlainLossLabel to determine the string, then applies the
// appropriate color.
func GetColorLossLabel(history []float64) string {
	text := GetPlainLossLabel(history)

	switch text {
	case ConvergedValue:
		return ConvergedColor.Sprint(text)
	case PlateauValue:
		return PlateauColor.Sprint(text)
	case DivergingValue:
		return DivergingColor.Sprint(text)
	default: // "Untrained"
		return UntrainedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tsalign_runs.db"
	}
	return filepath.Join(homeDir, ".tsalign_runs.db")
}
