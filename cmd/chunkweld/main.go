package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "chunkweld",
	Short:   "Reassemble chunked build artifacts committed to source control",
	Version: version,
	Long: `chunkweld rebuilds large build artifacts (Unity WebGL .data and .wasm
payloads) from numbered .part<N> files, verifies the reconstruction and
removes the parts, leaving a deployable tree behind.

It also provides the inverse (split), a discovery report (scan), an
advisory completeness check (check) and a watch mode for local work.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(joinCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}
