package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linggen/internal/aptitude"
	"linggen/internal/config"
	"linggen/internal/formation"
	"linggen/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "linggen",
	Short: "linggen - spirit root aptitude test and emblem renderer",
	Long: `linggen runs the sect's spirit root aptitude test and draws the
resulting emblem for a disciple's identity card.

Run without arguments to start the interactive test.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// The interactive test owns the terminal; keep logs off it.
		if isInteractive(cmd) && !verbose {
			logger = zap.NewNop()
			logging.Install(nil, nil)
			return checkTables()
		}

		logger, err = logging.Build(cfg.Logging.ForLogging(), verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Install(logger, cfg.Logging.Categories)
		logging.Get(logging.CategoryBoot).Debug("config loaded", zap.String("path", configPath))
		return checkTables()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runTest,
}

// checkTables verifies the built-in descriptor table and palette. A broken
// table is fatal; palette gaps only degrade the emblem.
func checkTables() error {
	if err := aptitude.Validate(); err != nil {
		return fmt.Errorf("aptitude table is inconsistent: %w", err)
	}
	if missing := formation.ValidatePalette(); len(missing) > 0 {
		logging.Get(logging.CategoryBoot).Warn("palette incomplete", zap.Strings("missing", missing))
	}
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "test"
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Config file")

	rootCmd.Flags().StringVar(&testCardPath, "card", "", "Card file to load and update")
	rootCmd.Flags().StringVar(&testName, "name", "", "Disciple name for a new card")

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(loreCmd)
	rootCmd.AddCommand(serialCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
