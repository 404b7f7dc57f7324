package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chase3718/lou-chords/internal/config"
	"github.com/chase3718/lou-chords/internal/explain"
	"github.com/chase3718/lou-chords/internal/tuning"
)

var (
	// Global flags
	debug      bool
	configPath string
	tuningName string
	reverse    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "lou-chords",
	Short: "Chord symbol compiler and fretboard mapper",
	Long: `lou-chords turns chord symbols such as Am7, Dsus4/B or C7#9 into the
notes they name and shows where those notes sit on a fretboard.

Any tuning can be given as a string of note letters, highest string first:
EBGDAE is standard guitar, EADG a four-string bass.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = initLogger(debug)
		if err != nil {
			return err
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("tuning") {
			cfg.Tuning = tuningName
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger.Debug("configuration loaded", zap.String("path", configPath), zap.String("tuning", cfg.Tuning))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "lou-chords.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&tuningName, "tuning", tuning.DefaultName, "tuning, highest string first")
	rootCmd.PersistentFlags().BoolVar(&reverse, "reverse", false, "mirror diagrams")

	rootCmd.AddCommand(explainCmd, positionsCmd, chatCmd, tuneCmd, reverseCmd, midiCmd, strumCmd)
}

// initLogger builds the process logger. Debug mode logs at debug level and
// adds caller information.
func initLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableCaller = !debug
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func newExplainer() *explain.Explainer {
	return explain.New(
		explain.WithLogger(logger),
		explain.WithFrets(cfg.Fretboard.Frets),
		explain.WithWindow(cfg.Window()),
		explain.WithWorkers(cfg.Batch.Workers),
	)
}

// currentTuning is the configured tuning, or nil for standard guitar.
func currentTuning() (*tuning.Tuning, error) {
	t, err := cfg.TuningValue()
	if err != nil {
		return nil, err
	}
	if t.IsDefault() {
		return nil, nil
	}
	return t, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
