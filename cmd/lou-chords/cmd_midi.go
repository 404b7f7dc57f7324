package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chase3718/lou-chords/internal/explain"
	"github.com/chase3718/lou-chords/internal/midiexport"
)

var midiOut string

var midiCmd = &cobra.Command{
	Use:   "midi [symbol...]",
	Short: "Write chord symbols as a Standard MIDI File",
	Long: `Compiles every symbol and writes them as consecutive block chords to a
Standard MIDI File. Tempo, velocity and chord length come from the midi
section of the configuration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMIDI,
}

func init() {
	midiCmd.Flags().StringVarP(&midiOut, "out", "o", "chords.mid", "output file")
}

func runMIDI(cmd *cobra.Command, args []string) error {
	e := newExplainer()
	var items []midiexport.Item
	for _, symbol := range explain.SplitSymbols(strings.Join(args, ",")) {
		c, err := e.Compile(symbol)
		if err != nil {
			return fmt.Errorf("%s is not a valid chord name: %w", symbol, err)
		}
		items = append(items, midiexport.Item{Symbol: symbol, Chord: c})
	}

	exp := midiexport.New(
		midiexport.WithTempo(cfg.MIDI.Tempo),
		midiexport.WithVelocity(uint8(cfg.MIDI.Velocity)),
		midiexport.WithLength(uint32(cfg.MIDI.Length)),
		midiexport.WithLogger(logger),
	)

	f, err := os.Create(midiOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", midiOut, err)
	}
	if err := exp.WriteProgression(f, items); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("midi written", zap.String("path", midiOut), zap.Int("chords", len(items)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d chords to %s\n", len(items), midiOut)
	return nil
}
