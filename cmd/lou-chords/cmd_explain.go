package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chase3718/lou-chords/internal/fretboard"
	"github.com/chase3718/lou-chords/internal/render"
)

var saveImages bool

var explainCmd = &cobra.Command{
	Use:   "explain [symbol...]",
	Short: "Print the notes and fretboard diagram of chord symbols",
	Long: `Compiles every symbol and prints its spelled notes and a fretboard
diagram. Arguments are joined with commas, so "explain Am, Dm, E" and
"explain Am Dm E" are the same request.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

var positionsCmd = &cobra.Command{
	Use:   "positions [symbol]",
	Short: "List every string and fret sounding each chord tone",
	Args:  cobra.ExactArgs(1),
	RunE:  runPositions,
}

var exactPositions bool

func init() {
	explainCmd.Flags().BoolVar(&saveImages, "images", false, "also write a diagram image per chord to the output directory")
	positionsCmd.Flags().BoolVar(&exactPositions, "exact", true, "match octave as well as pitch class")
}

func runExplain(cmd *cobra.Command, args []string) error {
	t, err := currentTuning()
	if err != nil {
		return err
	}
	term := render.NewTerminal(cmd.OutOrStdout())
	results := newExplainer().Batch(cmd.Context(), strings.Join(args, ","), t, reverse)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			if err := term.Error(res.Symbol + " is not a valid chord name"); err != nil {
				return err
			}
			logger.Debug("explain failed", zap.String("symbol", res.Symbol), zap.Error(res.Err))
			continue
		}
		lines := res.Diagram.Lines()
		if err := term.Diagram(res.Diagram.Title, lines, res.Diagram.Chord.Minor()); err != nil {
			return err
		}
		if saveImages {
			path, err := writeImage(res.Symbol, lines)
			if err != nil {
				return err
			}
			if err := term.Message("wrote " + path); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d chords could not be explained", failed, len(results))
	}
	return nil
}

var fileSafe = strings.NewReplacer("/", "_over_", "#", "sharp", " ", "", "\\", "_")

func writeImage(symbol string, lines []string) (string, error) {
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := render.Encode(&buf, render.NewTextImage(), lines, format); err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.Output.Dir, fileSafe.Replace(symbol)+"."+format.Ext())
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

func runPositions(cmd *cobra.Command, args []string) error {
	t, err := currentTuning()
	if err != nil {
		return err
	}
	e := newExplainer()
	c, err := e.Compile(args[0])
	if err != nil {
		return err
	}
	fb := fretboard.New(t, fretboard.WithFrets(cfg.Fretboard.Frets), fretboard.WithLogger(logger))
	app := fb.FindChord(c, fretboard.Search{Exact: exactPositions, Capo: cfg.Fretboard.Capo})

	degrees := make([]int, 0, len(app))
	for d := range app {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", args[0], c)
	for _, d := range degrees {
		p, _ := c.Tone(d)
		cells := make([]string, 0, len(app[d]))
		for _, pos := range app[d] {
			cells = append(cells, fmt.Sprintf("%d/%d", pos.String, pos.Fret))
		}
		fmt.Fprintf(out, "%3s %-4s %s\n", fretboard.Label(d), p, strings.Join(cells, " "))
	}
	return nil
}
