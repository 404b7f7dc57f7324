package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chase3718/lou-chords/internal/actuator"
	"github.com/chase3718/lou-chords/internal/fretboard"
)

var (
	strumDevice string
	strumBaud   int
	strumDryRun bool
)

var strumCmd = &cobra.Command{
	Use:   "strum [symbol]",
	Short: "Send a chord to the strumming guitar controller",
	Long: `Picks one fret per string for the chord inside the configured window
and sends the resulting frame over the serial port. With --dry-run the frame
is printed as hex instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runStrum,
}

func init() {
	strumCmd.Flags().StringVar(&strumDevice, "device", "", "serial device (default from config)")
	strumCmd.Flags().IntVar(&strumBaud, "baud", 0, "baud rate (default from config)")
	strumCmd.Flags().BoolVar(&strumDryRun, "dry-run", false, "print the frame instead of sending it")
}

func runStrum(cmd *cobra.Command, args []string) error {
	t, err := currentTuning()
	if err != nil {
		return err
	}
	c, err := newExplainer().Compile(args[0])
	if err != nil {
		return err
	}
	fb := fretboard.New(t, fretboard.WithFrets(cfg.Fretboard.Frets))
	voicer := actuator.NewVoicer(logger.Named("actuator"))
	out := cmd.OutOrStdout()

	if strumDryRun {
		f, err := voicer.Voicing(fb, c, cfg.Window(), 0)
		if err != nil {
			return err
		}
		data, err := f.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: frets %v strum %08b\n% x\n", args[0], f.Fret, f.StrumMask, data)
		return nil
	}

	device, baud := cfg.Serial.Device, cfg.Serial.Baud
	if strumDevice != "" {
		device = strumDevice
	}
	if strumBaud > 0 {
		baud = strumBaud
	}
	port, err := actuator.OpenSerial(device, baud, logger.Named("serial"))
	if err != nil {
		return err
	}
	defer port.Close()

	f, err := voicer.Voicing(fb, c, cfg.Window(), port.NextSeq())
	if err != nil {
		return err
	}
	if err := port.Send(f); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s sent to %s\n", args[0], device)
	return nil
}
