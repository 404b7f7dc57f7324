package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chase3718/lou-chords/internal/bot"
	"github.com/chase3718/lou-chords/internal/render"
	"github.com/chase3718/lou-chords/internal/session"
)

var chatUser string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Answer chat messages read line by line from stdin",
	Long: `Runs the chat bot against stdin. Lines starting with a slash are
commands (/help, /tune, /reverse); anything else is explained chord by chord.
Settings are remembered per user in the session store.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var tuneCmd = &cobra.Command{
	Use:   "tune [tuning|default]",
	Short: "Set the remembered tuning of a chat user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return chatOnce(cmd, "/tune "+args[0])
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Toggle diagram mirroring for a chat user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return chatOnce(cmd, "/reverse")
	},
}

func init() {
	for _, c := range []*cobra.Command{chatCmd, tuneCmd, reverseCmd} {
		c.Flags().StringVar(&chatUser, "user", "local", "session user id")
	}
}

func newBot() (*bot.Bot, error) {
	store, err := session.OpenFileStore(cfg.Session.Path)
	if err != nil {
		return nil, err
	}
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return bot.New(newExplainer(), store, bot.WithLogger(logger), bot.WithFormat(format)), nil
}

func runChat(cmd *cobra.Command, args []string) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	term := render.NewTerminal(cmd.OutOrStdout())
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		replies, err := b.Handle(cmd.Context(), chatUser, scanner.Text())
		if err != nil {
			return err
		}
		for _, r := range replies {
			if err := deliver(term, r); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func chatOnce(cmd *cobra.Command, text string) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	replies, err := b.Handle(cmd.Context(), chatUser, text)
	if err != nil {
		return err
	}
	term := render.NewTerminal(cmd.OutOrStdout())
	for _, r := range replies {
		if err := deliver(term, r); err != nil {
			return err
		}
	}
	return nil
}

// deliver prints a reply and saves any diagram image to the output
// directory under the chord's name.
func deliver(term *render.Terminal, r bot.Reply) error {
	if r.Lines == nil {
		return term.Message(r.Text)
	}
	if err := term.Diagram(r.Text, r.Lines, r.Minor); err != nil {
		return err
	}
	if r.Image == nil {
		return nil
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.Output.Dir, fileSafe.Replace(r.Symbol)+filepath.Ext(r.Filename))
	if err := os.WriteFile(path, r.Image, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return term.Message("wrote " + path)
}
