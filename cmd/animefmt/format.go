package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/animefmt/internal/presentation/tui"
	"github.com/aretw0/animefmt/pkg/format"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotStructured = errors.New("input is not a structured anime block")

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Render a structured block as a channel card",
	Long: `Reads a structured anime block from file (or stdin) and prints the card markup.
With --preview the card is rendered for the terminal instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		renderer, err := cfg.Renderer()
		if err != nil {
			return err
		}

		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		record, ok := format.Parse(string(input))
		if !ok {
			return errNotStructured
		}
		card := renderer.Render(record, "")

		out := cmd.OutOrStdout()
		if preview, _ := cmd.Flags().GetBool("preview"); preview {
			style, _ := cmd.Flags().GetString("style")
			width := 0
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				width, _, _ = term.GetSize(int(f.Fd()))
			}
			rendered, err := tui.PreviewCard(tui.NewRenderer(style), card.Text, width)
			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		}
		_, err = fmt.Fprintln(out, card.Text)
		return err
	},
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().Bool("preview", false, "Render the card for the terminal")
	formatCmd.Flags().String("style", "", "Glamour style for --preview (dark, light, notty); detected when empty")
}
