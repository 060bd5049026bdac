// ABOUTME: Show command rendering a single note in the terminal.
// ABOUTME: Markdown content is rendered with glamour.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/mariposa/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := noteStore.GetNote(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		fmt.Print(ui.FormatNoteHeader(note))

		rendered, err := ui.FormatNoteContent(note.Content)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
