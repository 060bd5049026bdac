// ABOUTME: List command for displaying notes in the terminal.
// ABOUTME: Supports filtering by category, tag, and search query.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/mariposa/internal/store"
	"github.com/harper/mariposa/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List all notes, optionally filtered by category, tag, or search query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryFlag, _ := cmd.Flags().GetString("category")
		tagFlag, _ := cmd.Flags().GetString("tag")
		searchFlag, _ := cmd.Flags().GetString("search")

		notes, err := noteStore.ListNotes(store.NoteFilter{
			Category: categoryFlag,
			Tag:      tagFlag,
			Search:   searchFlag,
		})
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		for _, note := range notes {
			fmt.Print(ui.FormatNoteListItem(note))
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := noteStore.ListCategoryMeta()
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		for _, c := range categories {
			fmt.Print(ui.FormatCategoryListItem(c))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("category", "c", "", "filter by category")
	listCmd.Flags().StringP("tag", "t", "", "filter by tag")
	listCmd.Flags().StringP("search", "s", "", "search query")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(categoriesCmd)
}
