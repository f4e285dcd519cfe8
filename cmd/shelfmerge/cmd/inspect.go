package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shelfmerge/internal/adapters/prompt"
	"shelfmerge/internal/application/commands"
	"shelfmerge/internal/domain"
)

var (
	showJSON   bool
	searchISBN bool
)

var showCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "Show both catalog sides of a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		ev := evaluator()
		b, err := commands.NewInspectCommand(s, ev).Find(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		}

		var differ []domain.Field
		if b.State.IsSolid() {
			if differ, err = ev.Fields(b); err != nil {
				return err
			}
		}
		fmt.Printf("%s\n", b.ID)
		fmt.Print(prompt.RenderBook(b, differ))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored records by title or ISBN",
	Long: `Search merged and unresolved records whose title contains the query.
With --isbn the query is an ISBN matched against either catalog side.

Examples:
  shelfmerge search dune
  shelfmerge search "left hand"
  shelfmerge search --isbn 9780441172719`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		inspect := commands.NewInspectCommand(s, evaluator())
		var results []*domain.Book
		if searchISBN {
			results, err = inspect.FindByISBN(cmd.Context(), args[0])
		} else {
			results, err = inspect.Search(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		rows := make([][]string, 0, len(results))
		for _, b := range results {
			rows = append(rows, []string{b.ID, b.DisplayTitle(), b.State.String()})
		}
		fmt.Println(renderTable([]string{"ID", "Title", "State"}, rows, nil))
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the stored record as JSON")
	rootCmd.AddCommand(showCmd)
	searchCmd.Flags().BoolVar(&searchISBN, "isbn", false, "match the query as an ISBN")
	rootCmd.AddCommand(searchCmd)
}
