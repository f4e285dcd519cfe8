package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shelfmerge/internal/application"
	"shelfmerge/internal/application/commands"
)

var collectScope string

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Pair up the records of both exports and store the result",
	Long: `Read the Goodreads and StoryGraph exports, link records with the same ISBN,
then ask about records whose titles overlap. The merged and unresolved
records are written to the collection store.

Examples:
  shelfmerge collect
  shelfmerge collect --scope goodreads
  shelfmerge collect --goodreads gr.csv --storygraph sg.csv --backend sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCollect(cmd.Context(), application.Scope(collectScope))
	},
}

func runCollect(ctx context.Context, scope application.Scope) error {
	s, err := GetStore()
	if err != nil {
		return err
	}

	collect := commands.NewCollectCommand(feeds(), confirmer(), s, scope)
	result, err := collect.Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	fmt.Printf("Stored in %s\n", s.Location())
	return nil
}

func init() {
	collectCmd.Flags().StringVar(&collectScope, "scope", string(application.ScopeAll), "catalogs to collect: all, goodreads or storygraph")
	rootCmd.AddCommand(collectCmd)
}
