package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shelfmerge/internal/adapters/editor"
	"shelfmerge/internal/application"
	"shelfmerge/internal/config"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the stored collection in $EDITOR",
	Long: `Open the collection file in $VISUAL or $EDITOR for manual fixes. The file
is read back afterwards and rejected edits are reported.

Only the json and yaml backends can be edited this way.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Backend == config.BackendSQLite {
			return fmt.Errorf("the sqlite backend cannot be edited as a file: %w", application.ErrInvalidInput)
		}
		if _, err := os.Stat(cfg.Store.Path); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", cfg.Store.Path, application.ErrNoCollection)
		}

		if err := editor.NewOpener().OpenFile(cfg.Store.Path); err != nil {
			return err
		}

		s, err := GetStore()
		if err != nil {
			return err
		}
		c, err := s.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("edited collection no longer loads: %w", err)
		}
		fmt.Printf("%s: %d merged, %d unresolved\n", cfg.Store.Path, len(c.Merged), len(c.Unresolved))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
