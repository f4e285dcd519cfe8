package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"shelfmerge/internal/adapters/csvfeed"
	"shelfmerge/internal/adapters/filestore"
	"shelfmerge/internal/adapters/prompt"
	"shelfmerge/internal/adapters/sqlite"
	"shelfmerge/internal/adapters/tui"
	"shelfmerge/internal/config"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/ports"
)

var (
	store    ports.CollectionStore
	prompter *prompt.Prompter
)

// GetStore opens the configured collection store once per process
func GetStore() (ports.CollectionStore, error) {
	if store != nil {
		return store, nil
	}

	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		store = db
	case config.BackendYAML:
		store = filestore.New(cfg.Store.Path, filestore.YAMLCodec{})
	default:
		store = filestore.New(cfg.Store.Path, filestore.JSONCodec{})
	}
	return store, nil
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", cfg.Store.Path, err)
	}
	return nil
}

// GetPrompter returns the line prompter shared by every stdin reader
func GetPrompter() *prompt.Prompter {
	if prompter == nil {
		prompter = prompt.New(os.Stdin, os.Stdout)
	}
	return prompter
}

func feeds() []ports.RowSource {
	return []ports.RowSource{
		csvfeed.New(domain.SourceGoodreads, cfg.GoodreadsPath),
		csvfeed.New(domain.SourceStoryGraph, cfg.StoryGraphPath),
	}
}

func evaluator() *domain.Evaluator {
	return domain.NewEvaluator(domain.WithIgnoredTags(cfg.IgnoredTags...))
}

// useTUI decides between the full-screen dialogs and the line prompt
func useTUI() bool {
	switch cfg.Interactive {
	case config.InteractiveTUI:
		return true
	case config.InteractivePrompt:
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func confirmer() ports.MatchConfirmer {
	if useTUI() {
		return tui.NewConfirmer(tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	}
	return prompt.NewConfirmer(GetPrompter())
}
