package prompt

import (
	"context"
	"errors"
	"fmt"

	"shelfmerge/internal/logging"
)

// Action runs one top-level action chosen in the loop
type Action func(ctx context.Context) error

// Loop asks which action to run until input ends or the user quits.
// Failures of an action are reported and the loop continues.
func Loop(ctx context.Context, p *Prompter, actions map[string]Action, order []string) error {
	choices := append(append([]string{}, order...), "quit", "q")
	question := "What would you like to do? ("
	for i, name := range order {
		if i > 0 {
			question += " / "
		}
		question += name
	}
	question += " / quit): "

	for {
		choice, err := p.Choose(ctx, question, choices...)
		if err != nil {
			if IsAbort(err) {
				return nil
			}
			return err
		}
		if choice == "quit" || choice == "q" {
			return nil
		}

		if err := actions[choice](ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			logging.FromContext(ctx).Debug().Err(err).Str("action", choice).Msg("action failed")
			fmt.Fprintf(p.out, "%s failed: %v\n", choice, err)
		}
	}
}
