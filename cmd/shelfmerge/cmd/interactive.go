package cmd

import (
	"context"

	"shelfmerge/internal/adapters/prompt"
	"shelfmerge/internal/application"
)

// runInteractive asks for an action until the user quits
func runInteractive(ctx context.Context) error {
	p := GetPrompter()
	actions := map[string]prompt.Action{
		"collect": func(ctx context.Context) error {
			scope, err := p.Choose(ctx, "Which catalogs? (all / goodreads / storygraph): ",
				string(application.ScopeAll), string(application.ScopeGoodreads), string(application.ScopeStoryGraph))
			if err != nil {
				return err
			}
			return runCollect(ctx, application.Scope(scope))
		},
		"analyze": runAnalyze,
	}
	return prompt.Loop(ctx, p, actions, []string{"collect", "analyze"})
}
