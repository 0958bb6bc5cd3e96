package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/hsbacot/typeahead/client"
	"github.com/hsbacot/typeahead/search"
	"github.com/hsbacot/typeahead/tui"
	"github.com/hsbacot/typeahead/ui"
)

// oneShotQuietPeriod is the debounce used when the query is already complete
const oneShotQuietPeriod = time.Millisecond

// ErrNoResults is returned by a one-shot search that matched nothing
var ErrNoResults = errors.New("no users found")

// RunSearch handles the search command
func RunSearch(ctx context.Context, env *Env, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	query := fs.String("q", "", "search once for this query instead of opening the search screen")
	fs.StringVar(query, "query", "", "search once for this query (long form)")
	interactive := fs.Bool("i", false, "interactive mode - choose one of the matches")
	fs.BoolVar(interactive, "interactive", false, "interactive mode - choose one of the matches")
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *query == "" && fs.NArg() > 0 {
		*query = strings.Join(fs.Args(), " ")
	}

	fetcher := env.SearchFetcher(env.Client())

	if *query == "" {
		return runSearchScreen(env, fetcher)
	}

	env.Logger.Debug("Starting search", "query", *query, "interactive", *interactive)
	st, err := SearchOnce(ctx, env, fetcher, *query)
	if err != nil {
		return err
	}
	env.Logger.Debug("Search completed", "query", st.Query, "results", len(st.Results))

	if len(st.Results) == 0 {
		env.Logger.Warn("No users found", "query", *query)
		return ErrNoResults
	}

	results := st.Results
	if *interactive && len(results) > 1 {
		env.Logger.Info("Found multiple users", "count", len(results))
		selected, err := ui.SelectUser(results)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		results = []client.User{*selected}
	}

	if *jsonOutput {
		return printJSON(env.Out, results)
	}
	printUsers(env.Out, results)
	return nil
}

// SearchOnce runs a single query through a controller and waits for it to settle
func SearchOnce(ctx context.Context, env *Env, fetcher search.Fetcher, query string) (search.State, error) {
	settled := make(chan search.State, 1)
	ctrl := search.New(fetcher, search.Options{
		QuietPeriod: oneShotQuietPeriod,
		Logger:      env.Logger,
		Metrics:     env.SearchMetrics,
		OnChange: func(s search.State) {
			if s.Loading {
				return
			}
			select {
			case settled <- s:
			default:
			}
		},
	})
	defer ctrl.Close()

	st := ctrl.Observe(query)
	if !st.Loading {
		return st, nil
	}

	select {
	case <-ctx.Done():
		return st, ctx.Err()
	case st = <-settled:
	}
	if st.Err != nil {
		return st, fmt.Errorf("search %q: %w", st.Query, st.Err)
	}
	return st, nil
}

func runSearchScreen(env *Env, fetcher search.Fetcher) error {
	choice, err := tui.RunSearch(fetcher, tui.SearchOptions{
		QuietPeriod: env.Config.Search.QuietPeriod,
		Logger:      env.Logger,
		Metrics:     env.SearchMetrics,
	})
	if err != nil {
		return err
	}
	if choice == nil {
		return nil
	}

	env.Logger.Info("Selected user", "name", choice.Name, "id", choice.ID)
	printUsers(env.Out, []client.User{*choice})
	return nil
}
