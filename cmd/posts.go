package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/hsbacot/typeahead/pager"
	"github.com/hsbacot/typeahead/tui"
)

// RunPosts opens the infinite post list, or prints the first pages with --pages
func RunPosts(ctx context.Context, env *Env, args []string) error {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	pages := fs.Int("pages", 0, "Print this many pages instead of opening the post list")
	jsonOutput := fs.Bool("json", false, "Output in JSON format (with --pages)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pageSize := env.Config.Pager.PageSize
	pg := pager.New(env.Client(), pager.Options{
		PageSize: pageSize,
		MaxPages: env.Config.Pager.MaxPages,
		Logger:   env.Logger,
	})

	if *pages <= 0 {
		return tui.RunPosts(ctx, pg, pageSize)
	}

	st, err := LoadPages(ctx, pg, *pages)
	if err != nil {
		return err
	}
	env.Logger.Debug("Loaded posts", "pages", st.Page, "posts", len(st.Items), "has_more", st.HasMore)

	if *jsonOutput {
		return printJSON(env.Out, st.Items)
	}
	for _, p := range st.Items {
		fmt.Fprintf(env.Out, "%-4d %s\n", p.ID, p.Title)
	}
	return nil
}

// LoadPages loads up to n pages, stopping early once the feed is exhausted
func LoadPages(ctx context.Context, pg *pager.Pager, n int) (pager.State, error) {
	st := pg.State()
	for i := 0; i < n; i++ {
		var err error
		st, err = pg.LoadMore(ctx)
		if errors.Is(err, pager.ErrExhausted) {
			break
		}
		if err != nil {
			return st, fmt.Errorf("loading page %d: %w", st.Page+1, err)
		}
		if !st.HasMore {
			break
		}
	}
	return st, nil
}
