package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/hsbacot/typeahead/search"
)

// RunUsers lists every user, optionally narrowed by a local name/email filter
func RunUsers(ctx context.Context, env *Env, args []string) error {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	filter := fs.String("filter", "", "Only show users whose name or email contains this text")
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	users, err := env.Client().ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}
	env.Logger.Debug("Fetched users", "count", len(users))

	users = search.Filter(users, *filter)

	if *jsonOutput {
		return printJSON(env.Out, users)
	}
	if len(users) == 0 {
		fmt.Fprintln(env.Out, "No users found")
		return nil
	}
	printUsers(env.Out, users)
	return nil
}
