package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/hsbacot/typeahead/transform"
)

// RunClean cleans a product list and prints it grouped by category.
// Without a file argument the bundled sample data is used.
func RunClean(env *Env, args []string) error {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw := transform.Sample()
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return fmt.Errorf("opening products: %w", err)
		}
		defer f.Close()

		raw, err = transform.Decode(f)
		if err != nil {
			return err
		}
	}

	sections := transform.Clean(raw)
	env.Logger.Debug("Cleaned products", "input", len(raw), "sections", len(sections))

	if *jsonOutput {
		return printJSON(env.Out, sections)
	}

	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(env.Out)
		}
		printHeader(env.Out, s.Title)
		for _, p := range s.Items {
			fmt.Fprintf(env.Out, "  %-4d %-20s %s\n", p.ID, p.Name, p.Date)
		}
	}
	return nil
}
