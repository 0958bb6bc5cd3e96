package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/hsbacot/typeahead/cache"
)

// RunCacheCommand handles all cache subcommands
func RunCacheCommand(env *Env, args []string) error {
	if len(args) == 0 {
		printCacheUsage(env.Out)
		return errors.New("cache command required")
	}

	c, err := env.OpenCache()
	if err != nil {
		return err
	}

	subcommand := args[0]
	w := env.Out

	switch subcommand {
	case "stats":
		return handleCacheStats(w, c, args[1:])
	case "list":
		return handleCacheList(w, c, args[1:])
	case "clear":
		return handleCacheClear(w, c, args[1:])
	case "remove":
		return handleCacheRemove(w, c, args[1:])
	case "prune":
		return handleCachePrune(w, c, args[1:])
	default:
		printCacheUsage(w)
		return fmt.Errorf("unknown cache command: %s", subcommand)
	}
}

func printCacheUsage(w io.Writer) {
	fmt.Fprintln(w, "Cache Management Commands:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  typeahead cache stats              Show cache statistics")
	fmt.Fprintln(w, "  typeahead cache list               List all cached searches")
	fmt.Fprintln(w, "  typeahead cache clear              Clear entire cache")
	fmt.Fprintln(w, "  typeahead cache remove <query>     Remove one cached search")
	fmt.Fprintln(w, "  typeahead cache prune --days N     Remove entries older than N days")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --json            Output in JSON format (stats, list)")
	fmt.Fprintln(w, "  --force, -f       Skip confirmation prompts")
	fmt.Fprintln(w, "  --dry-run         Preview changes without applying them")
	fmt.Fprintln(w, "  --days <N>        Age threshold in days (prune)")
}

// handleCacheStats shows cache statistics
func handleCacheStats(w io.Writer, c *cache.Cache, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := c.GetStats()
	if err != nil {
		return fmt.Errorf("getting cache stats: %w", err)
	}

	if *jsonOutput {
		return printJSON(w, stats)
	}

	printHeader(w, "Cache Statistics")

	fmt.Fprintf(w, "Location:        %s\n", stats.CacheDir)
	fmt.Fprintf(w, "Total Searches:  %d\n", stats.TotalEntries)
	fmt.Fprintf(w, "Total Size:      %s\n", formatSize(stats.TotalSize))

	if !stats.OldestEntry.IsZero() {
		fmt.Fprintf(w, "Oldest Entry:    %s (%s)\n", formatDate(stats.OldestEntry), formatAge(stats.OldestEntry))
	}
	if !stats.NewestEntry.IsZero() {
		fmt.Fprintf(w, "Newest Entry:    %s (%s)\n", formatDate(stats.NewestEntry), formatAge(stats.NewestEntry))
	}
	return nil
}

// handleCacheList lists all cached searches
func handleCacheList(w io.Writer, c *cache.Cache, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	searches, err := c.List()
	if err != nil {
		return fmt.Errorf("listing cache: %w", err)
	}

	if len(searches) == 0 {
		fmt.Fprintln(w, "Cache is empty")
		return nil
	}

	if *jsonOutput {
		return printJSON(w, map[string]interface{}{
			"searches":       searches,
			"total_searches": len(searches),
		})
	}

	printHeader(w, "Cached Searches")

	var totalSize int64
	for _, s := range searches {
		totalSize += s.Size
		fmt.Fprintf(w, "%-30q %3d results %10s    %s\n",
			s.Query, s.Results, formatSize(s.Size), formatAge(s.FetchedAt))
	}

	fmt.Fprintf(w, "\nTotal: %d searches, %s\n", len(searches), formatSize(totalSize))
	return nil
}

// handleCacheClear clears the entire cache
func handleCacheClear(w io.Writer, c *cache.Cache, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	force := fs.Bool("force", false, "Skip confirmation")
	fs.BoolVar(force, "f", false, "Skip confirmation (shorthand)")
	dryRun := fs.Bool("dry-run", false, "Preview without deleting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := c.GetStats()
	if err != nil {
		return fmt.Errorf("getting cache stats: %w", err)
	}

	if stats.TotalEntries == 0 {
		fmt.Fprintln(w, "Cache is already empty")
		return nil
	}

	fmt.Fprintf(w, "⚠️  Warning: This will delete ALL cached searches (%s)\n\n", formatSize(stats.TotalSize))

	if *dryRun {
		fmt.Fprintln(w, "[DRY RUN] Would remove all cache entries")
		return nil
	}

	if !*force && !confirmAction("Are you sure?") {
		fmt.Fprintln(w, "Cancelled")
		return nil
	}

	if err := c.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	fmt.Fprintf(w, "✓ Removed %d searches\n", stats.TotalEntries)
	fmt.Fprintf(w, "✓ Freed %s of disk space\n", formatSize(stats.TotalSize))
	return nil
}

// handleCacheRemove removes one cached search
func handleCacheRemove(w io.Writer, c *cache.Cache, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return errors.New("query required: typeahead cache remove <query>")
	}
	query := fs.Arg(0)

	if err := c.Remove(query); err != nil {
		return err
	}

	fmt.Fprintf(w, "✓ Removed cached search %q\n", query)
	return nil
}

// handleCachePrune removes old cache entries
func handleCachePrune(w io.Writer, c *cache.Cache, args []string) error {
	fs := flag.NewFlagSet("prune", flag.ContinueOnError)
	days := fs.Int("days", 0, "Remove entries older than this many days")
	force := fs.Bool("force", false, "Skip confirmation")
	fs.BoolVar(force, "f", false, "Skip confirmation (shorthand)")
	dryRun := fs.Bool("dry-run", false, "Preview without deleting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *days <= 0 {
		return errors.New("--days flag is required and must be positive")
	}

	maxAge := time.Duration(*days) * 24 * time.Hour

	fmt.Fprintf(w, "Analyzing cache entries older than %d days...\n\n", *days)

	// Always dry-run first to show what would be deleted
	result, err := c.Prune(cache.PruneOptions{MaxAge: maxAge, DryRun: true})
	if err != nil {
		return fmt.Errorf("analyzing cache: %w", err)
	}

	if result.RemovedCount == 0 {
		fmt.Fprintln(w, "No stale entries found")
		return nil
	}

	fmt.Fprintf(w, "Found %d stale entries:\n", result.RemovedCount)
	for _, item := range result.RemovedItems {
		fmt.Fprintf(w, "  └─ %s\n", item)
	}
	fmt.Fprintf(w, "\nTotal: %s to be freed\n\n", formatSize(result.FreedSpace))

	if *dryRun {
		fmt.Fprintln(w, "[DRY RUN] Preview complete")
		return nil
	}

	if !*force && !confirmAction("Prune these entries?") {
		fmt.Fprintln(w, "Cancelled")
		return nil
	}

	result, err = c.Prune(cache.PruneOptions{MaxAge: maxAge})
	if err != nil {
		return fmt.Errorf("pruning cache: %w", err)
	}

	fmt.Fprintf(w, "✓ Removed %d entries\n", result.RemovedCount)
	fmt.Fprintf(w, "✓ Freed %s of disk space\n", formatSize(result.FreedSpace))
	return nil
}
