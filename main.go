package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hsbacot/typeahead/client"
	"github.com/hsbacot/typeahead/cmd"
	"github.com/hsbacot/typeahead/config"
	"github.com/hsbacot/typeahead/search"
	"github.com/hsbacot/typeahead/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: typeahead [OPTIONS] <command> [ARGS]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  search [-q QUERY] [-i] [--json]   Search users as you type (one-shot with -q)")
	fmt.Fprintln(os.Stderr, "  users [--filter TEXT] [--json]     List users")
	fmt.Fprintln(os.Stderr, "  posts [--pages N] [--json]         Browse posts (print N pages with --pages)")
	fmt.Fprintln(os.Stderr, "  clean [FILE] [--json]              Clean and group a product list")
	fmt.Fprintln(os.Stderr, "  cache <subcommand>                 Manage the search cache")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  -v, --verbose          Show detailed logs")
	fmt.Fprintln(os.Stderr, "  --config PATH          Config file (default: ./typeahead.yaml)")
	fmt.Fprintln(os.Stderr, "  --no-cache             Bypass the search cache")
	fmt.Fprintln(os.Stderr, "  --metrics-addr ADDR    Serve Prometheus metrics on ADDR")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Example:")
	fmt.Fprintln(os.Stderr, "  typeahead search")
	fmt.Fprintln(os.Stderr, "  typeahead search -q leanne --json")
	fmt.Fprintln(os.Stderr, "  typeahead posts --pages 2")
}

func main() {
	// Parse command-line flags
	verbose := flag.Bool("v", false, "verbose mode - show detailed logs")
	flag.BoolVar(verbose, "verbose", false, "verbose mode - show detailed logs")
	configPath := flag.String("config", "", "path to config file")
	noCache := flag.Bool("no-cache", false, "bypass the search cache")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	flag.Usage = usage
	flag.Parse()

	// Initialize logger
	logger := ui.InitLogger(*verbose)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &cmd.Env{
		Config:  cfg,
		Logger:  logger,
		Out:     os.Stdout,
		NoCache: *noCache,
	}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		env.ClientMetrics = client.NewMetrics(reg)
		env.SearchMetrics = search.NewMetrics(reg)

		srv := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Debug("Starting command", "command", args[0], "base_url", cfg.API.BaseURL)

	if err := run(ctx, env, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Error("Command failed", "command", args[0], "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, env *cmd.Env, args []string) error {
	switch args[0] {
	case "search":
		return cmd.RunSearch(ctx, env, args[1:])
	case "users":
		return cmd.RunUsers(ctx, env, args[1:])
	case "posts":
		return cmd.RunPosts(ctx, env, args[1:])
	case "clean":
		return cmd.RunClean(env, args[1:])
	case "cache":
		return cmd.RunCacheCommand(env, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// serveMetrics exposes reg on addr/metrics in the background
func serveMetrics(addr string, reg *prometheus.Registry, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Debug("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()

	return srv
}
