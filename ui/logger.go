package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// InitLogger initializes and configures a Charm logger writing to stderr
func InitLogger(verbose bool) *log.Logger {
	return NewLogger(os.Stderr, verbose)
}

// NewLogger creates a Charm logger writing to w. Verbose enables debug output
// with caller and timestamp reporting.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "typeahead",
		ReportCaller:    verbose,
		ReportTimestamp: verbose,
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	return logger
}
