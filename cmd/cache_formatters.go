package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/hsbacot/typeahead/client"
)

// formatSize converts bytes to human-readable format
func formatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}

// formatAge converts a time to a human-readable age string
func formatAge(t time.Time) string {
	return humanize.Time(t)
}

// formatDate converts a time to a short date string
func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// printHeader prints an underlined header
func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("━", len([]rune(title))))
	fmt.Fprintln(w)
}

// printJSON marshals data to JSON and prints it
func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// printUsers prints one user per line
func printUsers(w io.Writer, users []client.User) {
	for _, u := range users {
		fmt.Fprintf(w, "%-4d %-28s %s\n", u.ID, u.Name, u.Email)
	}
}

// confirmAction prompts the user for confirmation
func confirmAction(prompt string) bool {
	var confirmed bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		return false
	}
	return confirmed
}
