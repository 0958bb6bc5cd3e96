package search

import (
	"strings"

	"github.com/hsbacot/typeahead/client"
)

// Filter returns the users whose name or email contains query, ignoring case.
// An empty query returns every user.
func Filter(users []client.User, query string) []client.User {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return users
	}

	filtered := []client.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
