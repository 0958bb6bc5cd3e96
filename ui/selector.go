package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hsbacot/typeahead/client"
)

// UserLabel formats a user as a single selection line
func UserLabel(u client.User) string {
	label := u.Name
	if u.Email != "" {
		label = fmt.Sprintf("%s <%s>", u.Name, u.Email)
	}
	if u.Username != "" {
		label = fmt.Sprintf("%s @%s", label, u.Username)
	}
	if len(label) > 90 {
		label = label[:87] + "..."
	}
	return label
}

// SelectUser presents an interactive selection menu for choosing a user
func SelectUser(users []client.User) (*client.User, error) {
	if len(users) == 0 {
		return nil, errors.New("no users to select from")
	}

	var selected int
	options := make([]huh.Option[int], len(users))
	for i, u := range users {
		options[i] = huh.NewOption(UserLabel(u), u.ID)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%d users found - choose one:", len(users))).
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == selected {
			return &users[i], nil
		}
	}

	return nil, errors.New("selection not found")
}
