package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hsbacot/typeahead/client"
	"github.com/stretchr/testify/assert"
)

func TestUserLabel(t *testing.T) {
	assert.Equal(t, "Leanne Graham <Sincere@april.biz> @Bret",
		UserLabel(client.User{Name: "Leanne Graham", Email: "Sincere@april.biz", Username: "Bret"}))
	assert.Equal(t, "Nameless", UserLabel(client.User{Name: "Nameless"}))

	long := UserLabel(client.User{Name: strings.Repeat("x", 120)})
	assert.Len(t, long, 90)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestSelectUserRejectsEmpty(t *testing.T) {
	_, err := SelectUser(nil)
	assert.Error(t, err)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewLogger(&buf, false)
	quiet.Debug("hidden")
	quiet.Info("shown", "query", "react")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "query=react")

	buf.Reset()
	verbose := NewLogger(&buf, true)
	verbose.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
