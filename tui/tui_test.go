package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hsbacot/typeahead/client"
	"github.com/hsbacot/typeahead/pager"
	"github.com/hsbacot/typeahead/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchModel(t *testing.T) SearchModel {
	t.Helper()
	// The quiet period never elapses during a test, so no request is made
	ctrl := search.New(search.FetcherFunc(func(ctx context.Context, q string) ([]client.User, error) {
		t.Errorf("unexpected fetch for %q", q)
		return nil, nil
	}), search.Options{QuietPeriod: time.Hour})
	t.Cleanup(ctrl.Close)
	return NewSearchModel(ctrl, nil)
}

func typeRunes(m SearchModel, s string) SearchModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(SearchModel)
	}
	return m
}

func TestTypingObservesQuery(t *testing.T) {
	m := typeRunes(newSearchModel(t), "le")

	st := m.State()
	assert.Equal(t, "le", st.Query)
	assert.True(t, st.Loading)
	assert.Contains(t, m.View(), "Searching...")
}

func TestStaleStateIsDropped(t *testing.T) {
	m := newSearchModel(t)

	next, _ := m.Update(StateMsg(search.State{Query: "leanne", Revision: 5, Results: []client.User{{ID: 1, Name: "Leanne"}}}))
	m = next.(SearchModel)
	next, _ = m.Update(StateMsg(search.State{Query: "le", Revision: 3, Loading: true}))
	m = next.(SearchModel)

	assert.Equal(t, "leanne", m.State().Query)
	assert.Len(t, m.State().Results, 1)
}

func TestEnterSelectsHighlightedUser(t *testing.T) {
	m := newSearchModel(t)
	results := []client.User{
		{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
	}

	next, _ := m.Update(StateMsg(search.State{Query: "e", Revision: 1, Results: results}))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SearchModel)

	require.NotNil(t, m.Choice())
	assert.Equal(t, 2, m.Choice().ID)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEnterWithoutResultsDoesNothing(t *testing.T) {
	next, cmd := newSearchModel(t).Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, next.(SearchModel).Choice())
	assert.Nil(t, cmd)
}

func TestViewStates(t *testing.T) {
	m := newSearchModel(t)
	assert.Contains(t, m.View(), "Start typing to search")

	next, _ := m.Update(StateMsg(search.State{Query: "zzz", Revision: 1}))
	assert.Contains(t, next.View(), "No results found")

	next, _ = next.Update(StateMsg(search.State{Query: "zzz", Revision: 2, Err: errors.New("boom")}))
	assert.Contains(t, next.View(), "boom")
	assert.Contains(t, next.View(), "retry")
}

func TestInitialQuery(t *testing.T) {
	m := newSearchModel(t)
	m.initial = "ervin"

	next, _ := m.Update(queryMsg("ervin"))
	m = next.(SearchModel)
	assert.Equal(t, "ervin", m.input.Value())
	assert.True(t, m.State().Loading)
}

type staticPages struct{}

func (staticPages) FetchPage(ctx context.Context, page, limit int) ([]client.Post, error) {
	return nil, nil
}

func TestPostsApplyPage(t *testing.T) {
	pg := pager.New(staticPages{}, pager.Options{PageSize: 2})
	m := NewPostsModel(context.Background(), pg, 2)

	next, _ := m.Update(pageMsg{state: pager.State{
		Items:   []client.Post{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}},
		Page:    1,
		HasMore: false,
	}})
	m = next.(PostsModel)

	assert.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.View(), "No more posts")
}

func TestPostsIgnoresBusy(t *testing.T) {
	pg := pager.New(staticPages{}, pager.Options{PageSize: 2})
	m := NewPostsModel(context.Background(), pg, 2)
	m.state.Items = []client.Post{{ID: 1}}

	next, _ := m.Update(pageMsg{state: pager.State{}, err: pager.ErrBusy})
	assert.Len(t, next.(PostsModel).state.Items, 1)
	assert.NoError(t, next.(PostsModel).err)
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 10))
	assert.Equal(t, "one two\nthree...", wrapText("one two three four five", 8))
}
