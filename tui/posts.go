package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hsbacot/typeahead/client"
	"github.com/hsbacot/typeahead/pager"
)

type postItem struct {
	post client.Post
}

func (i postItem) Title() string {
	return fmt.Sprintf("#%d  %s", i.post.ID, i.post.Title)
}

func (i postItem) Description() string {
	return fmt.Sprintf("user %d • %s", i.post.UserID, wrapText(i.post.Body, 70))
}

func (i postItem) FilterValue() string {
	return i.post.Title
}

// PostsModel is the Bubble Tea model for the infinite post list
type PostsModel struct {
	list    list.Model
	spinner spinner.Model

	ctx      context.Context
	pager    *pager.Pager
	pageSize int

	state    pager.State
	err      error
	quitting bool
}

// NewPostsModel creates a post list that pages through pg as the cursor nears the end
func NewPostsModel(ctx context.Context, pg *pager.Pager, pageSize int) PostsModel {
	if pageSize <= 0 {
		pageSize = pager.DefaultPageSize
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(1)

	l := list.New(nil, delegate, 80, 24)
	l.Title = "📰 Posts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.Styles.Title = titleStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return PostsModel{
		list:     l,
		spinner:  s,
		ctx:      ctx,
		pager:    pg,
		pageSize: pageSize,
		state:    pg.State(),
	}
}

// Init loads the first page
func (m PostsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadMore())
}

func (m PostsModel) loadMore() tea.Cmd {
	return func() tea.Msg {
		st, err := m.pager.LoadMore(m.ctx)
		return pageMsg{state: st, err: err}
	}
}

func (m PostsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		st, err := m.pager.Refresh(m.ctx)
		return pageMsg{state: st, err: err}
	}
}

// nearEnd reports whether the cursor is within half a page of the last item
func (m PostsModel) nearEnd() bool {
	return len(m.state.Items)-m.list.Index() <= m.pageSize/2
}

// Update handles messages and state transitions
func (m PostsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if !m.state.Refreshing {
				m.state.Refreshing = true
				return m, m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)

	case pageMsg:
		return m.applyPage(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	if m.nearEnd() && m.state.HasMore && !m.state.Loading && !m.state.Refreshing {
		m.state.Loading = true
		cmds = append(cmds, m.loadMore())
	}

	return m, tea.Batch(cmds...)
}

func (m PostsModel) applyPage(msg pageMsg) (tea.Model, tea.Cmd) {
	// A rejected call leaves the pager untouched and the running load will report back
	if errors.Is(msg.err, pager.ErrBusy) || errors.Is(msg.err, pager.ErrExhausted) {
		return m, nil
	}

	m.state = msg.state
	m.err = msg.err

	items := make([]list.Item, len(msg.state.Items))
	for i, p := range msg.state.Items {
		items[i] = postItem{post: p}
	}
	cmd := m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("📰 Posts (%d loaded)", len(items))
	return m, cmd
}

// View renders the list with a loading footer
func (m PostsModel) View() string {
	if m.quitting {
		return ""
	}

	view := m.list.View()

	switch {
	case m.state.Refreshing:
		view += "\n" + fmt.Sprintf("%s Refreshing...", spinnerStyle.Render(m.spinner.View()))
	case m.state.Loading:
		view += "\n" + fmt.Sprintf("%s Loading more...", spinnerStyle.Render(m.spinner.View()))
	case m.err != nil:
		view += "\n" + errorStyle.Render(fmt.Sprintf("✗ Error: %v", m.err))
	case !m.state.HasMore:
		view += "\n" + dimStyle.Render("No more posts")
	}
	view += "\n" + dimStyle.Render("r refresh • q quit")

	return "\n" + view
}

// wrapText word-wraps text to width and keeps at most two lines
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	var lines []string
	var currentLine string

	for _, word := range words {
		if len(currentLine)+len(word)+1 <= width {
			if currentLine != "" {
				currentLine += " "
			}
			currentLine += word
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	if len(lines) > 2 {
		lines = lines[:2]
		lines[1] += "..."
	}

	return strings.Join(lines, "\n")
}
