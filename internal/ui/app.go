package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/bloglist/internal/blog"
	"github.com/five82/bloglist/internal/blogapi"
	"github.com/five82/bloglist/internal/prefs"
	"github.com/five82/bloglist/internal/state"
)

// View is the screen currently shown.
type View int

const (
	ViewLogin View = iota
	ViewPosts
	ViewPostDetail
	ViewAuthors
	ViewAuthorDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   *blog.Service
	Log       *zap.Logger
	Tick      time.Duration // snapshot refresh period; zero uses one second
	ThemeName string
	PrefsPath string // where a theme change is saved; empty uses the default
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	svc       *blog.Service
	log       *zap.Logger
	tick      time.Duration
	prefsPath string

	keys   keyMap
	help   help.Model
	theme  Theme
	styles Styles

	view     View
	width    int
	height   int
	showHelp bool

	snapshot state.Snapshot

	postRow   int
	authorRow int
	postID    string // post shown in ViewPostDetail
	authorID  string // author shown in ViewAuthorDetail

	login      form
	newPost    form
	newPostBox Toggle
	comment    textinput.Model
	commenting bool
	confirming bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}
	theme := GetTheme(opts.ThemeName)

	comment := textinput.New()
	comment.Prompt = "› "
	comment.Placeholder = "write a comment"
	comment.CharLimit = 1000

	m := Model{
		ctx:       ctx,
		svc:       opts.Service,
		log:       log,
		tick:      tick,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     theme,
		styles:    theme.Styles(),
		login:     newLoginForm(),
		newPost:   newPostForm(),
		comment:   comment,
	}
	m.snapshot = m.svc.Stores().Snapshot()
	if m.snapshot.HasSession {
		m.view = ViewPosts
	} else {
		m.view = ViewLogin
		m.login.Focus()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick), m.snapshotCmd()}
	if m.view == ViewLogin {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.snapshotCmd(), tickCmd(m.tick))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case actionDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, blog.ErrCancelled) {
			m.log.Debug("action failed", zap.String("action", msg.action), zap.Error(msg.err))
		}
		m.afterAction(msg)
		return m, m.snapshotCmd()
	}

	// Cursor blink and other input messages.
	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !snap.HasSession && m.view != ViewLogin {
		m.view = ViewLogin
		m.login.Reset()
		m.login.Focus()
	}
	if n := len(snap.Posts); m.postRow >= n {
		m.postRow = max(n-1, 0)
	}
	if n := len(snap.Authors); m.authorRow >= n {
		m.authorRow = max(n-1, 0)
	}
	if m.view == ViewPostDetail {
		if _, ok := m.currentPost(); !ok {
			m.view = ViewPosts
			m.confirming = false
			m.commenting = false
		}
	}
}

func (m *Model) afterAction(msg actionDoneMsg) {
	switch msg.action {
	case actionLogin:
		// A failed reload after a good login still counts as logged in.
		if _, ok := m.svc.CurrentSession(); ok {
			m.login.Reset()
			m.view = ViewPosts
		}
	case actionCreate:
		if msg.err == nil {
			m.newPost.Reset()
			m.newPostBox.Close()
		}
	case actionComment:
		if msg.err == nil {
			m.comment.Reset()
			m.comment.Blur()
			m.commenting = false
		}
	case actionLogout:
		m.view = ViewLogin
		m.login.Reset()
		m.login.Focus()
	}
}

// handleKey routes keys to the active prompt, form or view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case m.view == ViewLogin:
		return m.handleLoginKey(msg)
	case m.confirming:
		return m.handleConfirmKey(msg)
	case m.commenting:
		return m.handleCommentKey(msg)
	case m.view == ViewPosts && m.newPostBox.Visible():
		return m.handleNewPostKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.log.Warn("save prefs failed", zap.Error(err))
		}
		return m, nil
	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()
	case key.Matches(msg, m.keys.Tab):
		if m.view == ViewPosts || m.view == ViewPostDetail {
			m.view = ViewAuthors
		} else {
			m.view = ViewPosts
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		switch m.view {
		case ViewPostDetail:
			m.view = ViewPosts
		case ViewAuthorDetail:
			m.view = ViewAuthors
		}
		return m, nil
	}

	switch m.view {
	case ViewPosts:
		return m.handlePostsKey(msg)
	case ViewPostDetail:
		return m.handleDetailKey(msg)
	case ViewAuthors:
		return m.handleAuthorsKey(msg)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		if !m.login.OnLast() {
			cmd := m.login.Next()
			return m, cmd
		}
		return m, m.loginCmd(m.login.Value(0), m.login.Value(1))
	case key.Matches(msg, m.keys.NextField):
		cmd := m.login.Next()
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.login.Prev()
		return m, cmd
	}
	cmd := m.login.Update(msg)
	return m, cmd
}

func (m Model) handleNewPostKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.newPostBox.Close()
		m.newPost.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if !m.newPost.OnLast() {
			cmd := m.newPost.Next()
			return m, cmd
		}
		return m, m.createCmd(blog.NewPost{
			Title:  m.newPost.Value(0),
			Author: m.newPost.Value(1),
			URL:    m.newPost.Value(2),
		})
	case key.Matches(msg, m.keys.NextField):
		cmd := m.newPost.Next()
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.newPost.Prev()
		return m, cmd
	}
	cmd := m.newPost.Update(msg)
	return m, cmd
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.commenting = false
		m.comment.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.commentCmd(m.postID, m.comment.Value())
	}
	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirming = false
		return m, m.deleteCmd(m.postID)
	case key.Matches(msg, m.keys.No):
		m.confirming = false
	}
	return m, nil
}

func (m Model) handlePostsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	posts := blog.SortByLikes(m.snapshot.Posts)
	switch {
	case key.Matches(msg, m.keys.NewPost):
		if m.newPostBox.Flip() {
			cmd := m.newPost.Focus()
			return m, cmd
		}
		m.newPost.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if len(posts) == 0 {
			return m, nil
		}
		m.postID = posts[m.postRow].ID
		m.view = ViewPostDetail
		return m, nil
	case key.Matches(msg, m.keys.Like):
		if len(posts) == 0 {
			return m, nil
		}
		return m, m.likeCmd(posts[m.postRow].ID)
	}
	m.postRow = moveCursor(msg, m.keys, m.postRow, len(posts))
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	post, ok := m.currentPost()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Like):
		return m, m.likeCmd(post.ID)
	case key.Matches(msg, m.keys.Comment):
		m.commenting = true
		cmd := m.comment.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if m.svc.CanDelete(post) {
			m.confirming = true
		}
	}
	return m, nil
}

func (m Model) handleAuthorsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	authors := m.snapshot.Authors
	if key.Matches(msg, m.keys.Open) {
		if len(authors) == 0 {
			return m, nil
		}
		m.authorID = authors[m.authorRow].ID
		m.view = ViewAuthorDetail
		return m, nil
	}
	m.authorRow = moveCursor(msg, m.keys, m.authorRow, len(authors))
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.view == ViewLogin:
		cmd := m.login.Update(msg)
		return m, cmd
	case m.commenting:
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		return m, cmd
	case m.newPostBox.Visible():
		cmd := m.newPost.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) currentPost() (blogapi.Post, bool) {
	for _, p := range m.snapshot.Posts {
		if p.ID == m.postID {
			return p, true
		}
	}
	return blogapi.Post{}, false
}

func (m Model) currentAuthor() (blogapi.Author, bool) {
	return m.svc.Stores().Authors.Get(m.authorID)
}

func moveCursor(msg tea.KeyMsg, keys keyMap, row, count int) int {
	if count == 0 {
		return 0
	}
	switch {
	case key.Matches(msg, keys.Down):
		if row < count-1 {
			row++
		}
	case key.Matches(msg, keys.Up):
		if row > 0 {
			row--
		}
	case key.Matches(msg, keys.Top):
		row = 0
	case key.Matches(msg, keys.Bottom):
		row = count - 1
	}
	return row
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Service == nil {
		return errors.New("ui requires a blog service")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
