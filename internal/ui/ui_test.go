package ui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloglist/internal/blog"
	"github.com/five82/bloglist/internal/blogapi"
	"github.com/five82/bloglist/internal/prefs"
	"github.com/five82/bloglist/internal/session"
	"github.com/five82/bloglist/internal/state"
)

type stubAPI struct {
	mu      sync.Mutex
	posts   []blogapi.Post
	deleted []string
	likes   int
}

func (s *stubAPI) SetToken(string) {}

func (s *stubAPI) FetchPosts(context.Context) ([]blogapi.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]blogapi.Post(nil), s.posts...), nil
}

func (s *stubAPI) CreatePost(_ context.Context, in blogapi.NewPost) (blogapi.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := blogapi.Post{ID: "created", Title: in.Title, Author: in.Author, URL: in.URL}
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *stubAPI) UpdatePost(_ context.Context, id string, _ any) (blogapi.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes++
	return blogapi.Post{ID: id}, nil
}

func (s *stubAPI) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAPI) AddComment(context.Context, string, string) error { return nil }

func (s *stubAPI) FetchAuthors(context.Context) ([]blogapi.Author, error) {
	return []blogapi.Author{{ID: "u1", Name: "Ada Lovelace", Posts: []blogapi.PostRef{{ID: "p1", Title: "Notes"}}}}, nil
}

func (s *stubAPI) Login(_ context.Context, c blogapi.Credentials) (blogapi.LoginResponse, error) {
	return blogapi.LoginResponse{Token: "tok", Username: c.Username, Name: "Ada Lovelace"}, nil
}

func newTestModel(t *testing.T, posts ...blogapi.Post) (Model, *stubAPI, *state.Stores) {
	t.Helper()
	api := &stubAPI{posts: posts}
	storage, err := session.NewFileStorage(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	stores := &state.Stores{}
	t.Cleanup(stores.Notification.Clear)
	svc := blog.NewService(api, stores, storage, blog.WithNotifyFor(time.Hour))
	stores.Posts.Replace(posts)
	return New(Options{Service: svc}), api, stores
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// finish runs an action command and feeds the result and the follow-up
// snapshot back into the model.
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected an action command")
	}
	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	if !ok {
		t.Fatalf("command produced %T, want actionDoneMsg", msg)
	}
	m, next := send(t, m, done)
	if next != nil {
		m, _ = send(t, m, next())
	}
	return m
}

func TestToggle(t *testing.T) {
	var tg Toggle
	if tg.Visible() {
		t.Fatalf("zero Toggle is visible")
	}
	if !tg.Flip() || !tg.Visible() {
		t.Fatalf("Flip did not show")
	}
	if tg.Flip() {
		t.Fatalf("second Flip returned true")
	}
	tg.Close()
	if tg.Visible() {
		t.Fatalf("Close did not hide")
	}
}

func TestStyles_BannerColourFollowsKind(t *testing.T) {
	theme := GetTheme("Nightfox")
	styles := theme.Styles()
	if got := styles.Banner(state.KindSuccess).GetForeground(); got != lipgloss.Color(theme.Success) {
		t.Fatalf("success banner foreground = %v, want %v", got, theme.Success)
	}
	if got := styles.Banner(state.KindFailure).GetForeground(); got != lipgloss.Color(theme.Danger) {
		t.Fatalf("failure banner foreground = %v, want %v", got, theme.Danger)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	if NextTheme("Nightfox") != "Slate" || NextTheme("Slate") != "Nightfox" || NextTheme("bogus") != "Nightfox" {
		t.Fatalf("NextTheme cycle broken")
	}
}

func TestTruncateAndPlural(t *testing.T) {
	if got := truncate("  a long title here ", 8); got != "a lon..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if plural(1, "like") != "1 like" || plural(3, "like") != "3 likes" {
		t.Fatalf("plural wrong")
	}
}

func TestModel_LoginThenPosts(t *testing.T) {
	m, _, stores := newTestModel(t, blogapi.Post{ID: "p1", Title: "Go", Author: "Rob"})
	if m.view != ViewLogin {
		t.Fatalf("view = %v, want login without a session", m.view)
	}

	m = typeText(t, m, "ada")
	m, _ = send(t, m, enter)
	m = typeText(t, m, "secret")
	m, cmd := send(t, m, enter)
	m = finish(t, m, cmd)

	if m.view != ViewPosts {
		t.Fatalf("view = %v, want posts after login", m.view)
	}
	sess, ok := stores.Session.Current()
	if !ok || sess.Username != "ada" {
		t.Fatalf("session = %#v, %v", sess, ok)
	}
	if len(m.snapshot.Authors) != 1 {
		t.Fatalf("authors not loaded after login")
	}
}

func loggedIn(t *testing.T, posts ...blogapi.Post) (Model, *stubAPI, *state.Stores) {
	t.Helper()
	m, api, stores := newTestModel(t, posts...)
	stores.Session.Set(session.Session{Username: "ada", Name: "Ada Lovelace", Token: "tok"})
	m, _ = send(t, m, snapshotMsg(stores.Snapshot()))
	m.view = ViewPosts
	return m, api, stores
}

func TestModel_LikeFromList(t *testing.T) {
	m, api, stores := loggedIn(t,
		blogapi.Post{ID: "p1", Title: "low", Likes: 1},
		blogapi.Post{ID: "p2", Title: "high", Likes: 7},
	)
	// The list is sorted, so the cursor starts on the most liked post.
	_, cmd := send(t, m, keyRune('l'))
	finish(t, m, cmd)

	if api.likes != 1 {
		t.Fatalf("UpdatePost called %d times, want 1", api.likes)
	}
	p2, _ := stores.Posts.Get("p2")
	p1, _ := stores.Posts.Get("p1")
	if p2.Likes != 8 || p1.Likes != 1 {
		t.Fatalf("likes p1=%d p2=%d, want 1/8", p1.Likes, p2.Likes)
	}
}

func TestModel_NewPostFormClosesAfterCreate(t *testing.T) {
	m, _, stores := loggedIn(t)

	m, _ = send(t, m, keyRune('n'))
	if !m.newPostBox.Visible() {
		t.Fatalf("new post form not shown")
	}
	m = typeText(t, m, "T")
	m, _ = send(t, m, enter)
	m = typeText(t, m, "A")
	m, _ = send(t, m, enter)
	m = typeText(t, m, "http://u.example")
	m, cmd := send(t, m, enter)
	m = finish(t, m, cmd)

	if m.newPostBox.Visible() {
		t.Fatalf("form still visible after successful create")
	}
	if got := len(stores.Posts.All()); got != 1 {
		t.Fatalf("posts = %d, want 1", got)
	}
	if !m.snapshot.HasNotification || m.snapshot.Notification.Message != "A new T By A" {
		t.Fatalf("notification = %#v", m.snapshot.Notification)
	}
}

func TestModel_DeleteNeedsOwnershipAndConfirmation(t *testing.T) {
	owned := blogapi.Post{ID: "p1", Title: "Mine", User: &blogapi.PostOwner{Name: "Ada Lovelace"}}
	other := blogapi.Post{ID: "p2", Title: "Theirs", Likes: 3, User: &blogapi.PostOwner{Name: "Rob"}}
	m, api, stores := loggedIn(t, owned, other)

	// Cursor is on "Theirs" (most likes); delete is not offered.
	m, _ = send(t, m, enter)
	m, _ = send(t, m, keyRune('d'))
	if m.confirming {
		t.Fatalf("confirmation shown for a post the user does not own")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, keyRune('j'))
	m, _ = send(t, m, enter)
	m, _ = send(t, m, keyRune('d'))
	if !m.confirming {
		t.Fatalf("confirmation not shown for own post")
	}
	m, _ = send(t, m, keyRune('n'))
	if m.confirming || len(api.deleted) != 0 {
		t.Fatalf("declined delete still ran")
	}

	m, _ = send(t, m, keyRune('d'))
	m, cmd := send(t, m, keyRune('y'))
	m = finish(t, m, cmd)

	if len(api.deleted) != 1 || api.deleted[0] != "p1" {
		t.Fatalf("deleted = %v, want [p1]", api.deleted)
	}
	if _, ok := stores.Posts.Get("p1"); ok {
		t.Fatalf("p1 still in store")
	}
	if m.view != ViewPosts {
		t.Fatalf("view = %v, want posts once the open post is gone", m.view)
	}
}

func TestModel_LogoutReturnsToLogin(t *testing.T) {
	m, _, stores := loggedIn(t)
	m, cmd := send(t, m, keyRune('L'))
	m = finish(t, m, cmd)
	if m.view != ViewLogin {
		t.Fatalf("view = %v, want login", m.view)
	}
	if _, ok := stores.Session.Current(); ok {
		t.Fatalf("session still present after logout")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m, _, _ := loggedIn(t)
	m.prefsPath = filepath.Join(t.TempDir(), "prefs.toml")

	m, _ = send(t, m, keyRune('T'))
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", got)
	}
}
