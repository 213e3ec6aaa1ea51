package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bloglist/internal/blog"
	"github.com/five82/bloglist/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

const (
	actionLogin   = "login"
	actionLogout  = "logout"
	actionReload  = "reload"
	actionCreate  = "create"
	actionLike    = "like"
	actionDelete  = "delete"
	actionComment = "comment"
)

// actionDoneMsg reports that a service call finished. The service has
// already updated the stores and published any notification.
type actionDoneMsg struct {
	action string
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) snapshotCmd() tea.Cmd {
	stores := m.svc.Stores()
	return func() tea.Msg {
		return snapshotMsg(stores.Snapshot())
	}
}

func run(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn()}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return run(actionLogin, func() error {
		if _, err := svc.Login(ctx, username, password); err != nil {
			return err
		}
		// Pick up anything created since start-up.
		return svc.Sync(ctx)
	})
}

func (m Model) logoutCmd() tea.Cmd {
	svc := m.svc
	return run(actionLogout, svc.Logout)
}

func (m Model) reloadCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return run(actionReload, func() error {
		if err := svc.LoadPosts(ctx); err != nil {
			return err
		}
		return svc.LoadAuthors(ctx)
	})
}

func (m Model) createCmd(in blog.NewPost) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return run(actionCreate, func() error {
		_, err := svc.CreatePost(ctx, in)
		return err
	})
}

func (m Model) likeCmd(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return run(actionLike, func() error {
		_, err := svc.LikePost(ctx, id)
		return err
	})
}

// deleteCmd runs after the user answered the y/n prompt, so the service's
// own confirmation is already satisfied.
func (m Model) deleteCmd(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return run(actionDelete, func() error {
		return svc.DeletePost(ctx, id, blog.AutoConfirm)
	})
}

func (m Model) commentCmd(id, text string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return run(actionComment, func() error {
		_, err := svc.AddComment(ctx, id, text)
		return err
	})
}
