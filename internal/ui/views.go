package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloglist/internal/blog"
)

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.view {
	case ViewLogin:
		return m.renderLogin()
	case ViewPosts:
		return m.renderPosts()
	case ViewPostDetail:
		return m.renderPostDetail()
	case ViewAuthors:
		return m.renderAuthors()
	case ViewAuthorDetail:
		return m.renderAuthorDetail()
	default:
		return ""
	}
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("blogs")
	if !m.snapshot.HasSession {
		return m.styles.Header.Render(title)
	}
	tabs := []string{"Blogs", "Users"}
	active := 0
	if m.view == ViewAuthors || m.view == ViewAuthorDetail {
		active = 1
	}
	for i, tab := range tabs {
		if i == active {
			tabs[i] = m.styles.Selected.Render(" " + tab + " ")
		} else {
			tabs[i] = m.styles.MutedText.Render(" " + tab + " ")
		}
	}
	user := m.styles.MutedText.Render(m.snapshot.Session.DisplayName() + " logged in")
	return m.styles.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, ""), "  ", user))
}

// renderBanner shows the current notification, or nothing.
func (m Model) renderBanner() string {
	if !m.snapshot.HasNotification {
		return ""
	}
	n := m.snapshot.Notification
	return m.styles.Banner(n.Kind).Render(n.Message)
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Log in to application"))
	b.WriteString("\n\n")
	b.WriteString(m.login.View(m.styles))
	return m.styles.Panel.Render(b.String())
}

func (m Model) renderPosts() string {
	var b strings.Builder
	if m.newPostBox.Visible() {
		b.WriteString(m.styles.Panel.Render(
			m.styles.Title.Render("Create new") + "\n\n" + m.newPost.View(m.styles),
		))
		b.WriteString("\n\n")
	}

	posts := blog.SortByLikes(m.snapshot.Posts)
	if len(posts) == 0 {
		b.WriteString(m.styles.MutedText.Render("No blogs yet."))
		return b.String()
	}
	width := m.listWidth()
	for i, p := range posts {
		label := padRight(truncate(p.Title+" "+p.Author, width), width)
		likes := plural(p.Likes, "like")
		if i == m.postRow {
			b.WriteString(m.styles.Selected.Render("› " + label + "  " + likes))
		} else {
			b.WriteString("  " + label + "  " + m.styles.MutedText.Render(likes))
		}
		if i < len(posts)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// listWidth is the column width for list labels, leaving room for counts.
func (m Model) listWidth() int {
	if m.width <= 0 {
		return 50
	}
	return max(m.width-20, 10)
}

func (m Model) renderPostDetail() string {
	post, ok := m.currentPost()
	if !ok {
		return m.styles.MutedText.Render("Blog not found.")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(post.Title + " " + post.Author))
	b.WriteString("\n")
	b.WriteString(m.styles.AccentText.Render(post.URL))
	b.WriteString("\n")
	b.WriteString(plural(post.Likes, "like"))
	b.WriteString("\n")
	if owner := post.OwnerName(); owner != "" {
		b.WriteString(m.styles.MutedText.Render("added by " + owner))
		b.WriteString("\n")
	}

	if m.confirming {
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(blog.ConfirmPrompt(post) + "? [y/N]"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("comments"))
	b.WriteString("\n")
	if m.commenting {
		b.WriteString(m.comment.View())
		b.WriteString("\n")
	}
	if len(post.Comments) == 0 {
		b.WriteString(m.styles.MutedText.Render("no comments"))
	}
	for i, c := range post.Comments {
		b.WriteString("• " + c)
		if i < len(post.Comments)-1 {
			b.WriteString("\n")
		}
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) renderAuthors() string {
	authors := m.snapshot.Authors
	if len(authors) == 0 {
		return m.styles.MutedText.Render("No users.")
	}
	var b strings.Builder
	width := min(m.listWidth(), 30)
	b.WriteString(m.styles.Title.Render("  " + padRight("Users", width) + "  blogs created"))
	b.WriteString("\n")
	for i, a := range authors {
		line := padRight(truncate(a.Name, width), width) + "  " + fmt.Sprint(len(a.Posts))
		if i == m.authorRow {
			line = m.styles.Selected.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(authors)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderAuthorDetail() string {
	author, ok := m.currentAuthor()
	if !ok {
		return m.styles.MutedText.Render("User not found.")
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(author.Name))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("added blogs"))
	b.WriteString("\n")
	if len(author.Posts) == 0 {
		b.WriteString(m.styles.MutedText.Render("none"))
	}
	for i, p := range author.Posts {
		b.WriteString("• " + p.Title)
		if i < len(author.Posts)-1 {
			b.WriteString("\n")
		}
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) renderFooter() string {
	switch {
	case m.view == ViewLogin:
		return m.styles.MutedText.Render("tab next field • enter log in • esc quit")
	case m.confirming:
		return m.styles.MutedText.Render("y remove • n cancel")
	case m.commenting:
		return m.styles.MutedText.Render("enter add comment • esc cancel")
	case m.view == ViewPosts && m.newPostBox.Visible():
		return m.styles.MutedText.Render("tab next field • enter create • esc cancel")
	}
	return m.help.View(m.keys)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return m.styles.Panel.Render(m.styles.Title.Render("Keys") + "\n\n" + h.View(m.keys))
}
