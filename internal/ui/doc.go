// Package ui is the Bubble Tea terminal interface of bloglist.
//
// The UI never talks to the API directly. Every action is a tea.Cmd that
// calls blog.Service on a goroutine; the service updates the stores and
// publishes notifications, and the model re-reads a state.Snapshot when the
// command finishes and on every tick. Rendering is a pure function of that
// snapshot plus local view state (cursor rows, open forms, prompts).
//
// # Views
//
//   - Login: shown whenever there is no session.
//   - Blogs: all posts, most liked first. "n" flips the Toggle that shows the
//     "Create new" form; a successful create closes it.
//   - Blog: one post with like, comment and, for the owner, remove. Removal
//     asks "Remove Blog <title> By <author>? [y/N]" first.
//   - Users and User: the author directory and one author's posts.
//
// A banner under the header shows the current notification, green for
// success and red for failure, until the store clears it.
//
// # Keys
//
//	tab         Blogs/Users
//	enter       open / submit
//	esc         back / cancel
//	j k g G     move
//	n           new blog form
//	l c d       like, comment, remove
//	r           reload
//	L           logout
//	T           cycle theme
//	?           help
//	q, ctrl+c   quit
package ui
