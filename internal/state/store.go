package state

import (
	"sync"

	"github.com/five82/bloglist/internal/blogapi"
	"github.com/five82/bloglist/internal/session"
)

// Stores groups the shared containers one application instance owns.
// It is created once by the composition root and injected everywhere else.
type Stores struct {
	Session      SessionStore
	Posts        PostStore
	Authors      AuthorStore
	Notification NotificationStore
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Session         session.Session
	HasSession      bool
	Posts           []blogapi.Post
	Authors         []blogapi.Author
	Notification    Notification
	HasNotification bool
}

// Snapshot returns a copy of every store. Each store is read under its own
// lock, so a snapshot taken mid-action may mix before and after states of
// different stores but never a torn read of one store.
func (s *Stores) Snapshot() Snapshot {
	snap := Snapshot{
		Posts:   s.Posts.All(),
		Authors: s.Authors.All(),
	}
	snap.Session, snap.HasSession = s.Session.Current()
	snap.Notification, snap.HasNotification = s.Notification.Current()
	return snap
}

// SessionStore holds the current authenticated identity, if any.
type SessionStore struct {
	mu      sync.RWMutex
	current *session.Session
}

// Set publishes a session.
func (s *SessionStore) Set(sess session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := sess
	s.current = &dup
}

// Clear removes the session.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the session and whether one exists.
func (s *SessionStore) Current() (session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return session.Session{}, false
	}
	return *s.current, true
}

// PostStore holds posts in insertion order.
type PostStore struct {
	mu    sync.RWMutex
	posts []blogapi.Post
}

// Replace swaps the whole collection.
func (s *PostStore) Replace(posts []blogapi.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = clonePosts(posts)
}

// Append adds a post at the end.
func (s *PostStore) Append(post blogapi.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, post.Clone())
}

// Update replaces the post with the same ID. It reports false when no post
// matches.
func (s *PostStore) Update(post blogapi.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			s.posts[i] = post.Clone()
			return true
		}
	}
	return false
}

// Remove deletes the post with the given ID, keeping the relative order of
// the rest. It reports false when no post matches.
func (s *PostStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the post with the given ID.
func (s *PostStore) Get(id string) (blogapi.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return blogapi.Post{}, false
}

// All returns a copy of every post.
func (s *PostStore) All() []blogapi.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.posts)
}

// AuthorStore holds the author directory. It is only ever replaced wholesale.
type AuthorStore struct {
	mu      sync.RWMutex
	authors []blogapi.Author
}

// Replace swaps the whole collection.
func (s *AuthorStore) Replace(authors []blogapi.Author) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors = cloneAuthors(authors)
}

// All returns a copy of every author.
func (s *AuthorStore) All() []blogapi.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAuthors(s.authors)
}

// Get returns a copy of the author with the given ID.
func (s *AuthorStore) Get(id string) (blogapi.Author, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.authors {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return blogapi.Author{}, false
}

func clonePosts(posts []blogapi.Post) []blogapi.Post {
	if len(posts) == 0 {
		return nil
	}
	dup := make([]blogapi.Post, len(posts))
	for i, p := range posts {
		dup[i] = p.Clone()
	}
	return dup
}

func cloneAuthors(authors []blogapi.Author) []blogapi.Author {
	if len(authors) == 0 {
		return nil
	}
	dup := make([]blogapi.Author, len(authors))
	for i, a := range authors {
		dup[i] = a.Clone()
	}
	return dup
}
