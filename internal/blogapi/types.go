package blogapi

import "strings"

// Post mirrors a blog entry returned by /api/blogs.
type Post struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Author   string     `json:"author"`
	URL      string     `json:"url"`
	Likes    int        `json:"likes"`
	Comments []string   `json:"comments"`
	User     *PostOwner `json:"user,omitempty"`
}

// PostOwner is the registered user who created a post.
type PostOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// OwnerName returns the owning user's display name, or "" when unknown.
func (p Post) OwnerName() string {
	if p.User == nil {
		return ""
	}
	return strings.TrimSpace(p.User.Name)
}

// Clone returns a deep copy so callers can mutate comments without touching
// shared state.
func (p Post) Clone() Post {
	dup := p
	if p.Comments != nil {
		dup.Comments = make([]string, len(p.Comments))
		copy(dup.Comments, p.Comments)
	}
	if p.User != nil {
		owner := *p.User
		dup.User = &owner
	}
	return dup
}

// NewPost is the payload for POST /api/blogs.
type NewPost struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Author mirrors an entry of /api/users.
type Author struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Posts    []PostRef `json:"blogs"`
}

// PostRef is the read-only projection of a post listed under its author.
type PostRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Clone returns a deep copy of the author.
func (a Author) Clone() Author {
	dup := a
	if a.Posts != nil {
		dup.Posts = make([]PostRef, len(a.Posts))
		copy(dup.Posts, a.Posts)
	}
	return dup
}

// Credentials is the payload for POST /api/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors the /api/login payload.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}
