package blog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/bloglist/internal/blogapi"
)

// ConfirmFunc asks the user to confirm prompt. Returning false aborts.
type ConfirmFunc func(prompt string) bool

// AutoConfirm accepts every prompt. It is used by non-interactive callers
// that already obtained consent, such as `bloglist delete --yes`.
func AutoConfirm(string) bool { return true }

// LoadPosts fetches every post and replaces the post store.
func (s *Service) LoadPosts(ctx context.Context) error {
	if err := s.refreshPosts(ctx); err != nil {
		s.fail(MsgLoadFailed, err)
		return err
	}
	return nil
}

func (s *Service) refreshPosts(ctx context.Context) error {
	posts, err := s.api.FetchPosts(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	s.stores.Posts.Replace(posts)
	return nil
}

// CreatePost creates a post, appends the server's copy to the store and then
// reloads every post so server-assigned fields are reconciled. A failed reload
// leaves the appended post in place.
func (s *Service) CreatePost(ctx context.Context, in NewPost) (blogapi.Post, error) {
	in = in.trimmed()
	if err := s.check(in); err != nil {
		s.fail(MsgCreateFailed, err)
		return blogapi.Post{}, fmt.Errorf("create post: %w", err)
	}

	created, err := s.api.CreatePost(ctx, blogapi.NewPost{Title: in.Title, Author: in.Author, URL: in.URL})
	if err != nil {
		s.fail(MsgCreateFailed, err, zap.String("title", in.Title))
		return blogapi.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.stores.Posts.Append(created)

	if err := s.refreshPosts(ctx); err != nil {
		s.fail(MsgCreateFailed, err, zap.String("post_id", created.ID))
		return created, fmt.Errorf("create post: %w", err)
	}

	s.notify(fmt.Sprintf(createdFormat, in.Title, in.Author))
	s.log.Info("post created", zap.String("post_id", created.ID), zap.String("title", in.Title))
	return created, nil
}

// LikePost increments the like count of a post. The update call carries only
// the identifier; the locally incremented copy replaces the stored post once
// the call succeeds, whatever the server answers. Concurrent likes of the same
// post are not serialized and may lose increments.
func (s *Service) LikePost(ctx context.Context, id string) (blogapi.Post, error) {
	post, ok := s.stores.Posts.Get(id)
	if !ok {
		err := fmt.Errorf("like post %q: %w", id, ErrNotFound)
		s.fail(MsgLikeFailed, err)
		return blogapi.Post{}, err
	}
	liked := post.Clone()
	liked.Likes++

	if _, err := s.api.UpdatePost(ctx, id, nil); err != nil {
		s.fail(MsgLikeFailed, err, zap.String("post_id", id))
		return blogapi.Post{}, fmt.Errorf("like post: %w", err)
	}
	s.stores.Posts.Update(liked)
	s.log.Debug("post liked", zap.String("post_id", id), zap.Int("likes", liked.Likes))
	return liked, nil
}

// ConfirmPrompt is the question shown before deleting post.
func ConfirmPrompt(post blogapi.Post) string {
	return fmt.Sprintf(confirmFormat, post.Title, post.Author)
}

// DeletePost removes a post after confirm accepts the prompt. A nil confirm
// is treated as declined. Ownership is not checked here; the server decides.
func (s *Service) DeletePost(ctx context.Context, id string, confirm ConfirmFunc) error {
	post, ok := s.stores.Posts.Get(id)
	if !ok {
		err := fmt.Errorf("delete post %q: %w", id, ErrNotFound)
		s.fail(MsgDeleteFailed, err)
		return err
	}
	if confirm == nil || !confirm(ConfirmPrompt(post)) {
		return fmt.Errorf("delete post: %w", ErrCancelled)
	}

	if err := s.api.DeletePost(ctx, id); err != nil {
		s.fail(MsgDeleteFailed, err, zap.String("post_id", id))
		return fmt.Errorf("delete post: %w", err)
	}
	s.stores.Posts.Remove(id)
	s.log.Info("post deleted", zap.String("post_id", id))
	return nil
}

// AddComment appends text to a post's comments. Only the raw text is sent;
// the locally appended copy replaces the stored post once the call succeeds.
func (s *Service) AddComment(ctx context.Context, id, text string) (blogapi.Post, error) {
	text = strings.TrimSpace(text)
	if err := s.check(comment{Text: text}); err != nil {
		s.fail(MsgCommentFailed, err)
		return blogapi.Post{}, fmt.Errorf("add comment: %w", err)
	}
	post, ok := s.stores.Posts.Get(id)
	if !ok {
		err := fmt.Errorf("add comment to %q: %w", id, ErrNotFound)
		s.fail(MsgCommentFailed, err)
		return blogapi.Post{}, err
	}
	updated := post.Clone()
	updated.Comments = append(updated.Comments, text)

	if err := s.api.AddComment(ctx, id, text); err != nil {
		s.fail(MsgCommentFailed, err, zap.String("post_id", id))
		return blogapi.Post{}, fmt.Errorf("add comment: %w", err)
	}
	s.stores.Posts.Update(updated)
	return updated, nil
}

// CanDelete reports whether the current user owns post. It only decides
// whether to offer the action.
func (s *Service) CanDelete(post blogapi.Post) bool {
	sess, ok := s.stores.Session.Current()
	if !ok {
		return false
	}
	owner := post.OwnerName()
	return owner != "" && owner == strings.TrimSpace(sess.Name)
}

// SortByLikes returns a copy of posts ordered by likes, most liked first.
// Ties keep their store order.
func SortByLikes(posts []blogapi.Post) []blogapi.Post {
	sorted := make([]blogapi.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Likes > sorted[j].Likes
	})
	return sorted
}
