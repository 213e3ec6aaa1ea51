package blog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Sync reloads posts and authors concurrently without publishing
// notifications. Background refreshers use it so a flaky backend does not
// flood the banner; the first error is returned for backoff decisions. One
// failing reload never cancels the other.
func (s *Service) Sync(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		return s.refreshPosts(ctx)
	})
	g.Go(func() error {
		authors, err := s.api.FetchAuthors(ctx)
		if err != nil {
			return fmt.Errorf("load authors: %w", err)
		}
		s.stores.Authors.Replace(authors)
		return nil
	})
	return g.Wait()
}
