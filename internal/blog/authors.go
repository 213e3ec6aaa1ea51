package blog

import (
	"context"
	"fmt"
)

// LoadAuthors fetches the author directory and replaces the author store.
// It is idempotent.
func (s *Service) LoadAuthors(ctx context.Context) error {
	authors, err := s.api.FetchAuthors(ctx)
	if err != nil {
		s.fail(MsgAuthorsFailed, err)
		return fmt.Errorf("load authors: %w", err)
	}
	s.stores.Authors.Replace(authors)
	return nil
}
