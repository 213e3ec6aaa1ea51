package blog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewPost is the user-entered form for creating a post. The backend owns
// format rules; only blank title or url are refused locally.
type NewPost struct {
	Title  string `validate:"required"`
	Author string
	URL    string `validate:"required"`
}

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type comment struct {
	Text string `validate:"required"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// check validates v and folds field errors into a readable ErrInvalidInput.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), describeTag(fe.Tag())))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(parts, ", "))
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "required"
	default:
		return "invalid"
	}
}

func (p NewPost) trimmed() NewPost {
	return NewPost{
		Title:  strings.TrimSpace(p.Title),
		Author: strings.TrimSpace(p.Author),
		URL:    strings.TrimSpace(p.URL),
	}
}
