package blog

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/five82/bloglist/internal/blogapi"
	"github.com/five82/bloglist/internal/session"
	"github.com/five82/bloglist/internal/state"
)

// Notification texts. Only create has a success message; its "A new" prefix
// is what marks it as a success.
const (
	MsgLoginFailed   = "Wrong Username or Password"
	MsgCreateFailed  = "Error could not create blog"
	MsgLoadFailed    = "Error could not load blogs"
	MsgLikeFailed    = "Error could not like blog"
	MsgDeleteFailed  = "Error could not remove blog"
	MsgCommentFailed = "Error could not add comment"
	MsgAuthorsFailed = "Error could not load users"

	createdFormat = "A new %s By %s"
	confirmFormat = "Remove Blog %s By %s"
)

// DefaultNotifyFor is how long notifications stay visible.
const DefaultNotifyFor = 5 * time.Second

var (
	// ErrAuth is returned when login fails for any reason.
	ErrAuth = errors.New("authentication failed")
	// ErrInvalidInput is returned when user input fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a post is not in the local store.
	ErrNotFound = errors.New("post not found")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")
)

// Service orchestrates every user action: local store update, remote call,
// reconciliation and notification.
type Service struct {
	api       blogapi.API
	stores    *state.Stores
	storage   session.Storage
	log       *zap.Logger
	notifyFor time.Duration
	validate  *validator.Validate
}

// Option customises a Service.
type Option func(*Service)

// WithLogger attaches a logger. Error detail never reaches notifications; it
// is logged here instead.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNotifyFor sets how long notifications stay visible. Zero keeps each
// one until the next replaces it.
func WithNotifyFor(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.notifyFor = d
		}
	}
}

// NewService wires the service to its collaborators.
func NewService(api blogapi.API, stores *state.Stores, storage session.Storage, opts ...Option) *Service {
	s := &Service{
		api:       api,
		stores:    stores,
		storage:   storage,
		log:       zap.NewNop(),
		notifyFor: DefaultNotifyFor,
		validate:  newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stores exposes the state containers the service mutates.
func (s *Service) Stores() *state.Stores {
	return s.stores
}

func (s *Service) notify(message string) {
	s.stores.Notification.Publish(message, s.notifyFor)
}

// fail publishes a failure notification and logs the underlying cause.
func (s *Service) fail(message string, err error, fields ...zap.Field) {
	s.notify(message)
	s.log.Warn(message, append(fields, zap.Error(err))...)
}
