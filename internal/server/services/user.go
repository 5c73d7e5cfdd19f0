// Package services contains server-side business logic. This file implements
// UserService, which runs the signup and login protocols against a users.Store.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/flatauth/internal/common"
	"github.com/dmitrijs2005/flatauth/internal/logging"
	"github.com/dmitrijs2005/flatauth/internal/server/models"
	"github.com/dmitrijs2005/flatauth/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Signup: append a new user to the collection
// - Login: check credentials against the stored record
//
// Every load/modify/save cycle runs under one mutex, so concurrent signups
// through the same service never overwrite each other. Writers in other
// processes are not coordinated.
type UserService struct {
	mu       sync.Mutex
	store    users.Store
	logger   logging.Logger
	now      func() time.Time
	failOpen bool
}

type Option func(*UserService)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *UserService) {
		s.now = now
	}
}

// WithFailOpen controls what happens when the store cannot be read or holds
// corrupt content. When enabled (the default) the service logs a warning and
// proceeds with an empty collection; a following signup then overwrites the
// unreadable data.
func WithFailOpen(failOpen bool) Option {
	return func(s *UserService) {
		s.failOpen = failOpen
	}
}

// NewUserService constructs a UserService over store.
func NewUserService(store users.Store, logger logging.Logger, opts ...Option) *UserService {
	s := &UserService{
		store:    store,
		logger:   logger,
		now:      time.Now,
		failOpen: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup registers email with password. It returns common.ErrMissingField
// when either value is empty and common.ErrEmailConflict when the email is
// already taken. The password is stored as given.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := users.FindByEmail(list, email); ok {
		return nil, common.ErrEmailConflict
	}

	user := models.NewUser(email, password, s.now())
	list = append(list, user)

	if err := s.store.SaveAll(ctx, list); err != nil {
		s.logger.Error(ctx, "saving users failed", "email", email, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "user signed up", "email", email)
	return &user, nil
}

// Login checks password against the record stored for email.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingField
	}

	s.mu.Lock()
	list, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	user, ok := users.FindByEmail(list, email)
	if !ok {
		return nil, common.ErrUserNotFound
	}

	if user.Password != password {
		return nil, common.ErrPasswordMismatch
	}

	s.logger.Info(ctx, "user logged in", "email", email)
	return &user, nil
}

func (s *UserService) load(ctx context.Context) ([]models.User, error) {
	list, err := s.store.LoadAll(ctx)
	if err == nil {
		return list, nil
	}

	unreadable := errors.Is(err, common.ErrCorruptStore) || errors.Is(err, common.ErrStorageRead)
	if s.failOpen && unreadable {
		s.logger.Warn(ctx, "user store unreadable, continuing with an empty collection", "error", err)
		return []models.User{}, nil
	}

	s.logger.Error(ctx, "loading users failed", "error", err)
	return nil, err
}
