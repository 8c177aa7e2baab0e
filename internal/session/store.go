package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/deployhq/internal/common"
	"github.com/dmitrijs2005/deployhq/internal/logging"
	"github.com/dmitrijs2005/deployhq/internal/models"
	"github.com/dmitrijs2005/deployhq/internal/notify"
	"github.com/dmitrijs2005/deployhq/internal/storage"
	"github.com/google/uuid"
)

// State is a snapshot of the session as seen by front ends.
type State struct {
	User    *models.User
	Loading bool
}

func (s State) Authenticated() bool {
	return s.User != nil
}

// Store is the session service. Create it with NewStore and call Initialize
// once before making access decisions.
type Store struct {
	repo  storage.Repository
	log   logging.Logger
	dir   *Directory
	delay time.Duration
	sleep func(time.Duration)
	now   func() time.Time
	newID func() string

	mu          sync.RWMutex
	user        *models.User
	initialized bool
	inFlight    int

	hub notify.Hub[State]
}

type Option func(*Store)

// WithDelay sets the simulated latency of Login and Signup.
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithDirectory replaces the seeded account directory.
func WithDirectory(d *Directory) Option {
	return func(s *Store) { s.dir = d }
}

// WithClock overrides time.Now for account timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(repo storage.Repository, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		log:   logger.With("store", "session"),
		dir:   NewDirectory(SeedAccounts()...),
		sleep: time.Sleep,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores the persisted session. A corrupt value is deleted and
// the store starts logged out. Later calls are no-ops.
func (s *Store) Initialize(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}

	var u *models.User
	_, err := storage.LoadJSON(ctx, s.repo, common.SessionStorageKey, &u)
	switch {
	case errors.Is(err, common.ErrStorageCorrupt):
		s.log.Warn(ctx, "discarding stored session", "error", err)
		if err := s.repo.Delete(ctx, common.SessionStorageKey); err != nil {
			s.log.Error(ctx, "failed to remove stored session", "error", err)
		}
	case err != nil:
		s.log.Error(ctx, "failed to read stored session", "error", err)
	case u != nil:
		s.user = u
		s.log.Info(ctx, "session restored", "email", u.Email)
	}
	s.initialized = true
	s.mu.Unlock()

	s.publish()
}

// Login authenticates email/secret against the directory. On failure it
// returns common.ErrInvalidCredentials and the current session is kept.
func (s *Store) Login(ctx context.Context, email, secret string) error {
	ctx = context.WithoutCancel(ctx)
	s.begin()
	defer s.end()

	s.pause()

	acc, ok := s.dir.Match(email, secret)
	if !ok {
		s.log.Info(ctx, "login rejected", "email", email)
		return common.ErrInvalidCredentials
	}

	u := acc.Public()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, &u); err != nil {
		return err
	}
	s.user = &u
	s.log.Info(ctx, "logged in", "email", u.Email, "role", u.Role)
	return nil
}

// Signup registers a new in-memory account and logs it in. A taken email
// yields common.ErrDuplicateAccount with no state change.
func (s *Store) Signup(ctx context.Context, email, secret, name string, role models.Role) error {
	if !role.Valid() {
		return &common.ValidationError{Field: "role", Reason: "must be user or builder"}
	}

	ctx = context.WithoutCancel(ctx)
	s.begin()
	defer s.end()

	s.pause()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dir.Exists(email) {
		s.log.Info(ctx, "signup rejected", "email", email)
		return common.ErrDuplicateAccount
	}

	acc := models.Account{
		User: models.User{
			ID:        s.newID(),
			Email:     email,
			Name:      name,
			Role:      role,
			Avatar:    models.AvatarFor(name),
			CreatedAt: common.FormatTime(s.now()),
		},
		Secret: secret,
	}
	u := acc.Public()

	if err := s.save(ctx, &u); err != nil {
		return err
	}
	if err := s.dir.Add(acc); err != nil {
		return err
	}
	s.user = &u
	s.log.Info(ctx, "signed up", "email", u.Email, "role", u.Role)
	return nil
}

// Logout clears the session and its stored record. Storage failures are
// logged; the in-memory session is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	s.user = nil
	if err := s.repo.Delete(ctx, common.SessionStorageKey); err != nil {
		s.log.Error(ctx, "failed to remove stored session", "error", err)
	}
	s.mu.Unlock()

	s.log.Info(ctx, "logged out")
	s.publish()
}

// CurrentUser returns a copy of the logged-in user.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingLocked()
}

// State returns a consistent snapshot of user and loading flag.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Subscribe registers fn to receive a State after every change.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// Directory exposes the account directory, mainly for tests and tooling.
func (s *Store) Directory() *Directory {
	return s.dir
}

func (s *Store) save(ctx context.Context, u *models.User) error {
	if err := storage.SaveJSON(ctx, s.repo, common.SessionStorageKey, u); err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) pause() {
	if s.delay > 0 {
		s.sleep(s.delay)
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	s.publish()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
	s.publish()
}

func (s *Store) publish() {
	s.hub.Publish(s.State())
}

func (s *Store) loadingLocked() bool {
	return !s.initialized || s.inFlight > 0
}

func (s *Store) stateLocked() State {
	st := State{Loading: s.loadingLocked()}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}
