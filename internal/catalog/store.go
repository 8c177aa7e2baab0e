package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/deployhq/internal/common"
	"github.com/dmitrijs2005/deployhq/internal/logging"
	"github.com/dmitrijs2005/deployhq/internal/models"
	"github.com/dmitrijs2005/deployhq/internal/notify"
	"github.com/dmitrijs2005/deployhq/internal/storage"
)

// Stats summarises one builder's submissions.
type Stats struct {
	Total     int
	Published int
	Pending   int
	// Revenue is the mock figure shown on the builder dashboard: price*100
	// summed over published submissions.
	Revenue float64
}

type Store struct {
	repo  storage.Repository
	log   logging.Logger
	delay time.Duration
	sleep func(time.Duration)
	now   func() time.Time
	newID func(time.Time) string

	once  sync.Once
	mu    sync.RWMutex
	items []models.AgentSubmission

	hub notify.Hub[[]models.AgentSubmission]
}

type Option func(*Store)

// WithDelay sets the simulated latency of SubmitAgent.
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(repo storage.Repository, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		log:   logger.With("store", "catalog"),
		sleep: time.Sleep,
		now:   time.Now,
		newID: common.NewSubmissionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the stored collection. It runs at most once; every other
// method calls it first.
func (s *Store) Initialize(ctx context.Context) {
	loaded := false
	s.once.Do(func() {
		s.load(context.WithoutCancel(ctx))
		loaded = true
	})
	if loaded {
		s.publish()
	}
}

func (s *Store) load(ctx context.Context) {
	var items []models.AgentSubmission
	found, err := storage.LoadJSON(ctx, s.repo, common.SubmissionsStorageKey, &items)
	if err != nil {
		s.log.Error(ctx, "failed to load submissions, starting empty", "error", err)
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	if found {
		s.log.Info(ctx, "submissions loaded", "count", len(items))
	}
}

// SubmitAgent validates p, waits the configured delay and appends a new
// pending submission. It returns the new id.
func (s *Store) SubmitAgent(ctx context.Context, p models.SubmissionPayload) (string, error) {
	ctx = context.WithoutCancel(ctx)
	s.Initialize(ctx)

	if s.delay > 0 {
		s.sleep(s.delay)
	}

	if err := validate(p); err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.indexByNameLocked(p.Name, p.BuilderInfo.Email) >= 0 {
		s.mu.Unlock()
		s.log.Info(ctx, "duplicate submission rejected", "name", p.Name, "builder", p.BuilderInfo.Email)
		return "", common.ErrDuplicateSubmission
	}

	now := s.now()
	sub := models.AgentSubmission{
		ID:              s.newID(now),
		Name:            p.Name,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Type:            p.Type,
		Category:        p.Category,
		APIURL:          p.APIURL,
		APIKey:          p.APIKey,
		Tags:            models.UniqueTrimmed(p.Tags),
		Pricing:         p.Pricing,
		Features:        models.UniqueTrimmed(p.Features),
		Status:          models.StatusPending,
		SubmittedAt:     common.FormatTime(now),
		SubmittedBy:     p.SubmittedBy,
		BuilderInfo:     p.BuilderInfo,
	}

	next := append(slices.Clip(s.items), sub)
	if err := s.saveLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("persist submissions: %w", err)
	}
	s.items = next
	s.mu.Unlock()

	s.log.Info(ctx, "agent submitted", "id", sub.ID, "name", sub.Name)
	s.publish()
	return sub.ID, nil
}

// SubmissionsByBuilder returns the builder's submissions in insertion order.
func (s *Store) SubmissionsByBuilder(email string) []models.AgentSubmission {
	s.Initialize(context.Background())

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AgentSubmission, 0)
	for _, sub := range s.items {
		if sub.BuilderInfo.Email == email {
			out = append(out, sub.Clone())
		}
	}
	return out
}

// UpdateSubmissionStatus sets the status of submission id. Unknown ids and
// statuses are ignored.
func (s *Store) UpdateSubmissionStatus(ctx context.Context, id string, status models.Status) {
	ctx = context.WithoutCancel(ctx)
	s.Initialize(ctx)

	if !status.Valid() {
		s.log.Debug(ctx, "ignoring unknown status", "id", id, "status", status)
		return
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug(ctx, "status update for unknown submission", "id", id)
		return
	}

	next := slices.Clone(s.items)
	next[i].Status = status
	if err := s.saveLocked(ctx, next); err != nil {
		s.mu.Unlock()
		s.log.Error(ctx, "failed to persist status update", "id", id, "error", err)
		return
	}
	s.items = next
	s.mu.Unlock()

	s.log.Info(ctx, "submission status updated", "id", id, "status", status)
	s.publish()
}

// DeleteSubmission removes submission id if present.
func (s *Store) DeleteSubmission(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)
	s.Initialize(ctx)

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug(ctx, "delete of unknown submission", "id", id)
		return
	}

	next := slices.Delete(slices.Clone(s.items), i, i+1)
	if err := s.saveLocked(ctx, next); err != nil {
		s.mu.Unlock()
		s.log.Error(ctx, "failed to persist delete", "id", id, "error", err)
		return
	}
	s.items = next
	s.mu.Unlock()

	s.log.Info(ctx, "submission deleted", "id", id)
	s.publish()
}

// Submissions returns a copy of the whole collection.
func (s *Store) Submissions() []models.AgentSubmission {
	s.Initialize(context.Background())

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Submission looks up one submission by id.
func (s *Store) Submission(id string) (models.AgentSubmission, error) {
	s.Initialize(context.Background())

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return models.AgentSubmission{}, fmt.Errorf("submission %s: %w", id, common.ErrNotFound)
	}
	return s.items[i].Clone(), nil
}

func (s *Store) BuilderStats(email string) Stats {
	var st Stats
	for _, sub := range s.SubmissionsByBuilder(email) {
		st.Total++
		switch sub.Status {
		case models.StatusPublished:
			st.Published++
			st.Revenue += sub.Pricing.Price * 100
		case models.StatusPending:
			st.Pending++
		}
	}
	return st
}

// Subscribe registers fn to receive the full collection after every change.
func (s *Store) Subscribe(fn func([]models.AgentSubmission)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func validate(p models.SubmissionPayload) error {
	switch {
	case p.Name == "":
		return common.Required("name")
	case p.Description == "":
		return common.Required("description")
	case p.APIURL == "":
		return common.Required("apiUrl")
	case p.Pricing.Price < 0:
		return &common.ValidationError{Field: "pricing.price", Reason: "must not be negative"}
	}
	return nil
}

func (s *Store) saveLocked(ctx context.Context, items []models.AgentSubmission) error {
	if items == nil {
		items = []models.AgentSubmission{}
	}
	return storage.SaveJSON(ctx, s.repo, common.SubmissionsStorageKey, items)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(sub models.AgentSubmission) bool {
		return sub.ID == id
	})
}

func (s *Store) indexByNameLocked(name, email string) int {
	return slices.IndexFunc(s.items, func(sub models.AgentSubmission) bool {
		return strings.EqualFold(sub.Name, name) && sub.BuilderInfo.Email == email
	})
}

func (s *Store) snapshotLocked() []models.AgentSubmission {
	out := make([]models.AgentSubmission, len(s.items))
	for i, sub := range s.items {
		out[i] = sub.Clone()
	}
	return out
}

func (s *Store) publish() {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()
	s.hub.Publish(snap)
}
