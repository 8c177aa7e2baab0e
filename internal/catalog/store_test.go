package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/deployhq/internal/common"
	"github.com/dmitrijs2005/deployhq/internal/logging"
	"github.com/dmitrijs2005/deployhq/internal/models"
	"github.com/dmitrijs2005/deployhq/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.UTC)

func newRepo(t *testing.T) storage.Repository {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLiteRepository(db)
}

func newStore(t *testing.T, repo storage.Repository) *Store {
	t.Helper()
	s := NewStore(repo, logging.Nop(), WithClock(func() time.Time { return fixedNow }))
	n := 0
	s.newID = func(time.Time) string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func payload(name, email string) models.SubmissionPayload {
	return models.SubmissionPayload{
		Name:        name,
		Description: "d",
		APIURL:      "https://x",
		Pricing:     models.Pricing{Price: 10, PriceType: models.PriceMonth},
		SubmittedBy: "u-" + email,
		BuilderInfo: models.BuilderInfo{Name: "B", Email: email},
	}
}

type failingRepo struct {
	storage.Repository
}

func (failingRepo) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestSubmitAgent_Scenario(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newRepo(t))

	id, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	sub, err := s.Submission(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, sub.Status)
	assert.Equal(t, "2025-03-04T05:06:07.008Z", sub.SubmittedAt)

	_, err = s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.ErrorIs(t, err, common.ErrDuplicateSubmission)

	mine := s.SubmissionsByBuilder("b@x.com")
	require.Len(t, mine, 1)
	assert.Equal(t, "Bot1", mine[0].Name)
}

func TestSubmitAgent_Uniqueness(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newRepo(t))

	_, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	_, err = s.SubmitAgent(ctx, payload("bot1", "b@x.com"))
	assert.ErrorIs(t, err, common.ErrDuplicateSubmission, "name comparison ignores case")

	_, err = s.SubmitAgent(ctx, payload("Bot1", "c@x.com"))
	assert.NoError(t, err, "other builders may reuse a name")

	_, err = s.SubmitAgent(ctx, payload("Bot1", "B@x.com"))
	assert.NoError(t, err, "builder email comparison is exact")

	assert.Len(t, s.Submissions(), 3)
}

func TestSubmitAgent_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SubmissionPayload)
		field  string
	}{
		{"missing name", func(p *models.SubmissionPayload) { p.Name = "" }, "name"},
		{"missing description", func(p *models.SubmissionPayload) { p.Description = "" }, "description"},
		{"missing api url", func(p *models.SubmissionPayload) { p.APIURL = "" }, "apiUrl"},
		{"negative price", func(p *models.SubmissionPayload) { p.Pricing.Price = -1 }, "pricing.price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo(t)
			s := newStore(t, repo)

			p := payload("Bot1", "b@x.com")
			tt.mutate(&p)

			_, err := s.SubmitAgent(context.Background(), p)
			require.ErrorIs(t, err, common.ErrValidation)

			var verr *common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)

			assert.Empty(t, s.Submissions())
			raw, err := repo.Get(context.Background(), common.SubmissionsStorageKey)
			require.NoError(t, err)
			assert.Nil(t, raw)
		})
	}
}

func TestSubmitAgent_NormalizesLists(t *testing.T) {
	s := newStore(t, newRepo(t))

	p := payload("Bot1", "b@x.com")
	p.Tags = []string{" ai ", "", "nlp", "ai", "  "}
	p.Features = nil

	id, err := s.SubmitAgent(context.Background(), p)
	require.NoError(t, err)

	sub, err := s.Submission(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"ai", "nlp"}, sub.Tags)
	assert.Equal(t, []string{}, sub.Features)
}

func TestSubmitAgent_DelayRunsBeforeResult(t *testing.T) {
	s := NewStore(newRepo(t), logging.Nop(), WithDelay(1500*time.Millisecond))

	var slept []time.Duration
	s.sleep = func(d time.Duration) {
		slept = append(slept, d)
		assert.Empty(t, s.Submissions(), "nothing is appended before the delay ends")
	}

	_, err := s.SubmitAgent(context.Background(), payload("Bot1", "b@x.com"))
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, slept)
}

func TestSubmitAgent_PersistFailure(t *testing.T) {
	s := newStore(t, failingRepo{Repository: newRepo(t)})

	_, err := s.SubmitAgent(context.Background(), payload("Bot1", "b@x.com"))
	require.ErrorContains(t, err, "persist submissions")
	assert.Empty(t, s.Submissions())
}

func TestSubmitAgent_RealIDs(t *testing.T) {
	s := NewStore(newRepo(t), logging.Nop())

	a, err := s.SubmitAgent(context.Background(), payload("Bot1", "b@x.com"))
	require.NoError(t, err)
	b, err := s.SubmitAgent(context.Background(), payload("Bot2", "b@x.com"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^[0-9]+[0-9a-z]{9}$`, a)
}

func TestSubmissionsByBuilder_QueryCorrectness(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newRepo(t))

	for _, p := range []models.SubmissionPayload{
		payload("A", "b@x.com"),
		payload("B", "c@x.com"),
		payload("C", "b@x.com"),
		payload("D", "c@x.com"),
		payload("E", "b@x.com"),
	} {
		_, err := s.SubmitAgent(ctx, p)
		require.NoError(t, err)
	}
	s.DeleteSubmission(ctx, "id-3")

	names := func(subs []models.AgentSubmission) []string {
		out := []string{}
		for _, sub := range subs {
			out = append(out, sub.Name)
		}
		return out
	}

	assert.Equal(t, []string{"A", "E"}, names(s.SubmissionsByBuilder("b@x.com")))
	assert.Equal(t, []string{"B", "D"}, names(s.SubmissionsByBuilder("c@x.com")))
	assert.Empty(t, s.SubmissionsByBuilder("nobody@x.com"))
	assert.NotNil(t, s.SubmissionsByBuilder("nobody@x.com"))
}

func TestSubmissionsByBuilder_ReturnsCopies(t *testing.T) {
	s := newStore(t, newRepo(t))
	p := payload("Bot1", "b@x.com")
	p.Tags = []string{"ai"}
	_, err := s.SubmitAgent(context.Background(), p)
	require.NoError(t, err)

	got := s.SubmissionsByBuilder("b@x.com")
	got[0].Tags[0] = "mutated"
	got[0].Status = models.StatusRejected

	again := s.SubmissionsByBuilder("b@x.com")
	assert.Equal(t, "ai", again[0].Tags[0])
	assert.Equal(t, models.StatusPending, again[0].Status)
}

func TestUpdateSubmissionStatus_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := newStore(t, repo)

	id, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)
	before, _ := s.Submission(id)

	s.UpdateSubmissionStatus(ctx, id, models.StatusApproved)
	once := s.Submissions()
	rawOnce, err := repo.Get(ctx, common.SubmissionsStorageKey)
	require.NoError(t, err)

	s.UpdateSubmissionStatus(ctx, id, models.StatusApproved)
	twice := s.Submissions()
	rawTwice, err := repo.Get(ctx, common.SubmissionsStorageKey)
	require.NoError(t, err)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second update changed state (-once +twice):\n%s", diff)
	}
	assert.JSONEq(t, string(rawOnce), string(rawTwice))

	after := twice[0]
	assert.Equal(t, models.StatusApproved, after.Status)
	after.Status = before.Status
	assert.Equal(t, before, after, "only the status changes")
}

func TestUpdateSubmissionStatus_AnyTransition(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newRepo(t))
	id, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	for _, st := range []models.Status{models.StatusPublished, models.StatusPending, models.StatusRejected, models.StatusApproved} {
		s.UpdateSubmissionStatus(ctx, id, st)
		sub, _ := s.Submission(id)
		assert.Equal(t, st, sub.Status)
	}
}

func TestUpdateSubmissionStatus_Ignored(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newRepo(t))
	id, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)
	want := s.Submissions()

	s.UpdateSubmissionStatus(ctx, "missing", models.StatusPublished)
	s.UpdateSubmissionStatus(ctx, id, models.Status("archived"))

	assert.Equal(t, want, s.Submissions())
}

func TestUpdateSubmissionStatus_PersistFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := newStore(t, repo)
	id, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	s.repo = failingRepo{Repository: repo}
	s.UpdateSubmissionStatus(ctx, id, models.StatusPublished)
	s.DeleteSubmission(ctx, id)

	sub, err := s.Submission(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, sub.Status)
}

func TestDeleteSubmission(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := newStore(t, repo)

	id, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	s.DeleteSubmission(ctx, "missing")
	assert.Len(t, s.Submissions(), 1)

	s.DeleteSubmission(ctx, id)
	assert.Empty(t, s.Submissions())
	_, err = s.Submission(id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	raw, err := repo.Get(ctx, common.SubmissionsStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	_, err = s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	assert.NoError(t, err, "name is free again after delete")
}

func TestCatalog_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := newStore(t, repo)

	p := payload("Bot1", "b@x.com")
	p.Tags = []string{"ai"}
	p.BuilderInfo.Company = "Acme"
	_, err := s.SubmitAgent(ctx, p)
	require.NoError(t, err)
	_, err = s.SubmitAgent(ctx, payload("Bot2", "c@x.com"))
	require.NoError(t, err)

	reloaded := newStore(t, repo)
	if diff := cmp.Diff(s.Submissions(), reloaded.Submissions()); diff != "" {
		t.Errorf("reloaded collection differs (-want +got):\n%s", diff)
	}
}

func TestCatalog_StoredLayout(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := newStore(t, repo)
	_, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	raw, err := repo.Get(ctx, common.SubmissionsStorageKey)
	require.NoError(t, err)

	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	for _, key := range []string{"id", "apiUrl", "longDescription", "submittedAt", "submittedBy", "builderInfo", "pricing"} {
		assert.Contains(t, stored[0], key)
	}
	assert.Equal(t, "pending", stored[0]["status"])
}

func TestInitialize_CorruptValue(t *testing.T) {
	for _, raw := range []string{`[{"id":`, `{"id":"x"}`, `42`} {
		t.Run(raw, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Set(ctx, common.SubmissionsStorageKey, []byte(raw)))

			s := newStore(t, repo)
			require.NotPanics(t, func() { s.Initialize(ctx) })
			assert.Empty(t, s.Submissions())

			_, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
			require.NoError(t, err)

			stored, err := repo.Get(ctx, common.SubmissionsStorageKey)
			require.NoError(t, err)
			var subs []models.AgentSubmission
			require.NoError(t, json.Unmarshal(stored, &subs))
			assert.Len(t, subs, 1)
		})
	}
}

func TestInitialize_Lazy(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	first := newStore(t, repo)
	_, err := first.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	second := newStore(t, repo)
	assert.Len(t, second.SubmissionsByBuilder("b@x.com"), 1, "first read loads storage")

	_, err = first.SubmitAgent(ctx, payload("Bot2", "b@x.com"))
	require.NoError(t, err)
	second.Initialize(ctx)
	assert.Len(t, second.Submissions(), 1, "storage is read once")
}

func TestBuilderStats(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newRepo(t))

	for i, price := range []float64{10, 25.5, 0} {
		p := payload(fmt.Sprintf("Bot%d", i), "b@x.com")
		p.Pricing.Price = price
		_, err := s.SubmitAgent(ctx, p)
		require.NoError(t, err)
	}
	_, err := s.SubmitAgent(ctx, payload("Other", "c@x.com"))
	require.NoError(t, err)

	s.UpdateSubmissionStatus(ctx, "id-1", models.StatusPublished)
	s.UpdateSubmissionStatus(ctx, "id-2", models.StatusPublished)
	s.UpdateSubmissionStatus(ctx, "id-4", models.StatusPublished)

	assert.Equal(t, Stats{Total: 3, Published: 2, Pending: 1, Revenue: 3550}, s.BuilderStats("b@x.com"))
	assert.Equal(t, Stats{}, s.BuilderStats("nobody@x.com"))
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newRepo(t))

	var counts []int
	unsub := s.Subscribe(func(subs []models.AgentSubmission) { counts = append(counts, len(subs)) })

	id, err := s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.NoError(t, err)
	_, err = s.SubmitAgent(ctx, payload("Bot1", "b@x.com"))
	require.Error(t, err)
	s.UpdateSubmissionStatus(ctx, id, models.StatusApproved)
	s.DeleteSubmission(ctx, id)
	unsub()
	_, err = s.SubmitAgent(ctx, payload("Bot2", "b@x.com"))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 1, 0}, counts)
}

func TestSubscribe_CallbackMayReadStore(t *testing.T) {
	s := newStore(t, newRepo(t))

	var seen []int
	s.Subscribe(func([]models.AgentSubmission) {
		seen = append(seen, len(s.Submissions()))
	})

	s.Initialize(context.Background())
	_, err := s.SubmitAgent(context.Background(), payload("Bot1", "b@x.com"))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, seen)
}
