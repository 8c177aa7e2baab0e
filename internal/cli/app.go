package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/deployhq/internal/catalog"
	"github.com/dmitrijs2005/deployhq/internal/config"
	"github.com/dmitrijs2005/deployhq/internal/logging"
	"github.com/dmitrijs2005/deployhq/internal/models"
	"github.com/dmitrijs2005/deployhq/internal/session"
	"github.com/dmitrijs2005/deployhq/internal/storage"
)

type sessionService interface {
	Login(ctx context.Context, email, secret string) error
	Signup(ctx context.Context, email, secret, name string, role models.Role) error
	Logout(ctx context.Context)
	CurrentUser() (models.User, bool)
	State() session.State
	Subscribe(fn func(session.State)) (unsubscribe func())
}

type catalogService interface {
	SubmitAgent(ctx context.Context, p models.SubmissionPayload) (string, error)
	SubmissionsByBuilder(email string) []models.AgentSubmission
	UpdateSubmissionStatus(ctx context.Context, id string, status models.Status)
	DeleteSubmission(ctx context.Context, id string)
	Submissions() []models.AgentSubmission
	Submission(id string) (models.AgentSubmission, error)
	BuilderStats(email string) catalog.Stats
	Subscribe(fn func([]models.AgentSubmission)) (unsubscribe func())
}

type App struct {
	config  *config.Config
	log     logging.Logger
	session sessionService
	catalog catalogService
	reader  *bufio.Reader
	out     io.Writer
	db      *sql.DB
}

// NewApp opens local storage and restores both stores from it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}
	repo := storage.NewSQLiteRepository(db)

	ss := session.NewStore(repo, logger, session.WithDelay(c.AuthDelay))
	cs := catalog.NewStore(repo, logger, catalog.WithDelay(c.SubmitDelay))
	ss.Initialize(ctx)
	cs.Initialize(ctx)

	return &App{
		config:  c,
		log:     logger,
		session: ss,
		catalog: cs,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		db:      db,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "failed to close database", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.CurrentUser()
	return ok
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
