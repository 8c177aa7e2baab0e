package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/deployhq/internal/models"
	"github.com/dmitrijs2005/deployhq/internal/session"
)

func (a *App) getStatus() string {
	u, ok := a.session.CurrentUser()
	if !ok {
		return "(guest)"
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.Role)
}

// Root runs the interactive console until the user exits.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to DeployHQ (type 'help' for commands)")

	defer a.watch(ctx)()

	runREPL(ctx, a, a.getStatus, a.reader)
}

// watch attaches console notices to both stores and returns a function that
// detaches them.
func (a *App) watch(ctx context.Context) func() {
	loading := false
	unsubSession := a.session.Subscribe(func(st session.State) {
		if st.Loading && !loading {
			a.println("Loading...")
		}
		loading = st.Loading
	})
	unsubCatalog := a.catalog.Subscribe(func(subs []models.AgentSubmission) {
		a.log.Debug(ctx, "catalog changed", "count", len(subs))
	})
	return func() {
		unsubSession()
		unsubCatalog()
	}
}
