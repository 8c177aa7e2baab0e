// Package guard decides whether a front end may show a protected view given
// the current session.
package guard

import (
	"fmt"

	"github.com/dmitrijs2005/deployhq/internal/models"
	"github.com/dmitrijs2005/deployhq/internal/session"
)

// Redirect targets.
const (
	LoginPath   = "/auth/login"
	SignupPath  = "/auth/signup"
	BuilderPath = "/builder"
	AgentsPath  = "/agents"
)

type Outcome int

const (
	// Wait means the session is still loading; no decision can be made yet.
	Wait Outcome = iota
	Allow
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// State is the part of the session the guard looks at.
type State struct {
	Loading       bool
	Authenticated bool
	Role          models.Role
}

// FromSession adapts a session snapshot.
func FromSession(st session.State) State {
	g := State{Loading: st.Loading, Authenticated: st.Authenticated()}
	if st.User != nil {
		g.Role = st.User.Role
	}
	return g
}

// Route describes a protected view. An empty RequiredRole admits any
// authenticated user; an empty RedirectTo means LoginPath.
type Route struct {
	RequiredRole models.Role
	RedirectTo   string
}

type Decision struct {
	Outcome Outcome
	// Path is set when Outcome is Redirect.
	Path string
}

func (d Decision) String() string {
	if d.Outcome == Redirect {
		return "redirect " + d.Path
	}
	return d.Outcome.String()
}

// Decide applies the access rules of a protected route.
func Decide(st State, r Route) Decision {
	if st.Loading {
		return Decision{Outcome: Wait}
	}

	if !st.Authenticated {
		to := r.RedirectTo
		if to == "" {
			to = LoginPath
		}
		return Decision{Outcome: Redirect, Path: to}
	}

	if r.RequiredRole != "" && st.Role != r.RequiredRole {
		if r.RequiredRole == models.RoleBuilder {
			return Decision{Outcome: Redirect, Path: SignupPath}
		}
		if st.Role == models.RoleBuilder {
			return Decision{Outcome: Redirect, Path: BuilderPath}
		}
		return Decision{Outcome: Redirect, Path: AgentsPath}
	}

	return Decision{Outcome: Allow}
}
