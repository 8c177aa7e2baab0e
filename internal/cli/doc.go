// Package cli provides the interactive DeployHQ console.
//
// It wires configuration, local storage, the session and catalog stores, and
// an interactive REPL. Typical flow: log in or sign up, then browse the
// catalog; builders can also submit agents, manage their submissions and see
// dashboard figures.
//
// Builder-only commands go through the route guard. When access is refused
// the command prints where the web front end would have redirected.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
