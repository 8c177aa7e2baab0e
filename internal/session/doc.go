// Package session owns the single logged-in identity of the DeployHQ client.
//
// A Store checks credentials against an in-memory Directory of accounts and
// keeps the public projection of the logged-in account under the
// "deployhq_user" storage key, so a session survives restarts. The
// directory itself is never persisted: accounts created with Signup exist
// only for the lifetime of the process, while their session record does
// outlive it.
//
// Front ends read State (or CurrentUser/IsLoading/IsAuthenticated) and may
// Subscribe to be told about every change. IsLoading is true until
// Initialize has run and while a Login or Signup call is in flight.
package session
