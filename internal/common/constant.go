package common

// Durable storage keys. Both stores own exactly one key each and never touch
// the other's.
const (
	SessionStorageKey     = "deployhq_user"
	SubmissionsStorageKey = "deployhq_agent_submissions"
)

// TimeLayout renders timestamps the way browser clients did (toISOString),
// so previously persisted values stay comparable.
const TimeLayout = "2006-01-02T15:04:05.000Z"
