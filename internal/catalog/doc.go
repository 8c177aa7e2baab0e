// Package catalog keeps the agent submissions made by builders.
//
// The whole collection lives in memory and is written back as one JSON array
// under the "deployhq_agent_submissions" storage key after every change. It
// is read from storage once, on first use.
//
// A submission is unique per (case-insensitive name, builder email). Status
// changes are unconstrained: any status may replace any other.
package catalog
