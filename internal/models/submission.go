package models

import (
	"slices"
	"strings"
)

// Status is the review state of a submission. Any status may follow any
// other; the stores do not enforce a workflow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// PriceType is the billing period of a listing.
type PriceType string

const (
	PriceMonth PriceType = "month"
	PriceWeek  PriceType = "week"
	PriceDay   PriceType = "day"
	PriceUsage PriceType = "usage"
	PriceFree  PriceType = "free"
)

type Pricing struct {
	Price     float64   `json:"price"`
	PriceType PriceType `json:"priceType"`
}

type BuilderInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
}

// AgentSubmission is one builder-authored listing awaiting or past review.
type AgentSubmission struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	LongDescription string      `json:"longDescription"`
	Type            string      `json:"type"`
	Category        string      `json:"category"`
	APIURL          string      `json:"apiUrl"`
	APIKey          string      `json:"apiKey"`
	Tags            []string    `json:"tags"`
	Pricing         Pricing     `json:"pricing"`
	Features        []string    `json:"features"`
	Status          Status      `json:"status"`
	SubmittedAt     string      `json:"submittedAt"`
	SubmittedBy     string      `json:"submittedBy"`
	BuilderInfo     BuilderInfo `json:"builderInfo"`
}

// Clone returns a copy that shares no slices with s.
func (s AgentSubmission) Clone() AgentSubmission {
	s.Tags = slices.Clone(s.Tags)
	s.Features = slices.Clone(s.Features)
	return s
}

// SubmissionPayload carries everything a builder provides; the store assigns
// id, timestamp and status.
type SubmissionPayload struct {
	Name            string
	Description     string
	LongDescription string
	Type            string
	Category        string
	APIURL          string
	APIKey          string
	Tags            []string
	Pricing         Pricing
	Features        []string
	SubmittedBy     string
	BuilderInfo     BuilderInfo
}

// UniqueTrimmed trims every item, drops blanks and repeats, and keeps the
// first-seen order. The result is never nil.
func UniqueTrimmed(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
