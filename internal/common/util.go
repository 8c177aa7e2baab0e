package common

import (
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// WipeByteArray zeroes b in place. Used for passwords read from the terminal.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// FormatTime formats t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

const submissionSuffixLen = 9

// NewSubmissionID builds "<unix millis><9 base36 chars>". The suffix comes
// from a random UUID so two ids minted in the same millisecond still differ.
func NewSubmissionID(now time.Time) string {
	u := uuid.New()
	suffix := new(big.Int).SetBytes(u[:]).Text(36)
	for len(suffix) < submissionSuffixLen {
		suffix = "0" + suffix
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + suffix[:submissionSuffixLen]
}
