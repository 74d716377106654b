package models

import (
	"fmt"
	"strings"
	"time"
)

// Instant is a parsed wire timestamp. AssumedUTC records that the serialized
// form carried no zone marker and UTC was inferred rather than stated, so call
// sites and tests can tell the two apart.
type Instant struct {
	Time       time.Time
	AssumedUTC bool
}

// ParseInstant parses a serialized timestamp as UTC. A value with an explicit
// zone is honored and converted to UTC. A value without one is never read as
// local time: a "Z" marker is appended before parsing and the result is
// flagged AssumedUTC.
func ParseInstant(s string) (Instant, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Instant{Time: t.UTC()}, nil
	}

	// Zone-less ISO form such as "2006-01-02T15:04:05[.frac]".
	if t, err := time.Parse(time.RFC3339Nano, s+"Z"); err == nil {
		return Instant{Time: t.UTC(), AssumedUTC: true}, nil
	}

	return Instant{}, fmt.Errorf("invalid timestamp %q: expected RFC3339 or zone-less ISO form", s)
}
