package dashboard

import (
	"time"

	"tankgraph/internal/models"
)

// Result caps per request kind.
const (
	fetchLimit     = 1000 // chart dataset
	probeLimit     = 10   // earliest-data discovery
	existenceLimit = 1    // pan pre-check
)

// Query is one read-API request. Exactly one of Hours or Start/End is set.
type Query struct {
	Start time.Time
	End   time.Time
	Hours int
	Limit int
}

// resolveQuery translates the active mode into a concrete query. Pure.
func resolveQuery(mode models.Mode) Query {
	if mode.IsAllTime() {
		return Query{
			Start: mode.Window.Start,
			End:   mode.Window.End,
			Limit: fetchLimit,
		}
	}
	return Query{
		Hours: mode.Hours,
		Limit: fetchLimit,
	}
}
