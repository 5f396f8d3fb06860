// Package history records every panel fetch in the local database.
package history

import (
	"time"

	"github.com/ziadkadry99/apidash/internal/panels"
)

// Source identifies which surface triggered a fetch.
type Source string

const (
	SourceHTTP      Source = "http"
	SourceWebSocket Source = "websocket"
	SourceCLI       Source = "cli"
	SourceMCP       Source = "mcp"
)

// Entry is one recorded fetch.
type Entry struct {
	ID         string    `json:"id"`
	Panel      string    `json:"panel"`
	OK         bool      `json:"ok"`
	Invalid    bool      `json:"invalid"`
	Message    string    `json:"message,omitempty"`
	Error      string    `json:"error,omitempty"`
	Source     Source    `json:"source"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// PanelStats aggregates the fetches of one panel.
type PanelStats struct {
	Panel         string  `json:"panel"`
	Successes     int     `json:"successes"`
	Failures      int     `json:"failures"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

// FromResult converts a panel result into an entry.
func FromResult(res panels.Result, source Source) Entry {
	e := Entry{
		Panel:      res.PanelID,
		OK:         res.OK,
		Invalid:    res.Invalid,
		Source:     source,
		DurationMS: res.Duration.Milliseconds(),
	}
	if !res.OK {
		e.Message = res.Message
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	return e
}
