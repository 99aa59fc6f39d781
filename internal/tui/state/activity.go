package state

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type ActivityStatus string

const (
	StatusSuccess ActivityStatus = "success"
	StatusError   ActivityStatus = "error"
	StatusInfo    ActivityStatus = "info"
	StatusPending ActivityStatus = "pending"
)

// Sources other than a tab name.
const (
	SourceSystem  = "system"
	SourceCommand = "command"
)

// ActivityEntry is an immutable record of something that happened.
type ActivityEntry struct {
	ID        string
	Timestamp time.Time
	Source    string
	Title     string
	Status    ActivityStatus
	Message   string
	Metadata  map[string]any
}

func (e ActivityEntry) Key() string { return e.ID }

func (e ActivityEntry) Document() any {
	doc := map[string]any{
		"id":        e.ID,
		"timestamp": e.Timestamp.UnixMilli(),
		"source":    e.Source,
		"title":     e.Title,
		"status":    string(e.Status),
	}
	if e.Message != "" {
		doc["message"] = e.Message
	}
	if e.Metadata != nil {
		doc["metadata"] = e.Metadata
	}
	return doc
}

// NewActivityEntry stamps an entry with now and an id of the form
// "<unix-millis>-<6 hex>".
func NewActivityEntry(now time.Time, source, title string, status ActivityStatus, message string, metadata map[string]any) ActivityEntry {
	return ActivityEntry{
		ID:        fmt.Sprintf("%d-%06x", now.UnixMilli(), rand.Uint32()&0xffffff),
		Timestamp: now,
		Source:    source,
		Title:     title,
		Status:    status,
		Message:   message,
		Metadata:  metadata,
	}
}
