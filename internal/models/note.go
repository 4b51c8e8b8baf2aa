// Package models defines the domain types for DeskNote.
package models

import "time"

// Entry is one timestamped note in the history log.
type Entry struct {
	Position  int       `json:"position"` // 0 is the newest entry
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
}
