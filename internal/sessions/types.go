// Package sessions discovers and parses agent session transcripts: one
// directory per project, one JSONL file per session, one JSON record per
// line. Content is handed to callers as opaque text; unreadable lines are
// skipped rather than failing the whole session.
package sessions

import "time"

// Message is one user or assistant turn in a session transcript.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	UUID      string    `json:"uuid,omitempty"`
}

// Session is a fully parsed transcript.
type Session struct {
	ID       string    `json:"id"`
	Project  string    `json:"project"`
	Path     string    `json:"path"`
	Messages []Message `json:"messages"`
	Modified time.Time `json:"modified"`
}

// SessionInfo is the listing view of a session, cheap enough to build for
// every discovered file.
type SessionInfo struct {
	ID           string    `json:"id"`
	Project      string    `json:"project"`
	Path         string    `json:"path"`
	MessageCount int       `json:"messageCount"`
	Modified     time.Time `json:"modified"`
}

// DiscoveredFile is one session file found on disk, before parsing.
type DiscoveredFile struct {
	Path     string
	Project  string
	ID       string
	Modified time.Time
}
