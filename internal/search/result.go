package search

import (
	"time"

	"github.com/nextlevelbuilder/sessgrep/internal/excerpt"
)

// Result is one matching message, already excerpted. Text and
// MatchPositions are in excerpt coordinates; Meta says what was omitted
// from the original message.
type Result struct {
	SessionID      string          `json:"sessionId"`
	Project        string          `json:"project"`
	Role           string          `json:"role"`
	Timestamp      time.Time       `json:"timestamp"`
	Path           string          `json:"path"`
	Text           string          `json:"text"`
	Meta           excerpt.Meta    `json:"metadata"`
	MatchPositions []excerpt.Range `json:"matchPositions,omitempty"`
}

// Response is the full outcome of one search call.
type Response struct {
	Results         []Result `json:"results"`
	BudgetExceeded  bool     `json:"budgetExceeded"`
	EstimatedTokens int      `json:"estimatedTokens"`
	SessionsScanned int      `json:"sessionsScanned"`
	MessagesScanned int      `json:"messagesScanned"`
}
