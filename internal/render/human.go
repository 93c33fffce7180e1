// Package render writes search results and session listings to a terminal,
// either as aligned human-readable text or as JSON.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nextlevelbuilder/sessgrep/internal/excerpt"
	"github.com/nextlevelbuilder/sessgrep/internal/search"
	"github.com/nextlevelbuilder/sessgrep/internal/sessions"
)

var (
	matchStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// Results prints one block per search hit followed by a summary line.
func Results(w io.Writer, resp *search.Response, color bool) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return
	}

	for _, r := range resp.Results {
		header := fmt.Sprintf("%s  %s  %s  %s",
			r.Project, shortID(r.SessionID), r.Role, formatTime(r.Timestamp))
		if color {
			header = headerStyle.Render(header)
		}
		fmt.Fprintln(w, header)
		fmt.Fprintln(w, Highlight(r.Text, r.MatchPositions, color))
		if r.Meta.ContentTruncated {
			note := truncationNote(r.Meta)
			if color {
				note = faintStyle.Render(note)
			}
			fmt.Fprintln(w, note)
		}
		fmt.Fprintln(w)
	}

	summary := fmt.Sprintf("%d result(s), ~%d tokens (%d sessions, %d messages scanned)",
		len(resp.Results), resp.EstimatedTokens, resp.SessionsScanned, resp.MessagesScanned)
	fmt.Fprintln(w, summary)
	if resp.BudgetExceeded {
		fmt.Fprintln(w, "Token budget reached; older results were dropped.")
	}
}

// Highlight emphasizes each match position inside an excerpt. Positions must
// be sorted and non-overlapping, which is what the excerptor produces.
func Highlight(text string, positions []excerpt.Range, color bool) string {
	if !color || len(positions) == 0 {
		return text
	}
	var b strings.Builder
	cursor := 0
	for _, p := range positions {
		if p.Start < cursor || p.End > len(text) {
			continue
		}
		b.WriteString(text[cursor:p.Start])
		b.WriteString(matchStyle.Render(text[p.Start:p.End]))
		cursor = p.End
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// SessionTable prints a session listing in aligned columns.
func SessionTable(w io.Writer, infos []sessions.SessionInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SESSION\tPROJECT\tMESSAGES\tMODIFIED\n")
	for _, s := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			s.ID,
			truncateCell(s.Project, 40),
			s.MessageCount,
			formatTime(s.Modified),
		)
	}
	tw.Flush()
}

// Transcript prints a full session, capping each message at maxLength bytes
// (0 means no cap).
func Transcript(w io.Writer, s *sessions.Session, maxLength int, color bool) {
	title := fmt.Sprintf("%s  %s  (%d messages)", s.Project, s.ID, len(s.Messages))
	if color {
		title = headerStyle.Render(title)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)

	for _, m := range s.Messages {
		role := fmt.Sprintf("[%s] %s", m.Role, formatTime(m.Timestamp))
		if color {
			role = faintStyle.Render(role)
		}
		fmt.Fprintln(w, role)
		limited := excerpt.Limit(m.Content, maxLength)
		fmt.Fprintln(w, limited.Text)
		fmt.Fprintln(w)
	}
}

func truncationNote(m excerpt.Meta) string {
	return fmt.Sprintf("  (%s excerpt, %d of %d bytes)",
		m.TruncationType, m.SnippetEnd-m.SnippetStart, m.OriginalLength)
}

// truncateCell trims a table cell by display width, not bytes, so wide
// runes do not break column alignment.
func truncateCell(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
