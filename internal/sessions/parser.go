package sessions

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// maxLineBytes bounds a single transcript line. Tool results embedded in
// assistant turns can be enormous.
const maxLineBytes = 16 * 1024 * 1024

// ParseFile reads one JSONL session transcript. Lines that are blank, not
// valid JSON, or not user/assistant turns are skipped; only I/O failures
// are reported as errors.
func ParseFile(file DiscoveredFile) (*Session, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", file.Path, err)
	}
	defer f.Close()

	s := &Session{
		ID:       file.ID,
		Project:  file.Project,
		Path:     file.Path,
		Modified: file.Modified,
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !gjson.Valid(line) {
			continue
		}
		msg, ok := parseRecord(line)
		if !ok {
			continue
		}
		if s.ID == "" {
			s.ID = gjson.Get(line, "sessionId").Str
		}
		s.Messages = append(s.Messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read session %s: %w", file.Path, err)
	}
	return s, nil
}

// parseRecord extracts a user/assistant turn from one JSONL record.
func parseRecord(line string) (Message, bool) {
	kind := gjson.Get(line, "type").Str
	if kind != "user" && kind != "assistant" {
		return Message{}, false
	}

	role := gjson.Get(line, "message.role").Str
	if role == "" {
		role = kind
	}
	content := messageText(line)
	if content == "" {
		return Message{}, false
	}

	msg := Message{
		Role:    role,
		Content: content,
		UUID:    gjson.Get(line, "uuid").Str,
	}
	if ts := gjson.Get(line, "timestamp").Str; ts != "" {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			msg.Timestamp = parsed
		}
	}
	return msg, true
}

// messageText flattens message.content, which is either a plain string or
// an array of content blocks. Only text blocks carry searchable prose;
// tool_use and thinking blocks are skipped.
func messageText(line string) string {
	content := gjson.Get(line, "message.content")
	switch {
	case content.Type == gjson.String:
		return content.Str
	case content.IsArray():
		var parts []string
		content.ForEach(func(_, block gjson.Result) bool {
			if block.Get("type").Str == "text" {
				if text := block.Get("text").Str; text != "" {
					parts = append(parts, text)
				}
			}
			return true
		})
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}
