package sessions

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	sessionA = "6f1c2a4e-9d0b-4c3f-8a21-0e5d7b9c1234"
	sessionB = "0b9e8d7c-6a5f-4e3d-2c1b-0a9f8e7d6c5b"
)

func writeSession(t *testing.T, dir, project, id, content string) string {
	t.Helper()
	projDir := filepath.Join(dir, project)
	if err := os.MkdirAll(projDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(projDir, id+".jsonl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write session: %v", err)
	}
	return path
}

const transcriptA = `{"type":"user","sessionId":"` + sessionA + `","uuid":"m1","timestamp":"2026-08-20T10:00:00Z","message":{"role":"user","content":"how do I fix the flaky websocket test"}}
{"type":"assistant","uuid":"m2","timestamp":"2026-08-20T10:00:05Z","message":{"role":"assistant","content":[{"type":"text","text":"The test races on connection setup."},{"type":"tool_use","name":"read_file"},{"type":"text","text":"Add a ready channel before dialing."}]}}
{"type":"summary","summary":"irrelevant"}
not json at all
{"type":"user","uuid":"m3","timestamp":"2026-08-20T10:01:00Z","message":{"role":"user","content":""}}
`

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "proj-one", sessionA, transcriptA)
	writeSession(t, dir, "proj-two", sessionB, `{"type":"user","message":{"role":"user","content":"hello"}}`)

	// Noise that discovery must ignore.
	writeSession(t, dir, "proj-one", "not-a-uuid", "{}")
	os.WriteFile(filepath.Join(dir, "stray.jsonl"), []byte("{}"), 0o644)

	files := Discover(dir)
	if len(files) != 2 {
		t.Fatalf("discovered %d files, want 2", len(files))
	}
	if files[0].Project != "proj-one" || files[0].ID != sessionA {
		t.Errorf("first file = %+v", files[0])
	}
	if files[1].Project != "proj-two" || files[1].ID != sessionB {
		t.Errorf("second file = %+v", files[1])
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	if files := Discover(filepath.Join(t.TempDir(), "nope")); files != nil {
		t.Errorf("missing root: got %v, want nil", files)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSession(t, dir, "proj", sessionA, transcriptA)
	info, _ := os.Stat(path)

	s, err := ParseFile(DiscoveredFile{Path: path, Project: "proj", ID: sessionA, Modified: info.ModTime()})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	// The summary record, the invalid line, and the empty-content turn are
	// all skipped.
	if len(s.Messages) != 2 {
		t.Fatalf("parsed %d messages, want 2", len(s.Messages))
	}
	if s.Messages[0].Role != "user" || s.Messages[0].Content != "how do I fix the flaky websocket test" {
		t.Errorf("first message = %+v", s.Messages[0])
	}
	// Text blocks are joined; the tool_use block is dropped.
	wantAssistant := "The test races on connection setup.\nAdd a ready channel before dialing."
	if s.Messages[1].Content != wantAssistant {
		t.Errorf("assistant content = %q, want %q", s.Messages[1].Content, wantAssistant)
	}
	wantTime := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	if !s.Messages[0].Timestamp.Equal(wantTime) {
		t.Errorf("timestamp = %v, want %v", s.Messages[0].Timestamp, wantTime)
	}
	if s.ID != sessionA {
		t.Errorf("session id = %q, want %q", s.ID, sessionA)
	}
}

func TestManager_ListAndFilter(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "proj-one", sessionA, transcriptA)
	writeSession(t, dir, "proj-two", sessionB, `{"type":"user","message":{"role":"user","content":"hello"}}`)

	mgr := NewManager(dir, nil)

	all := mgr.List("")
	if len(all) != 2 {
		t.Fatalf("listed %d sessions, want 2", len(all))
	}
	if all[0].MessageCount != 2 {
		t.Errorf("message count = %d, want 2", all[0].MessageCount)
	}

	one := mgr.List("proj-two")
	if len(one) != 1 || one[0].Project != "proj-two" {
		t.Errorf("filtered list = %+v", one)
	}
}

func TestManager_CacheServesUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSession(t, dir, "proj", sessionA, transcriptA)
	info, _ := os.Stat(path)
	file := DiscoveredFile{Path: path, Project: "proj", ID: sessionA, Modified: info.ModTime()}

	mgr := NewManager(dir, nil)
	first, err := mgr.Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := mgr.Load(file)
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if first != second {
		t.Error("unchanged file should be served from cache")
	}

	// A newer mtime invalidates the entry.
	stale := file
	stale.Modified = file.Modified.Add(time.Second)
	third, err := mgr.Load(stale)
	if err != nil {
		t.Fatalf("Load (stale): %v", err)
	}
	if third == first {
		t.Error("modified file should be re-parsed")
	}
}

func TestManager_Find(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "proj", sessionA, transcriptA)

	mgr := NewManager(dir, nil)
	s, err := mgr.Find(sessionA)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if s.ID != sessionA {
		t.Errorf("found session %q, want %q", s.ID, sessionA)
	}

	if _, err := mgr.Find("11111111-2222-3333-4444-555555555555"); err == nil {
		t.Error("expected error for unknown session")
	}
}
