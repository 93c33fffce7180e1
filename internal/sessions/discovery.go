package sessions

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Discover finds session files under projectsDir. Layout is one
// subdirectory per project containing <session-uuid>.jsonl files; anything
// that does not look like a session file is ignored. An unreadable root
// yields an empty result, matching the advisory error model of the rest of
// the pipeline.
func Discover(projectsDir string) []DiscoveredFile {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil
	}

	var files []DiscoveredFile
	for _, entry := range entries {
		if !isDirOrSymlink(entry, projectsDir) {
			continue
		}
		projDir := filepath.Join(projectsDir, entry.Name())
		sessionFiles, err := os.ReadDir(projDir)
		if err != nil {
			continue
		}
		for _, sf := range sessionFiles {
			if sf.IsDir() {
				continue
			}
			name := sf.Name()
			stem, ok := strings.CutSuffix(name, ".jsonl")
			if !ok {
				continue
			}
			if uuid.Validate(stem) != nil {
				continue
			}
			path := filepath.Join(projDir, name)
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			files = append(files, DiscoveredFile{
				Path:     path,
				Project:  entry.Name(),
				ID:       stem,
				Modified: info.ModTime(),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// isDirOrSymlink reports whether the entry is a directory or a symlink
// resolving to one.
func isDirOrSymlink(entry os.DirEntry, parentDir string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(parentDir, entry.Name()))
	return err == nil && fi.IsDir()
}
