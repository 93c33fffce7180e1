package sessions

import (
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize is the number of parsed sessions kept in memory. Repeated
// searches over the same projects dir mostly re-read the same files.
const cacheSize = 128

type cachedSession struct {
	modified time.Time
	session  *Session
}

// Manager lists and loads session transcripts from a projects directory,
// caching parsed sessions keyed by path and invalidated by mtime. The cache
// lives here, in the reader, so the excerpting core stays stateless.
type Manager struct {
	projectsDir string
	cache       *lru.Cache[string, cachedSession]
	log         *slog.Logger
}

func NewManager(projectsDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	cache, _ := lru.New[string, cachedSession](cacheSize)
	return &Manager{
		projectsDir: projectsDir,
		cache:       cache,
		log:         logger,
	}
}

// Files returns every discovered session file, sorted by path.
func (m *Manager) Files() []DiscoveredFile {
	return Discover(m.projectsDir)
}

// List returns listing info for every session, optionally filtered by
// project name. Sessions that fail to parse are skipped with a debug log.
func (m *Manager) List(projectFilter string) []SessionInfo {
	var infos []SessionInfo
	for _, file := range m.Files() {
		if projectFilter != "" && file.Project != projectFilter {
			continue
		}
		s, err := m.Load(file)
		if err != nil {
			m.log.Debug("skipping unreadable session", "path", file.Path, "error", err)
			continue
		}
		infos = append(infos, SessionInfo{
			ID:           s.ID,
			Project:      s.Project,
			Path:         s.Path,
			MessageCount: len(s.Messages),
			Modified:     s.Modified,
		})
	}
	return infos
}

// Load parses one session file, serving cached results while the file is
// unchanged on disk.
func (m *Manager) Load(file DiscoveredFile) (*Session, error) {
	if cached, ok := m.cache.Get(file.Path); ok && cached.modified.Equal(file.Modified) {
		return cached.session, nil
	}
	s, err := ParseFile(file)
	if err != nil {
		return nil, err
	}
	m.cache.Add(file.Path, cachedSession{modified: file.Modified, session: s})
	return s, nil
}

// Find loads a session by ID.
func (m *Manager) Find(id string) (*Session, error) {
	for _, file := range m.Files() {
		if file.ID == id {
			return m.Load(file)
		}
	}
	return nil, fmt.Errorf("session %s not found", id)
}
