package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/gridwell/mcp-pdf-tables/internal/pdf"
	"github.com/gridwell/mcp-pdf-tables/internal/table"
)

// ErrExtraction marks extraction failures surfaced by Load. Callers
// report these as warnings and keep the manager usable for further
// documents.
var ErrExtraction = errors.New("extraction failed")

// Manager creates sessions from PDF documents and keeps track of the live
// ones. Sessions never share state, so the registry lock is the only
// synchronization between them.
type Manager struct {
	pdfService *pdf.Service

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager on top of the given PDF service.
func NewManager(pdfService *pdf.Service) (*Manager, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	return &Manager{
		pdfService: pdfService,
		sessions:   make(map[string]*Session),
	}, nil
}

// Load extracts the tables of a PDF document and opens a session holding
// them. A document with zero recoverable tables still yields a session,
// so the client gets the "no tables found" signal instead of an error.
// Extraction failures are returned wrapped in ErrExtraction.
func (m *Manager) Load(path string, pages []int) (*Session, error) {
	result, err := m.pdfService.ExtractTables(pdf.ExtractTablesRequest{Path: path, Pages: pages})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	grids := make([]table.Grid, 0, len(result.Tables))
	for _, raw := range result.Tables {
		grids = append(grids, table.FromRaw(raw))
	}

	s := newSession(uuid.NewString(), path, grids, result.Warnings)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no session with id %s", id)
	}
	return s, nil
}

// Close removes a session from the registry.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("no session with id %s", id)
	}
	delete(m.sessions, id)
	return nil
}

// List returns snapshots of all live sessions ordered by creation time.
func (m *Manager) List() []Snapshot {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	snaps := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		snaps = append(snaps, s.Describe())
	}
	return snaps
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
