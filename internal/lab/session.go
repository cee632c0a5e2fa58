// Package lab holds per-session workbench state: the configuration window, the
// current selection, the alert queue and the run state. Sessions are created
// when a client opens a project and dropped when it navigates away.
package lab

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"relevance-workbench/internal/alerts"
	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/storage"
	"relevance-workbench/internal/window"
)

// ErrSessionNotFound is returned for an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

const alertLimit = 50

// Runner runs one orchestrated attempt against a sink.
type Runner interface {
	Run(ctx context.Context, req runner.Request, sink runner.Sink) (*runner.Outcome, error)
}

// Session is one client's view of a project.
type Session struct {
	ID        string
	ProjectID string
	Backend   backend.Kind
	CreatedAt time.Time
	Window    *window.Window
	Alerts    *alerts.Queue

	running atomic.Bool

	mu       sync.RWMutex
	state    runner.State
	selected *storage.SearchConfiguration
}

// View is a serializable copy of a session.
type View struct {
	ID        string                       `json:"id"`
	ProjectID string                       `json:"projectId"`
	Backend   backend.Kind                 `json:"backend"`
	State     runner.State                 `json:"state"`
	Selected  *storage.SearchConfiguration `json:"selected"`
	Window    window.State                 `json:"window"`
	Alerts    []alerts.Alert               `json:"alerts"`
}

// SetState records the current run step.
func (s *Session) SetState(st runner.State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// State returns the current run step.
func (s *Session) State() runner.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Splice places a summary into the window.
func (s *Session) Splice(summary storage.SearchConfigurationSummary) {
	s.Window.Upsert(summary)
}

// Select marks cfg as the current selection.
func (s *Session) Select(cfg *storage.SearchConfiguration) {
	s.mu.Lock()
	s.selected = cfg
	s.mu.Unlock()
}

// Selected returns the current selection, or nil.
func (s *Session) Selected() *storage.SearchConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Alert queues a notification.
func (s *Session) Alert(level alerts.Level, message string) {
	s.Alerts.Push(level, message)
}

// Run executes req with r unless a run is already in flight for this session.
func (s *Session) Run(ctx context.Context, r Runner, req runner.Request) (*runner.Outcome, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, runner.ErrRunInProgress
	}
	defer s.running.Store(false)

	req.ProjectID = s.ProjectID
	req.Backend = s.Backend
	return r.Run(ctx, req, s)
}

// Running reports whether a run is in flight.
func (s *Session) Running() bool {
	return s.running.Load()
}

// View returns a copy of the session state.
func (s *Session) View() View {
	s.mu.RLock()
	state, selected := s.state, s.selected
	s.mu.RUnlock()
	return View{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		Backend:   s.Backend,
		State:     state,
		Selected:  selected,
		Window:    s.Window.Snapshot(),
		Alerts:    s.Alerts.List(),
	}
}

// Registry tracks open sessions.
type Registry struct {
	loader window.Loader
	size   int

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a Registry whose windows read from loader.
func NewRegistry(loader window.Loader, windowSize int) *Registry {
	return &Registry{
		loader:   loader,
		size:     windowSize,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session on projectID with its initial window loaded and the
// active configuration selected.
func (r *Registry) Open(ctx context.Context, projectID string, kind backend.Kind) (*Session, error) {
	w, err := window.Open(ctx, r.loader, projectID, r.size)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Backend:   kind,
		CreatedAt: time.Now().UTC(),
		Window:    w,
		Alerts:    alerts.NewQueue(alertLimit),
		state:     runner.StateIdle,
	}

	active, err := r.loader.Active(ctx, projectID)
	switch {
	case err == nil:
		s.selected = active
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to load active configuration: %w", err)
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close drops the session with id.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
