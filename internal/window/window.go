// Package window keeps a contiguous slice of a project's configuration
// sequence in memory and grows it on demand in either direction.
package window

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"relevance-workbench/internal/storage"
)

// DefaultSize is the initial width of a window and the page size of each load.
const DefaultSize = 10

// ErrLoadInProgress is returned when a load in the same direction is still pending.
var ErrLoadInProgress = errors.New("window load already in progress")

// Loader is the subset of configuration storage a window reads from.
type Loader interface {
	Count(ctx context.Context, projectID string) (int, error)
	Active(ctx context.Context, projectID string) (*storage.SearchConfiguration, error)
	ListAround(ctx context.Context, projectID string, center, width int) ([]storage.SearchConfigurationSummary, error)
	ListWindow(ctx context.Context, projectID, refID string, direction storage.Direction, limit int) ([]storage.SearchConfigurationSummary, error)
}

// ParseDirection accepts "left" or "right".
func ParseDirection(s string) (storage.Direction, error) {
	switch d := storage.Direction(s); d {
	case storage.DirectionLeft, storage.DirectionRight:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// State is a point-in-time copy of a window.
type State struct {
	Items          []storage.SearchConfigurationSummary `json:"items"`
	TotalCount     int                                  `json:"totalCount"`
	AllLeftLoaded  bool                                 `json:"allLeftLoaded"`
	AllRightLoaded bool                                 `json:"allRightLoaded"`
	LoadingLeft    bool                                 `json:"loadingLeft"`
	LoadingRight   bool                                 `json:"loadingRight"`
}

// Window holds summaries ordered ascending by index with no gaps.
//
// Loads in opposite directions may overlap. The mutex is never held across a
// loader call, and each splice re-reads the current boundary.
type Window struct {
	loader    Loader
	projectID string
	pageSize  int

	mu           sync.Mutex
	items        []storage.SearchConfigurationSummary
	total        int
	loadingLeft  bool
	loadingRight bool
}

// Open loads the initial window, ending at the active configuration when there
// is one and at the newest configuration otherwise.
func Open(ctx context.Context, loader Loader, projectID string, size int) (*Window, error) {
	if size <= 0 {
		size = DefaultSize
	}
	w := &Window{
		loader:    loader,
		projectID: projectID,
		pageSize:  size,
		items:     []storage.SearchConfigurationSummary{},
	}

	total, err := loader.Count(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count configurations: %w", err)
	}
	w.total = total
	if total == 0 {
		return w, nil
	}

	center := total - 1
	active, err := loader.Active(ctx, projectID)
	switch {
	case err == nil:
		center = active.Index
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to load active configuration: %w", err)
	}

	items, err := loader.ListAround(ctx, projectID, center, size)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial window: %w", err)
	}
	w.items = append(w.items, items...)
	return w, nil
}

// ProjectID returns the project whose sequence the window browses.
func (w *Window) ProjectID() string {
	return w.projectID
}

// LoadMore fetches the next page beyond the boundary in direction and splices it
// on. It returns how many summaries were added; zero once that boundary is reached.
func (w *Window) LoadMore(ctx context.Context, direction storage.Direction) (int, error) {
	w.mu.Lock()
	flag, err := w.loadingFlag(direction)
	if err != nil {
		w.mu.Unlock()
		return 0, err
	}
	if w.reachedLocked(direction) {
		w.mu.Unlock()
		return 0, nil
	}
	if *flag {
		w.mu.Unlock()
		return 0, ErrLoadInProgress
	}
	*flag = true
	ref := w.items[0].ID
	if direction == storage.DirectionRight {
		ref = w.items[len(w.items)-1].ID
	}
	w.mu.Unlock()

	loaded, err := w.loader.ListWindow(ctx, w.projectID, ref, direction, w.pageSize)

	w.mu.Lock()
	defer w.mu.Unlock()
	*flag = false
	if err != nil {
		return 0, fmt.Errorf("failed to load %s of window: %w", direction, err)
	}
	return w.spliceLocked(direction, loaded), nil
}

// LoadBoth extends the window in both directions concurrently.
func (w *Window) LoadBoth(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, d := range []storage.Direction{storage.DirectionLeft, storage.DirectionRight} {
		g.Go(func() error {
			_, err := w.LoadMore(ctx, d)
			return err
		})
	}
	return g.Wait()
}

// Upsert places s in the window without a round-trip. A summary already in the
// window is replaced; one adjacent to either end is attached there. Anything
// else re-anchors the window on s. An active summary deactivates the rest.
func (w *Window) Upsert(s storage.SearchConfigurationSummary) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.total = max(w.total, s.Index+1)
	if s.IsActive {
		for i := range w.items {
			w.items[i].IsActive = false
		}
	}

	if i := slices.IndexFunc(w.items, func(it storage.SearchConfigurationSummary) bool {
		return it.Index == s.Index
	}); i >= 0 {
		w.items[i] = s
		return
	}

	n := len(w.items)
	switch {
	case n == 0:
		w.items = append(w.items, s)
	case s.Index == w.items[n-1].Index+1:
		w.items = append(w.items, s)
	case s.Index == w.items[0].Index-1:
		w.items = slices.Insert(w.items, 0, s)
	default:
		w.items = []storage.SearchConfigurationSummary{s}
	}
}

// Snapshot returns a copy of the window state.
func (w *Window) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		Items:          slices.Clone(w.items),
		TotalCount:     w.total,
		AllLeftLoaded:  w.reachedLocked(storage.DirectionLeft),
		AllRightLoaded: w.reachedLocked(storage.DirectionRight),
		LoadingLeft:    w.loadingLeft,
		LoadingRight:   w.loadingRight,
	}
}

// AllLeftLoaded reports whether the window starts at index 0.
func (w *Window) AllLeftLoaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reachedLocked(storage.DirectionLeft)
}

// AllRightLoaded reports whether the window ends at the last index.
func (w *Window) AllRightLoaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reachedLocked(storage.DirectionRight)
}

func (w *Window) loadingFlag(direction storage.Direction) (*bool, error) {
	switch direction {
	case storage.DirectionLeft:
		return &w.loadingLeft, nil
	case storage.DirectionRight:
		return &w.loadingRight, nil
	default:
		return nil, fmt.Errorf("unknown direction %q", direction)
	}
}

func (w *Window) reachedLocked(direction storage.Direction) bool {
	if len(w.items) == 0 {
		return true
	}
	if direction == storage.DirectionLeft {
		return w.items[0].Index == 0
	}
	return w.items[len(w.items)-1].Index == w.total-1
}

// spliceLocked attaches loaded summaries that lie beyond the current boundary.
// The boundary may have moved while the load was in flight.
func (w *Window) spliceLocked(direction storage.Direction, loaded []storage.SearchConfigurationSummary) int {
	if len(w.items) == 0 {
		return 0
	}
	first, last := w.items[0].Index, w.items[len(w.items)-1].Index

	fresh := make([]storage.SearchConfigurationSummary, 0, len(loaded))
	for _, s := range loaded {
		if (direction == storage.DirectionLeft && s.Index < first) ||
			(direction == storage.DirectionRight && s.Index > last) {
			fresh = append(fresh, s)
		}
	}
	slices.SortFunc(fresh, func(a, b storage.SearchConfigurationSummary) int {
		return a.Index - b.Index
	})
	if len(fresh) == 0 {
		return 0
	}

	if direction == storage.DirectionLeft {
		w.items = append(fresh, w.items...)
	} else {
		w.items = append(w.items, fresh...)
		w.total = max(w.total, fresh[len(fresh)-1].Index+1)
	}
	return len(fresh)
}
