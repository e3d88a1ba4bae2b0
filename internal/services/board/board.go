// File: internal/services/board/board.go
package board

import (
    "context"
    "sync"

    "github.com/salucare/triage-console/internal/domain"
    "github.com/salucare/triage-console/internal/logger"
)

// Backend is the slice of the API client the board needs.
type Backend interface {
    ListHandoffs(ctx context.Context) ([]domain.Handoff, error)
}

// Board holds the pending-requests view: the handoff queue as last fetched,
// the active department filter and the operator's detail selection.
// Filtering is local and by exact department id. The detail pane must never
// show a handoff outside the filtered list, so changing the filter clears
// the selection, and Select refuses ids the current filter hides.
type Board struct {
    api Backend
    log logger.Logger

    mu       sync.Mutex
    handoffs []domain.Handoff
    filter   string // department id, "" means no filter
    selected string // handoff id, "" means nothing selected
}

func New(api Backend, log logger.Logger) *Board {
    return &Board{api: api, log: log}
}

// Refresh re-fetches the handoff queue. The selection survives only if the
// selected handoff is still in the filtered view.
func (b *Board) Refresh(ctx context.Context) error {
    handoffs, err := b.api.ListHandoffs(ctx)
    if err != nil {
        return err
    }

    b.mu.Lock()
    defer b.mu.Unlock()
    b.handoffs = handoffs
    if b.selected != "" && b.findVisibleLocked(b.selected) == nil {
        b.log.Debug("selection dropped on refresh", "handoff_id", b.selected)
        b.selected = ""
    }
    return nil
}

// SetFilter changes the department filter and clears the selection. An empty
// id removes the filter.
func (b *Board) SetFilter(departmentID string) {
    b.mu.Lock()
    defer b.mu.Unlock()
    if b.filter == departmentID {
        return
    }
    b.filter = departmentID
    b.selected = ""
}

// Filter returns the active department filter, "" when none.
func (b *Board) Filter() string {
    b.mu.Lock()
    defer b.mu.Unlock()
    return b.filter
}

// Filtered returns the handoffs visible under the current filter, in backend
// order.
func (b *Board) Filtered() []domain.Handoff {
    b.mu.Lock()
    defer b.mu.Unlock()
    return b.filteredLocked()
}

func (b *Board) filteredLocked() []domain.Handoff {
    if b.filter == "" {
        out := make([]domain.Handoff, len(b.handoffs))
        copy(out, b.handoffs)
        return out
    }
    var out []domain.Handoff
    for _, h := range b.handoffs {
        if h.DepartmentID() == b.filter {
            out = append(out, h)
        }
    }
    return out
}

func (b *Board) findVisibleLocked(handoffID string) *domain.Handoff {
    for _, h := range b.filteredLocked() {
        if h.ID == handoffID {
            matched := h
            return &matched
        }
    }
    return nil
}

// Select marks a handoff for the detail pane. Only handoffs in the current
// filtered view are selectable.
func (b *Board) Select(handoffID string) error {
    b.mu.Lock()
    defer b.mu.Unlock()
    if b.findVisibleLocked(handoffID) == nil {
        return ErrNotInView
    }
    b.selected = handoffID
    return nil
}

// Selected returns the selected handoff, or nil when nothing is selected.
func (b *Board) Selected() *domain.Handoff {
    b.mu.Lock()
    defer b.mu.Unlock()
    if b.selected == "" {
        return nil
    }
    return b.findVisibleLocked(b.selected)
}

// ClearSelection empties the detail pane.
func (b *Board) ClearSelection() {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.selected = ""
}

// PendingCount reports how many visible handoffs still await assignment.
func (b *Board) PendingCount() int {
    b.mu.Lock()
    defer b.mu.Unlock()
    n := 0
    for _, h := range b.filteredLocked() {
        if h.Status == domain.HandoffPending {
            n++
        }
    }
    return n
}
