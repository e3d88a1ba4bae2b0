// File: internal/services/watcher/watcher.go
package watcher

import (
    "context"
    "strings"
    "sync"

    "github.com/salucare/triage-console/internal/domain"
    "github.com/salucare/triage-console/internal/logger"
)

// Backend is the slice of the API client the watcher needs.
type Backend interface {
    GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
    SendSessionMessage(ctx context.Context, sessionID, message string) error
}

// State describes what the watcher is currently doing.
type State string

const (
    // StateIdle means the watcher has been closed or never opened.
    StateIdle State = "IDLE"
    // StatePolling means periodic fetches are running.
    StatePolling State = "POLLING"
    // StateSuspended means polls are skipped while the operator is typing
    // or a send is in flight.
    StateSuspended State = "SUSPENDED"
)

// Snapshot is a point-in-time view of the watched conversation for rendering.
type Snapshot struct {
    Session *domain.Session
    State   State
    Typing  bool
    Sending bool
}

// Watcher keeps one open conversation current by polling the backend on a
// fixed interval. Polls are suspended while the operator is typing (with a
// debounce after the last keystroke) and while a send is in flight, so a
// concurrent refresh can never clobber an uncommitted reply. A poll result
// replaces local state only when it carries strictly more messages than the
// watcher already holds; sends and manual refreshes reload unconditionally.
type Watcher struct {
    sessionID string
    api       Backend
    sched     Scheduler
    cfg       Config
    log       logger.Logger

    mu             sync.Mutex
    session        *domain.Session
    knownCount     int
    typing         bool
    sending        bool
    closed         bool
    cancelPoll     CancelFunc
    cancelDebounce CancelFunc
}

// New builds a watcher for one session. Call Open to load the conversation
// and start polling.
func New(sessionID string, api Backend, sched Scheduler, cfg Config, log logger.Logger) (*Watcher, error) {
    if err := cfg.Validate(); err != nil {
        return nil, err
    }
    return &Watcher{
        sessionID: sessionID,
        api:       api,
        sched:     sched,
        cfg:       cfg,
        log:       log,
    }, nil
}

// Open performs the initial full load and starts the poll cycle.
func (w *Watcher) Open(ctx context.Context) error {
    session, err := w.api.GetSession(ctx, w.sessionID)
    if err != nil {
        return err
    }

    w.mu.Lock()
    defer w.mu.Unlock()
    if w.closed {
        return ErrClosed
    }
    w.session = session
    w.knownCount = session.MessageCount()
    w.scheduleNextLocked()
    w.log.Info("conversation opened", "session_id", w.sessionID, "messages", w.knownCount)
    return nil
}

// scheduleNextLocked arms the next poll timer. Caller holds w.mu.
func (w *Watcher) scheduleNextLocked() {
    if w.closed {
        return
    }
    w.cancelPoll = w.sched.Schedule(w.cfg.PollInterval, w.poll)
}

// poll runs on the scheduler. A suspended tick is skipped entirely, not
// deferred: the next tick fires a full interval later.
func (w *Watcher) poll() {
    w.mu.Lock()
    if w.closed {
        w.mu.Unlock()
        return
    }
    if w.typing || w.sending {
        w.log.Debug("poll skipped", "session_id", w.sessionID, "typing", w.typing, "sending", w.sending)
        w.scheduleNextLocked()
        w.mu.Unlock()
        return
    }
    w.mu.Unlock()

    session, err := w.api.GetSession(context.Background(), w.sessionID)

    w.mu.Lock()
    defer w.mu.Unlock()
    if w.closed {
        return
    }
    if err != nil {
        w.log.Warn("poll failed", "session_id", w.sessionID, "error", err)
        w.scheduleNextLocked()
        return
    }
    if session.MessageCount() > w.knownCount {
        w.session = session
        w.knownCount = session.MessageCount()
        w.log.Debug("conversation updated", "session_id", w.sessionID, "messages", w.knownCount)
    }
    w.scheduleNextLocked()
}

// Typing marks the operator as typing and suspends polling until the
// debounce elapses after the last signal.
func (w *Watcher) Typing() error {
    w.mu.Lock()
    defer w.mu.Unlock()
    if w.closed {
        return ErrClosed
    }
    w.typing = true
    if w.cancelDebounce != nil {
        w.cancelDebounce()
    }
    w.cancelDebounce = w.sched.Schedule(w.cfg.TypingDebounce, w.clearTyping)
    return nil
}

func (w *Watcher) clearTyping() {
    w.mu.Lock()
    defer w.mu.Unlock()
    if w.closed {
        return
    }
    w.typing = false
}

// Send posts an operator reply and, on success, reloads the conversation in
// full. The sending flag is cleared on every path, success or failure, so a
// failed send never leaves the watcher suspended.
func (w *Watcher) Send(ctx context.Context, message string) error {
    if strings.TrimSpace(message) == "" {
        return ErrEmptyMessage
    }

    w.mu.Lock()
    if w.closed {
        w.mu.Unlock()
        return ErrClosed
    }
    if w.sending {
        w.mu.Unlock()
        return ErrSendInProgress
    }
    w.sending = true
    w.mu.Unlock()

    defer func() {
        w.mu.Lock()
        if !w.closed {
            w.sending = false
        }
        w.mu.Unlock()
    }()

    if err := w.api.SendSessionMessage(ctx, w.sessionID, message); err != nil {
        w.log.Error("send failed", "session_id", w.sessionID, "error", err)
        return err
    }
    return w.reload(ctx)
}

// Refresh is the operator's manual reload. It bypasses typing and sending
// suspension and replaces local state unconditionally.
func (w *Watcher) Refresh(ctx context.Context) error {
    w.mu.Lock()
    if w.closed {
        w.mu.Unlock()
        return ErrClosed
    }
    w.mu.Unlock()
    return w.reload(ctx)
}

// reload fetches the session and replaces local state without the growth
// check. Used after a confirmed send and for manual refresh, where the
// backend copy is authoritative even if counts match.
func (w *Watcher) reload(ctx context.Context) error {
    session, err := w.api.GetSession(ctx, w.sessionID)
    if err != nil {
        return err
    }
    w.mu.Lock()
    defer w.mu.Unlock()
    if w.closed {
        return ErrClosed
    }
    w.session = session
    w.knownCount = session.MessageCount()
    return nil
}

// Snapshot returns the current conversation and watcher state.
func (w *Watcher) Snapshot() Snapshot {
    w.mu.Lock()
    defer w.mu.Unlock()
    return Snapshot{
        Session: w.session,
        State:   w.stateLocked(),
        Typing:  w.typing,
        Sending: w.sending,
    }
}

// State reports the current lifecycle state.
func (w *Watcher) State() State {
    w.mu.Lock()
    defer w.mu.Unlock()
    return w.stateLocked()
}

func (w *Watcher) stateLocked() State {
    switch {
    case w.closed:
        return StateIdle
    case w.typing || w.sending:
        return StateSuspended
    default:
        return StatePolling
    }
}

// Close cancels all pending timers. After Close the watcher mutates no state
// and every operation returns ErrClosed. Idempotent.
func (w *Watcher) Close() {
    w.mu.Lock()
    defer w.mu.Unlock()
    if w.closed {
        return
    }
    w.closed = true
    if w.cancelPoll != nil {
        w.cancelPoll()
        w.cancelPoll = nil
    }
    if w.cancelDebounce != nil {
        w.cancelDebounce()
        w.cancelDebounce = nil
    }
    w.log.Info("conversation closed", "session_id", w.sessionID)
}
