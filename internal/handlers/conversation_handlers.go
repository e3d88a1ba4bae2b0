// File: internal/handlers/conversation_handlers.go
package handlers

import (
    "encoding/json"
    "errors"
    "net/http"
    "strings"

    "github.com/gorilla/mux"

    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/logger"
    "github.com/salucare/triage-console/internal/services/watcher"
)

// ConversationHandler serves the JSON endpoints the conversation page polls.
type ConversationHandler struct {
    api      *backend.Client
    watchers *watcher.Manager
    log      logger.Logger
}

func NewConversationHandler(api *backend.Client, watchers *watcher.Manager, log logger.Logger) *ConversationHandler {
    return &ConversationHandler{api: api, watchers: watchers, log: log}
}

func (h *ConversationHandler) watcherFor(w http.ResponseWriter, r *http.Request) (*watcher.Watcher, string, bool) {
    sessionID := mux.Vars(r)["sessionID"]
    wt := h.watchers.Get(sessionID)
    if wt == nil {
        writeError(w, "Conversation is not open", http.StatusConflict)
        return nil, sessionID, false
    }
    return wt, sessionID, true
}

// Messages returns the watcher's current snapshot. The page polls this to
// repaint; the server-side watcher decides when the snapshot advances.
func (h *ConversationHandler) Messages(w http.ResponseWriter, r *http.Request) {
    wt, _, ok := h.watcherFor(w, r)
    if !ok {
        return
    }
    snap := wt.Snapshot()
    writeJSON(w, http.StatusOK, map[string]interface{}{
        "session": snap.Session,
        "state":   snap.State,
        "typing":  snap.Typing,
        "sending": snap.Sending,
    })
}

// Typing registers a keystroke signal and suspends polling.
func (h *ConversationHandler) Typing(w http.ResponseWriter, r *http.Request) {
    wt, _, ok := h.watcherFor(w, r)
    if !ok {
        return
    }
    if err := wt.Typing(); err != nil {
        writeError(w, "Conversation is closed", http.StatusConflict)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

type sendRequest struct {
    Message string `json:"message"`
}

// Send posts the operator's reply through the watcher.
func (h *ConversationHandler) Send(w http.ResponseWriter, r *http.Request) {
    wt, sessionID, ok := h.watcherFor(w, r)
    if !ok {
        return
    }

    var req sendRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }
    if strings.TrimSpace(req.Message) == "" {
        writeError(w, "El mensaje no puede estar vacío", http.StatusBadRequest)
        return
    }

    if err := wt.Send(r.Context(), req.Message); err != nil {
        switch {
        case errors.Is(err, watcher.ErrEmptyMessage):
            writeError(w, "El mensaje no puede estar vacío", http.StatusBadRequest)
        case errors.Is(err, watcher.ErrSendInProgress):
            writeError(w, "Ya hay un envío en curso", http.StatusConflict)
        case errors.Is(err, watcher.ErrClosed):
            writeError(w, "Conversation is closed", http.StatusConflict)
        default:
            h.log.Error("send failed", "session_id", sessionID, "error", err)
            writeError(w, "No se pudo enviar el mensaje", http.StatusBadGateway)
        }
        return
    }

    snap := wt.Snapshot()
    writeJSON(w, http.StatusOK, map[string]interface{}{"session": snap.Session})
}

// Refresh forces a full reload, bypassing typing and sending suppression.
func (h *ConversationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
    wt, sessionID, ok := h.watcherFor(w, r)
    if !ok {
        return
    }
    if err := wt.Refresh(r.Context()); err != nil {
        if errors.Is(err, watcher.ErrClosed) {
            writeError(w, "Conversation is closed", http.StatusConflict)
            return
        }
        h.log.Error("refresh failed", "session_id", sessionID, "error", err)
        writeError(w, "No se pudo actualizar la conversación", http.StatusBadGateway)
        return
    }
    snap := wt.Snapshot()
    writeJSON(w, http.StatusOK, map[string]interface{}{"session": snap.Session})
}

// Close deselects the conversation and stops its polling.
func (h *ConversationHandler) Close(w http.ResponseWriter, r *http.Request) {
    sessionID := mux.Vars(r)["sessionID"]
    h.watchers.Close(sessionID)
    w.WriteHeader(http.StatusNoContent)
}

// Intervene takes the session over from the bot, then refreshes the local
// copy so the state change is visible immediately.
func (h *ConversationHandler) Intervene(w http.ResponseWriter, r *http.Request) {
    wt, sessionID, ok := h.watcherFor(w, r)
    if !ok {
        return
    }
    if err := h.api.Intervene(r.Context(), sessionID); err != nil {
        h.log.Error("intervene failed", "session_id", sessionID, "error", err)
        writeError(w, "No se pudo intervenir la conversación", http.StatusBadGateway)
        return
    }
    if err := wt.Refresh(r.Context()); err != nil {
        h.log.Warn("refresh after intervene failed", "session_id", sessionID, "error", err)
    }
    snap := wt.Snapshot()
    writeJSON(w, http.StatusOK, map[string]interface{}{"session": snap.Session})
}

type noteRequest struct {
    Content   string `json:"content"`
    IsPrivate bool   `json:"isPrivate"`
}

// AddNote appends a clinical note to the session.
func (h *ConversationHandler) AddNote(w http.ResponseWriter, r *http.Request) {
    sessionID := mux.Vars(r)["sessionID"]

    var req noteRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
        writeError(w, "La nota no puede estar vacía", http.StatusBadRequest)
        return
    }

    note, err := h.api.AddClinicalNote(r.Context(), sessionID, req.Content, req.IsPrivate)
    if err != nil {
        h.log.Error("add note failed", "session_id", sessionID, "error", err)
        writeError(w, "No se pudo guardar la nota", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusCreated, note)
}

// Notes lists the clinical notes of the session.
func (h *ConversationHandler) Notes(w http.ResponseWriter, r *http.Request) {
    sessionID := mux.Vars(r)["sessionID"]
    notes, err := h.api.GetClinicalNotes(r.Context(), sessionID)
    if err != nil {
        h.log.Error("notes failed", "session_id", sessionID, "error", err)
        writeError(w, "No se pudieron cargar las notas", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, notes)
}
