// File: internal/handlers/page_handlers.go
package handlers

import (
    "net/http"

    "github.com/gorilla/mux"

    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/logger"
    "github.com/salucare/triage-console/internal/services/authstore"
    "github.com/salucare/triage-console/internal/services/board"
    "github.com/salucare/triage-console/internal/services/phonelocale"
    "github.com/salucare/triage-console/internal/services/watcher"
)

// PageHandler renders the console pages.
type PageHandler struct {
    api      *backend.Client
    store    *authstore.Store
    board    *board.Board
    watchers *watcher.Manager
    log      logger.Logger
}

func NewPageHandler(api *backend.Client, store *authstore.Store, b *board.Board, watchers *watcher.Manager, log logger.Logger) *PageHandler {
    return &PageHandler{api: api, store: store, board: b, watchers: watchers, log: log}
}

func (h *PageHandler) baseData() map[string]interface{} {
    data := make(map[string]interface{})
    if user := h.store.User(); user != nil {
        data["User"] = user
    }
    return data
}

// ShowDashboard renders the stats overview.
func (h *PageHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
    stats, err := h.api.DashboardStats(r.Context())
    if err != nil {
        h.log.Error("dashboard stats failed", "error", err)
        h.ShowErrorPage(w, "502", "Backend no disponible", "No se pudieron cargar las estadísticas.")
        return
    }
    data := h.baseData()
    data["Stats"] = stats
    renderTemplate(w, "dashboard.html", data)
}

// ShowRequests renders the pending-handoffs board. The department filter and
// the detail selection travel as query parameters; a filter change arrives
// without a selection, which keeps the detail pane consistent with the list.
func (h *PageHandler) ShowRequests(w http.ResponseWriter, r *http.Request) {
    if err := h.board.Refresh(r.Context()); err != nil {
        h.log.Error("handoff list failed", "error", err)
        h.ShowErrorPage(w, "502", "Backend no disponible", "No se pudo cargar la lista de solicitudes.")
        return
    }

    h.board.SetFilter(r.URL.Query().Get("department"))
    if selected := r.URL.Query().Get("selected"); selected != "" {
        if err := h.board.Select(selected); err != nil {
            h.log.Debug("stale selection ignored", "handoff_id", selected)
        }
    }

    departments, err := h.api.ListDepartments(r.Context())
    if err != nil {
        h.log.Warn("department list failed", "error", err)
    }

    data := h.baseData()
    data["Requests"] = h.board.Filtered()
    data["PendingCount"] = h.board.PendingCount()
    data["Departments"] = departments
    data["Filter"] = h.board.Filter()
    data["Selected"] = h.board.Selected()
    renderTemplate(w, "requests.html", data)
}

// ShowConversation opens (or re-opens) the watcher for a session and renders
// the chat view.
func (h *PageHandler) ShowConversation(w http.ResponseWriter, r *http.Request) {
    sessionID := mux.Vars(r)["sessionID"]

    wt, err := h.watchers.Open(r.Context(), sessionID)
    if err != nil {
        h.log.Error("conversation open failed", "session_id", sessionID, "error", err)
        if backend.IsNotFound(err) {
            h.ShowErrorPage(w, "404", "Conversación no encontrada", "La sesión no existe o fue cerrada.")
            return
        }
        h.ShowErrorPage(w, "502", "Backend no disponible", "No se pudo cargar la conversación.")
        return
    }

    snap := wt.Snapshot()

    notes, err := h.api.GetClinicalNotes(r.Context(), sessionID)
    if err != nil {
        h.log.Warn("clinical notes failed", "session_id", sessionID, "error", err)
    }

    data := h.baseData()
    data["Session"] = snap.Session
    data["Notes"] = notes
    if locale := phonelocale.Resolve(snap.Session.PhoneNumber); locale != nil {
        data["Location"] = locale
    }
    renderTemplate(w, "conversation.html", data)
}

// ShowMyConversations lists the sessions assigned to the operator.
func (h *PageHandler) ShowMyConversations(w http.ResponseWriter, r *http.Request) {
    conversations, err := h.api.MyConversations(r.Context(), 50)
    if err != nil {
        h.log.Error("my conversations failed", "error", err)
        h.ShowErrorPage(w, "502", "Backend no disponible", "No se pudieron cargar tus conversaciones.")
        return
    }
    data := h.baseData()
    data["Conversations"] = conversations
    renderTemplate(w, "my_conversations.html", data)
}

// ShowDepartments renders the department admin page.
func (h *PageHandler) ShowDepartments(w http.ResponseWriter, r *http.Request) {
    departments, err := h.api.ListDepartments(r.Context())
    if err != nil {
        h.log.Error("department list failed", "error", err)
        h.ShowErrorPage(w, "502", "Backend no disponible", "No se pudieron cargar los departamentos.")
        return
    }
    data := h.baseData()
    data["Departments"] = departments
    renderTemplate(w, "departments.html", data)
}

// ShowErrorPage renders the shared error page.
func (h *PageHandler) ShowErrorPage(w http.ResponseWriter, code, message, description string) {
    renderTemplate(w, "error.html", map[string]interface{}{
        "Code":        code,
        "Message":     message,
        "Description": description,
    })
}
