// File: internal/handlers/board_handlers.go
package handlers

import (
    "encoding/json"
    "errors"
    "net/http"
    "strings"

    "github.com/gorilla/mux"

    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/logger"
    "github.com/salucare/triage-console/internal/services/analysis"
    "github.com/salucare/triage-console/internal/services/board"
)

// BoardHandler serves the JSON endpoints of the pending-requests board.
type BoardHandler struct {
    api      *backend.Client
    board    *board.Board
    analysis *analysis.Service
    log      logger.Logger
}

func NewBoardHandler(api *backend.Client, b *board.Board, a *analysis.Service, log logger.Logger) *BoardHandler {
    return &BoardHandler{api: api, board: b, analysis: a, log: log}
}

// List refreshes the queue and returns the filtered view. The page polls
// this endpoint to keep the board current.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
    if err := h.board.Refresh(r.Context()); err != nil {
        h.log.Error("handoff list failed", "error", err)
        writeError(w, "No se pudo cargar la lista de solicitudes", http.StatusBadGateway)
        return
    }
    if r.URL.Query().Has("department") {
        h.board.SetFilter(r.URL.Query().Get("department"))
    }
    writeJSON(w, http.StatusOK, map[string]interface{}{
        "requests":     h.board.Filtered(),
        "pendingCount": h.board.PendingCount(),
        "filter":       h.board.Filter(),
    })
}

type selectRequest struct {
    HandoffID string `json:"handoffId"`
}

// Select marks a handoff for the detail pane.
func (h *BoardHandler) Select(w http.ResponseWriter, r *http.Request) {
    var req selectRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HandoffID == "" {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }
    if err := h.board.Select(req.HandoffID); err != nil {
        if errors.Is(err, board.ErrNotInView) {
            writeError(w, "La solicitud ya no está en la vista actual", http.StatusConflict)
            return
        }
        writeError(w, "No se pudo seleccionar la solicitud", http.StatusInternalServerError)
        return
    }
    writeJSON(w, http.StatusOK, h.board.Selected())
}

type respondBody struct {
    Message string `json:"message"`
}

// Respond sends the operator's first reply for a pending handoff.
func (h *BoardHandler) Respond(w http.ResponseWriter, r *http.Request) {
    handoffID := mux.Vars(r)["handoffID"]

    var req respondBody
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
        writeError(w, "El mensaje no puede estar vacío", http.StatusBadRequest)
        return
    }

    if err := h.api.RespondHandoff(r.Context(), handoffID, req.Message); err != nil {
        h.log.Error("respond failed", "handoff_id", handoffID, "error", err)
        writeError(w, "No se pudo responder la solicitud", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": "Respuesta enviada"})
}

type resolveBody struct {
    Resolution string `json:"resolution"`
}

// Resolve closes a handoff with a resolution summary.
func (h *BoardHandler) Resolve(w http.ResponseWriter, r *http.Request) {
    handoffID := mux.Vars(r)["handoffID"]

    var req resolveBody
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    if err := h.api.ResolveHandoff(r.Context(), handoffID, req.Resolution); err != nil {
        h.log.Error("resolve failed", "handoff_id", handoffID, "error", err)
        writeError(w, "No se pudo resolver la solicitud", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": "Solicitud resuelta"})
}

type reassignBody struct {
    AgentID string `json:"agentId"`
}

// Reassign moves a handoff to another agent.
func (h *BoardHandler) Reassign(w http.ResponseWriter, r *http.Request) {
    handoffID := mux.Vars(r)["handoffID"]

    var req reassignBody
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AgentID == "" {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    if err := h.api.ReassignHandoff(r.Context(), handoffID, req.AgentID); err != nil {
        h.log.Error("reassign failed", "handoff_id", handoffID, "error", err)
        writeError(w, "No se pudo reasignar la solicitud", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": "Solicitud reasignada"})
}

// Agents lists the staff eligible for reassignment.
func (h *BoardHandler) Agents(w http.ResponseWriter, r *http.Request) {
    agents, err := h.api.ListAgents(r.Context())
    if err != nil {
        h.log.Error("agent list failed", "error", err)
        writeError(w, "No se pudo cargar la lista de agentes", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, agents)
}

// Analysis returns the AI analysis for a session, cached across requests
// and restarts.
func (h *BoardHandler) Analysis(w http.ResponseWriter, r *http.Request) {
    sessionID := mux.Vars(r)["sessionID"]
    result, err := h.analysis.GetOrFetch(r.Context(), sessionID)
    if err != nil {
        h.log.Error("analysis failed", "session_id", sessionID, "error", err)
        writeError(w, "No se pudo generar el análisis", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, result)
}

// AnalysisNote re-runs the analysis with backend-side note persistence.
func (h *BoardHandler) AnalysisNote(w http.ResponseWriter, r *http.Request) {
    sessionID := mux.Vars(r)["sessionID"]
    result, err := h.analysis.SaveAsNote(r.Context(), sessionID)
    if err != nil {
        h.log.Error("analysis note failed", "session_id", sessionID, "error", err)
        writeError(w, "No se pudo guardar el análisis como nota", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, result)
}

// InvalidateAnalysis drops the cached analysis so the next read re-fetches.
func (h *BoardHandler) InvalidateAnalysis(w http.ResponseWriter, r *http.Request) {
    sessionID := mux.Vars(r)["sessionID"]
    if err := h.analysis.Invalidate(r.Context(), sessionID); err != nil {
        h.log.Error("analysis invalidate failed", "session_id", sessionID, "error", err)
        writeError(w, "No se pudo descartar el análisis", http.StatusInternalServerError)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
