// File: internal/handlers/department_handlers.go
package handlers

import (
    "encoding/json"
    "net/http"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/gorilla/mux"

    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/logger"
)

// DepartmentHandler serves the admin-only department CRUD endpoints.
type DepartmentHandler struct {
    api      *backend.Client
    validate *validator.Validate
    log      logger.Logger
}

func NewDepartmentHandler(api *backend.Client, log logger.Logger) *DepartmentHandler {
    return &DepartmentHandler{api: api, validate: validator.New(), log: log}
}

type departmentForm struct {
    Name        string `json:"name" validate:"required,min=2,max=80"`
    Description string `json:"description" validate:"required,min=10,max=2000"`
}

// List returns every department.
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
    departments, err := h.api.ListDepartments(r.Context())
    if err != nil {
        h.log.Error("department list failed", "error", err)
        writeError(w, "No se pudieron cargar los departamentos", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, map[string]interface{}{
        "departments": departments,
        "total":       len(departments),
    })
}

// Create registers a department. The description is what the routing model
// reads, so it must carry enough text to route on.
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
    var form departmentForm
    if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }
    form.Name = strings.TrimSpace(form.Name)
    form.Description = strings.TrimSpace(form.Description)
    if err := h.validate.Struct(form); err != nil {
        writeError(w, "Nombre (2-80) y descripción (10-2000) son obligatorios", http.StatusBadRequest)
        return
    }

    dept, err := h.api.CreateDepartment(r.Context(), form.Name, form.Description)
    if err != nil {
        h.log.Error("department create failed", "name", form.Name, "error", err)
        writeError(w, "No se pudo crear el departamento", http.StatusBadGateway)
        return
    }
    h.log.Info("department created", "id", dept.ID, "name", dept.Name)
    writeJSON(w, http.StatusCreated, dept)
}

// Update replaces a department's name and description.
func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["departmentID"]

    var form departmentForm
    if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }
    form.Name = strings.TrimSpace(form.Name)
    form.Description = strings.TrimSpace(form.Description)
    if err := h.validate.Struct(form); err != nil {
        writeError(w, "Nombre (2-80) y descripción (10-2000) son obligatorios", http.StatusBadRequest)
        return
    }

    dept, err := h.api.UpdateDepartment(r.Context(), id, form.Name, form.Description)
    if err != nil {
        h.log.Error("department update failed", "id", id, "error", err)
        if backend.IsNotFound(err) {
            writeError(w, "Departamento no encontrado", http.StatusNotFound)
            return
        }
        writeError(w, "No se pudo actualizar el departamento", http.StatusBadGateway)
        return
    }
    writeJSON(w, http.StatusOK, dept)
}

// Toggle flips a department's active flag.
func (h *DepartmentHandler) Toggle(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["departmentID"]

    dept, err := h.api.ToggleDepartment(r.Context(), id)
    if err != nil {
        h.log.Error("department toggle failed", "id", id, "error", err)
        if backend.IsNotFound(err) {
            writeError(w, "Departamento no encontrado", http.StatusNotFound)
            return
        }
        writeError(w, "No se pudo cambiar el estado del departamento", http.StatusBadGateway)
        return
    }
    h.log.Info("department toggled", "id", dept.ID, "active", dept.IsActive)
    writeJSON(w, http.StatusOK, dept)
}
