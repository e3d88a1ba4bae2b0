// File: internal/services/board/display.go
package board

import (
    "fmt"
    "strings"
    "time"

    "github.com/salucare/triage-console/internal/domain"
)

// departmentPalette are the badge styles a routed department can get. The
// hash below keeps the assignment stable within one deploy of the palette.
var departmentPalette = []string{
    "badge-blue",
    "badge-purple",
    "badge-pink",
    "badge-indigo",
    "badge-teal",
    "badge-cyan",
}

const unroutedBadge = "badge-gray"

// DepartmentColor maps a department id to a palette entry by summing the
// id's byte values. Same id, same color; no server round-trip involved.
func DepartmentColor(departmentID string) string {
    if departmentID == "" {
        return unroutedBadge
    }
    sum := 0
    for _, b := range []byte(departmentID) {
        sum += int(b)
    }
    return departmentPalette[sum%len(departmentPalette)]
}

// DepartmentName returns the routed department's name, or the unrouted
// placeholder.
func DepartmentName(h *domain.Handoff) string {
    if h.Metadata == nil || h.Metadata.DepartmentName == "" {
        return "Sin departamento"
    }
    return h.Metadata.DepartmentName
}

var priorityLabels = map[string]string{
    "URGENT": "Urgente",
    "HIGH":   "Alta",
    "NORMAL": "Normal",
    "LOW":    "Baja",
}

// PriorityLabel returns the Spanish display label for a priority, falling
// back to the raw value.
func PriorityLabel(priority string) string {
    if label, ok := priorityLabels[priority]; ok {
        return label
    }
    return priority
}

var reasonLabels = map[domain.HandoffReason]string{
    domain.ReasonCrisisDetected:     "Crisis Detectada",
    domain.ReasonUserRequested:      "Usuario Solicitó Ayuda",
    domain.ReasonBotLimitation:      "Limitación del Bot",
    domain.ReasonComplexInquiry:     "Consulta Compleja",
    domain.ReasonMultipleAttempts:   "Múltiples Intentos",
    domain.ReasonTechnicalIssue:     "Problema Técnico",
    domain.ReasonAppointmentRequest: "Solicitud de Cita",
    domain.ReasonPaymentIssue:       "Problema de Pago",
    domain.ReasonComplaint:          "Queja/Reclamo",
    domain.ReasonIntelligentRouting: "Routing Inteligente",
}

// ReasonLabel returns the Spanish display label for an escalation reason.
// Unknown reasons render with underscores replaced by spaces.
func ReasonLabel(reason domain.HandoffReason) string {
    if label, ok := reasonLabels[reason]; ok {
        return label
    }
    return strings.ReplaceAll(string(reason), "_", " ")
}

// FormatWaitTime renders how long a handoff has been waiting, relative to
// now: "Ahora" under a minute, then minutes, hours, days.
func FormatWaitTime(createdAt, now time.Time) string {
    mins := int(now.Sub(createdAt).Minutes())
    switch {
    case mins < 1:
        return "Ahora"
    case mins < 60:
        return fmt.Sprintf("%dmin", mins)
    case mins < 24*60:
        return fmt.Sprintf("%dh", mins/60)
    default:
        return fmt.Sprintf("%dd", mins/(24*60))
    }
}
