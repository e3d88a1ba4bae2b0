// File: internal/domain/handoff.go
package domain

import "time"

// HandoffStatus is the lifecycle status of a handoff request.
type HandoffStatus string

const (
    HandoffPending    HandoffStatus = "PENDING"
    HandoffAssigned   HandoffStatus = "ASSIGNED"
    HandoffInProgress HandoffStatus = "IN_PROGRESS"
    HandoffResolved   HandoffStatus = "RESOLVED"
    HandoffCancelled  HandoffStatus = "CANCELLED"
)

// UrgencyLevel ranks how quickly a human must pick the case up.
type UrgencyLevel string

const (
    UrgencyLow      UrgencyLevel = "LOW"
    UrgencyNormal   UrgencyLevel = "NORMAL"
    UrgencyHigh     UrgencyLevel = "HIGH"
    UrgencyCritical UrgencyLevel = "CRITICAL"
)

// HandoffReason enumerates why the bot escalated to a human.
type HandoffReason string

const (
    ReasonCrisisDetected     HandoffReason = "CRISIS_DETECTED"
    ReasonUserRequested      HandoffReason = "USER_REQUESTED"
    ReasonBotLimitation      HandoffReason = "BOT_LIMITATION"
    ReasonComplexInquiry     HandoffReason = "COMPLEX_INQUIRY"
    ReasonMultipleAttempts   HandoffReason = "MULTIPLE_ATTEMPTS"
    ReasonTechnicalIssue     HandoffReason = "TECHNICAL_ISSUE"
    ReasonAppointmentRequest HandoffReason = "APPOINTMENT_REQUEST"
    ReasonPaymentIssue       HandoffReason = "PAYMENT_ISSUE"
    ReasonComplaint          HandoffReason = "COMPLAINT"
    ReasonIntelligentRouting HandoffReason = "INTELLIGENT_ROUTING"
)

// HandoffMetadata is the free-form routing payload the backend attaches when
// its router picked a department for the case.
type HandoffMetadata struct {
    DepartmentID      string `json:"departmentId,omitempty"`
    DepartmentName    string `json:"departmentName,omitempty"`
    RoutingReasoning  string `json:"routingReasoning,omitempty"`
    RoutingConfidence string `json:"routingConfidence,omitempty"`
}

// Handoff is a request to transfer a bot conversation to a human agent.
// Created by the backend when the bot escalates; it leaves PENDING only
// through explicit operator action (respond, resolve, reassign).
type Handoff struct {
    ID                string           `json:"id"`
    SessionID         string           `json:"sessionId"`
    PhoneNumber       string           `json:"phoneNumber"`
    UserName          string           `json:"userName"`
    Reason            HandoffReason    `json:"reason"`
    UrgencyLevel      UrgencyLevel     `json:"urgencyLevel"`
    Priority          string           `json:"priority"`
    Message           string           `json:"message,omitempty"`
    Status            HandoffStatus    `json:"status"`
    AssignedAgentID   string           `json:"assignedAgentId,omitempty"`
    AssignedAgentName string           `json:"assignedAgentName,omitempty"`
    CreatedAt         time.Time        `json:"createdAt"`
    AssignedAt        *time.Time       `json:"assignedAt,omitempty"`
    CompletedAt       *time.Time       `json:"completedAt,omitempty"`
    Metadata          *HandoffMetadata `json:"metadata,omitempty"`
}

// DepartmentID returns the routed department id, or "" when unrouted.
// Value receiver so templates can call it on list entries.
func (h Handoff) DepartmentID() string {
    if h.Metadata == nil {
        return ""
    }
    return h.Metadata.DepartmentID
}

// Agent is a staff member eligible for handoff assignment.
type Agent struct {
    ID     string `json:"id"`
    Name   string `json:"name"`
    Email  string `json:"email"`
    Role   string `json:"role"`
    Status string `json:"status"`
}
