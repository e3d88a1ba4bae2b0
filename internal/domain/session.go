// File: internal/domain/session.go
package domain

import "time"

// SessionState is the lifecycle state of a patient conversation.
type SessionState string

const (
    SessionActiveBot       SessionState = "ACTIVE_BOT"
    SessionWaitingHandoff  SessionState = "WAITING_HANDOFF"
    SessionActiveAgent     SessionState = "ACTIVE_AGENT"
    SessionClosedResolved  SessionState = "CLOSED_RESOLVED"
    SessionClosedAbandoned SessionState = "CLOSED_ABANDONED"
)

// Session is a single patient's chat thread, spanning bot and human phases.
// The backend owns it; the console only appends messages and notes through
// the API and never re-sorts the message sequence it is given.
type Session struct {
    ID          string         `json:"id"`
    PhoneNumber string         `json:"phoneNumber"`
    UserName    string         `json:"userName"`
    State       SessionState   `json:"state"`
    Messages    []Message      `json:"messages"`
    Metadata    map[string]any `json:"metadata,omitempty"`
    CreatedAt   time.Time      `json:"createdAt"`
    UpdatedAt   time.Time      `json:"updatedAt"`
}

// MessageCount reports the length of the message sequence. Polling merges
// compare this count; it is monotonically non-decreasing for a live session.
func (s *Session) MessageCount() int {
    return len(s.Messages)
}

// SessionInfo is the summary the backend returns alongside a message page.
type SessionInfo struct {
    ID                string `json:"id"`
    PhoneNumber       string `json:"phoneNumber"`
    UserName          string `json:"userName"`
    State             string `json:"state"`
    StateDescription  string `json:"stateDescription"`
    AssignedAgentID   string `json:"assignedAgentId"`
    AssignedAgentName string `json:"assignedAgentName"`
    DurationMinutes   int    `json:"durationMinutes"`
    MessageCount      int    `json:"messageCount"`
    CanIntervene      bool   `json:"canIntervene"`
    CanSendMessages   bool   `json:"canSendMessages"`
}

// Conversation is one row of the operator's assigned-conversation list.
type Conversation struct {
    SessionID        string    `json:"sessionId"`
    PhoneNumber      string    `json:"phoneNumber"`
    UserName         string    `json:"userName"`
    State            string    `json:"state"`
    StateDescription string    `json:"stateDescription"`
    MessageCount     int       `json:"messageCount"`
    LastMessageAt    time.Time `json:"lastMessageAt"`
    CreatedAt        time.Time `json:"createdAt"`
    DurationMinutes  int       `json:"durationMinutes"`
}

// ClinicalNote is an operator- or system-authored note attached to a session.
type ClinicalNote struct {
    ID         string    `json:"id"`
    SessionID  string    `json:"sessionId"`
    AuthorID   string    `json:"authorId"`
    AuthorName string    `json:"authorName"`
    Content    string    `json:"content"`
    IsPrivate  bool      `json:"isPrivate"`
    CreatedAt  time.Time `json:"createdAt"`
}

// PatientProfile carries optional patient context shown in the chat header.
type PatientProfile struct {
    Location        *PatientLocation `json:"location"`
    HasClinicNotes  bool             `json:"hasClinicHistory"`
}

type PatientLocation struct {
    CountryCode string `json:"countryCode"`
    CountryName string `json:"countryName"`
    City        string `json:"city,omitempty"`
    ShortLabel  string `json:"shortDisplay"`
    FullLabel   string `json:"fullDisplay"`
}
