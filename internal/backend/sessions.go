// File: internal/backend/sessions.go
package backend

import (
    "context"
    "net/url"
    "strconv"

    "github.com/salucare/triage-console/internal/domain"
)

// MessagePage is the message listing for a session plus the summary and
// patient context the backend returns with it.
type MessagePage struct {
    Messages       []domain.Message       `json:"messages"`
    SessionInfo    *domain.SessionInfo    `json:"sessionInfo"`
    PatientProfile *domain.PatientProfile `json:"patientProfile"`
}

// GetSession fetches a full session including its message sequence.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
    var session domain.Session
    if err := c.get(ctx, "get_session", "/admin/sessions/"+sessionID, nil, &session); err != nil {
        return nil, err
    }
    return &session, nil
}

// GetSessionMessages fetches the message page for a session.
func (c *Client) GetSessionMessages(ctx context.Context, sessionID string) (*MessagePage, error) {
    var page MessagePage
    if err := c.get(ctx, "get_session_messages", "/admin/sessions/"+sessionID+"/messages", nil, &page); err != nil {
        return nil, err
    }
    return &page, nil
}

// GetClinicalNotes lists the clinical notes of a session.
func (c *Client) GetClinicalNotes(ctx context.Context, sessionID string) ([]domain.ClinicalNote, error) {
    var notes []domain.ClinicalNote
    if err := c.get(ctx, "get_clinical_notes", "/admin/sessions/"+sessionID+"/notes", nil, &notes); err != nil {
        return nil, err
    }
    return notes, nil
}

type createNoteRequest struct {
    Content   string `json:"content"`
    IsPrivate bool   `json:"isPrivate"`
}

// AddClinicalNote appends a note to the session's clinical history.
func (c *Client) AddClinicalNote(ctx context.Context, sessionID, content string, isPrivate bool) (*domain.ClinicalNote, error) {
    var note domain.ClinicalNote
    err := c.post(ctx, "add_clinical_note", "/admin/sessions/"+sessionID+"/notes",
        createNoteRequest{Content: content, IsPrivate: isPrivate}, &note)
    if err != nil {
        return nil, err
    }
    return &note, nil
}

type sendMessageRequest struct {
    Message string `json:"message"`
}

// SendSessionMessage posts an operator reply into the session.
func (c *Client) SendSessionMessage(ctx context.Context, sessionID, message string) error {
    return c.post(ctx, "send_session_message", "/admin/sessions/"+sessionID+"/send-message",
        sendMessageRequest{Message: message}, nil)
}

// Intervene takes control of a bot-led session for the current operator.
func (c *Client) Intervene(ctx context.Context, sessionID string) error {
    return c.post(ctx, "intervene", "/admin/sessions/"+sessionID+"/intervene", nil, nil)
}

type conversationList struct {
    Conversations []domain.Conversation `json:"conversations"`
}

// MyConversations lists the conversations assigned to the current operator.
func (c *Client) MyConversations(ctx context.Context, limit int) ([]domain.Conversation, error) {
    query := url.Values{}
    if limit > 0 {
        query.Set("limit", strconv.Itoa(limit))
    }
    var data conversationList
    if err := c.get(ctx, "my_conversations", "/admin/my-conversations", query, &data); err != nil {
        return nil, err
    }
    return data.Conversations, nil
}
