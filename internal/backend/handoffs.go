// File: internal/backend/handoffs.go
package backend

import (
    "context"
    "encoding/json"

    "github.com/salucare/triage-console/internal/domain"
)

// handoffBuckets is the alternative list shape some backend revisions return
// instead of a flat array.
type handoffBuckets struct {
    Pending    []domain.Handoff `json:"pending"`
    InProgress []domain.Handoff `json:"inProgress"`
}

// ListHandoffs fetches the open handoff queue. The backend has shipped two
// payload shapes for this endpoint; both decode to one flat list, pending
// before in-progress.
func (c *Client) ListHandoffs(ctx context.Context) ([]domain.Handoff, error) {
    var raw json.RawMessage
    if err := c.get(ctx, "list_handoffs", "/admin/handoffs", nil, &raw); err != nil {
        return nil, err
    }

    var flat []domain.Handoff
    if err := json.Unmarshal(raw, &flat); err == nil {
        return flat, nil
    }

    var buckets handoffBuckets
    if err := json.Unmarshal(raw, &buckets); err != nil {
        return nil, newDecodeError("list_handoffs", err)
    }
    return append(buckets.Pending, buckets.InProgress...), nil
}

// GetHandoff fetches a single handoff by id.
func (c *Client) GetHandoff(ctx context.Context, handoffID string) (*domain.Handoff, error) {
    var handoff domain.Handoff
    if err := c.get(ctx, "get_handoff", "/admin/handoffs/"+handoffID, nil, &handoff); err != nil {
        return nil, err
    }
    return &handoff, nil
}

type respondRequest struct {
    Message string `json:"message"`
}

// RespondHandoff sends the operator's reply to the patient behind a handoff.
func (c *Client) RespondHandoff(ctx context.Context, handoffID, message string) error {
    return c.post(ctx, "respond_handoff", "/admin/handoffs/"+handoffID+"/respond",
        respondRequest{Message: message}, nil)
}

type resolveRequest struct {
    Resolution string `json:"resolution"`
}

// ResolveHandoff marks the handoff completed with a resolution note.
func (c *Client) ResolveHandoff(ctx context.Context, handoffID, resolution string) error {
    return c.post(ctx, "resolve_handoff", "/admin/handoffs/"+handoffID+"/resolve",
        resolveRequest{Resolution: resolution}, nil)
}

type reassignRequest struct {
    AgentID string `json:"agentId"`
}

// ReassignHandoff moves an in-progress handoff to another agent.
func (c *Client) ReassignHandoff(ctx context.Context, handoffID, agentID string) error {
    return c.post(ctx, "reassign_handoff", "/admin/handoffs/"+handoffID+"/reassign",
        reassignRequest{AgentID: agentID}, nil)
}

type agentList struct {
    Agents []domain.Agent `json:"agents"`
}

// ListAgents lists staff eligible for reassignment.
func (c *Client) ListAgents(ctx context.Context) ([]domain.Agent, error) {
    var data agentList
    if err := c.get(ctx, "list_agents", "/admin/agents", nil, &data); err != nil {
        return nil, err
    }
    return data.Agents, nil
}
