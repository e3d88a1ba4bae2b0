// File: internal/domain/message.go
package domain

import "time"

// MessageSender identifies who produced a message.
type MessageSender string

const (
    SenderPatient MessageSender = "USER"
    SenderBot     MessageSender = "BOT"
    SenderAgent   MessageSender = "AGENT"
    SenderSystem  MessageSender = "SYSTEM"
)

// MessageDirection is the transport direction relative to the patient.
type MessageDirection string

const (
    DirectionInbound  MessageDirection = "INBOUND"
    DirectionOutbound MessageDirection = "OUTBOUND"
)

// Message is a single message within a session. Immutable once created;
// insertion order is chronological order and the console trusts server order.
type Message struct {
    ID        string           `json:"id"`
    Content   string           `json:"content"`
    Sender    MessageSender    `json:"sender"`
    Direction MessageDirection `json:"direction"`
    AgentName string           `json:"agentName,omitempty"`
    Timestamp time.Time        `json:"timestamp"`
    Metadata  map[string]any   `json:"metadata,omitempty"`
}
