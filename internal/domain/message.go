package domain

import "time"

// Senders recorded on chat messages.
const (
	SenderUser  = "user"
	SenderAgent = "agent"
)

// ChatMessage is one turn in an agent conversation.
type ChatMessage struct {
	ID        int       `json:"id"        db:"id"`
	AgentID   int       `json:"agent_id"  db:"agent_id"`
	Message   string    `json:"message"   db:"message"`
	Sender    string    `json:"sender"    db:"sender"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
