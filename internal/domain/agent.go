package domain

import "time"

// Agent is a chat persona surfaced on the dashboard.
type Agent struct {
	ID          int       `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Role        string    `json:"role"        db:"role"`
	Avatar      string    `json:"avatar"      db:"avatar"`
	Color       string    `json:"color"       db:"color"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status"      db:"status"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// AgentPatch carries a partial agent update; nil fields are left unchanged.
type AgentPatch struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Avatar      *string `json:"avatar"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}
