package models

import "time"

// TerminalState is the snapshot served to the presentation client: who is
// logged in, the current availability and its color, the last known position
// and the most recent transient error message, if any.
type TerminalState struct {
	Name        string    `json:"name,omitempty"`
	Role        string    `json:"role,omitempty"`
	LoggedIn    bool      `json:"logged_in"`
	Status      string    `json:"status"`
	StatusColor string    `json:"status_color,omitempty"`
	Position    *Position `json:"position,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
