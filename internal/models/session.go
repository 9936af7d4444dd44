package models

// Roles assigned at login. RoleNone is the persisted default before any
// login has happened on this terminal.
const (
	RoleNone  = ""
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is the in-memory record of the currently authenticated operator.
// LoggedIn always starts false on process start; login is explicit.
type Session struct {
	Pin      string `json:"-"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	LoggedIn bool   `json:"logged_in"`
}
