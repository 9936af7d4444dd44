package models

// Driver is one entry of the credential directory. PINs are stored and
// compared in clear text; that matches the deployed terminal and is recorded
// as a known gap rather than silently changed here.
type Driver struct {
	Pin   string `json:"-"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}
