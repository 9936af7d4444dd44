package models

// Availability labels shown on the driver terminal. The set is fixed; the
// colors are purely presentational and ride along for the client.
const (
	StatusFree    = "Vapaa"
	StatusOnTrip  = "Ajossa"
	StatusOffDuty = "Ei käytössä"

	DefaultStatus = StatusFree
)

// StatusOption pairs an availability label with its display color.
type StatusOption struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusOptions returns the fixed option set in display order.
func StatusOptions() []StatusOption {
	return []StatusOption{
		{Label: StatusFree, Color: "green"},
		{Label: StatusOnTrip, Color: "red"},
		{Label: StatusOffDuty, Color: "black"},
	}
}

// ValidStatus reports whether label is one of the fixed availability labels.
func ValidStatus(label string) bool {
	for _, opt := range StatusOptions() {
		if opt.Label == label {
			return true
		}
	}
	return false
}

// StatusColor returns the display color for a label, or "" if unknown.
func StatusColor(label string) string {
	for _, opt := range StatusOptions() {
		if opt.Label == label {
			return opt.Color
		}
	}
	return ""
}
