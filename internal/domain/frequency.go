package domain

import "strings"

// Frequency is the cadence attached to a user-entered amount
type Frequency string

const (
	Weekly      Frequency = "Weekly"
	Fortnightly Frequency = "Fortnightly"
	Monthly     Frequency = "Monthly"
	Yearly      Frequency = "Yearly"
)

// ParseFrequency maps a form value onto a Frequency. Matching ignores case and
// surrounding whitespace; anything unrecognised is returned as-is so the
// normalizer can apply its monthly default.
func ParseFrequency(raw string) Frequency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "weekly":
		return Weekly
	case "fortnightly":
		return Fortnightly
	case "monthly":
		return Monthly
	case "yearly", "annually", "annual":
		return Yearly
	}
	return Frequency(strings.TrimSpace(raw))
}

// Label returns the short unit used in scenario labels ("week", "month").
func (f Frequency) Label() string {
	switch f {
	case Weekly:
		return "week"
	case Fortnightly:
		return "fortnight"
	case Yearly:
		return "year"
	default:
		return "month"
	}
}
