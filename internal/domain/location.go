package domain

import "strings"

// Location says whether the work happens on the client's premises.
type Location string

const (
	LocationInside  Location = "INSIDE"
	LocationOutside Location = "OUTSIDE"
)

func (l Location) Valid() bool {
	return l == LocationInside || l == LocationOutside
}

// ParseLocation accepts the canonical values and the human labels used by
// the office ("inside premises", "outside premises"), case-insensitively.
func ParseLocation(raw string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "inside", "inside premises":
		return LocationInside, nil
	case "outside", "outside premises":
		return LocationOutside, nil
	}
	return "", Invalid("location", "location must be one of INSIDE, OUTSIDE")
}
