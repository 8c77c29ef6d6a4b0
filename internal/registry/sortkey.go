package registry

import (
	"strconv"
	"strings"
)

// SortKey derives the numeric ordering key for a car number. Leading zeros
// are insignificant ("001" and "1" share a key). Non-numeric numbers have
// no key and sort after all numeric ones; the key is used only for display
// ordering, never for identity.
func SortKey(carNumber string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(carNumber))
	if err != nil {
		return nil
	}
	return &n
}
