// Package domain holds the records exchanged with the business API. Each
// record reports a Key that is unique within its collection.
package domain

import "strconv"

// ID is a server assigned integer identifier.
type ID int64

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseID parses a decimal identifier from a path segment.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}
