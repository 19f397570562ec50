package idgen

import "github.com/google/uuid"

// UUID issues random identifiers with an optional prefix.
type UUID struct {
	prefix string
	newFn  func() (uuid.UUID, error)
}

// NewUUID creates a random identifier source.
func NewUUID(prefix string) *UUID {
	return &UUID{prefix: prefix, newFn: uuid.NewRandom}
}

// Next returns a fresh identifier.
func (u *UUID) Next() (string, error) {
	id, err := u.newFn()
	if err != nil {
		return "", err
	}
	return u.prefix + id.String(), nil
}
