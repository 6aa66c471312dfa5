package sources

import (
	"strconv"

	"github.com/google/uuid"
)

// Identifier is a parsed detail-page identifier: a numeric id or a public UUID.
type Identifier struct {
	ID       int64
	PublicID string
}

// ParseIdentifier returns false when raw is neither a positive integer nor a UUID.
func ParseIdentifier(raw string) (Identifier, bool) {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if id <= 0 {
			return Identifier{}, false
		}
		return Identifier{ID: id}, true
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return Identifier{}, false
	}
	return Identifier{PublicID: u.String()}, true
}

// Matches reports whether a record with the given id and public id is the one identified.
func (i Identifier) Matches(id int64, publicID string) bool {
	if i.PublicID != "" {
		return publicID == i.PublicID
	}
	return id == i.ID
}
