package xid

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a prefixed random identifier, e.g. "audit-3f0c...".
func New(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// Session returns a bare identifier for dashboard sessions.
func Session() string {
	return uuid.NewString()
}

// ValidSession accepts only identifiers Session could have produced.
func ValidSession(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
