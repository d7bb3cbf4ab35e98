package common

import (
	"github.com/google/uuid"
)

// NewNarrativeID generates a unique narrative ID with the "nar_" prefix
// Format: nar_<uuid>
func NewNarrativeID() string {
	return "nar_" + uuid.New().String()
}

// NewAuditID generates a unique audit log entry ID with the "aud_" prefix
func NewAuditID() string {
	return "aud_" + uuid.New().String()
}
