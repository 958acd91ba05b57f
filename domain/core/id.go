package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies one validation, surgery, or correction run.
	RunID ID
	// CheckID identifies a single rule evaluation within a run.
	CheckID ID
)

// String conversions for domain IDs
func (id RunID) String() string   { return ID(id).String() }
func (id CheckID) String() string { return ID(id).String() }

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseCheckID parses a string into CheckID
func ParseCheckID(s string) (CheckID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("check ID cannot be empty")
	}
	return CheckID(s), nil
}
