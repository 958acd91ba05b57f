package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"valid-id", RunID("valid-id"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRunID(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("ParseRunID(%q): expected error, got none", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRunID(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ParseRunID(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// TestScriptHash tests content fingerprinting
func TestScriptHash(t *testing.T) {
	a := NewScriptHash([]byte("x = 1;\n"))
	b := NewScriptHash([]byte("x = 1;\n"))
	c := NewScriptHash([]byte("x = 2;\n"))

	if !Hash(a).Equals(Hash(b)) {
		t.Error("Identical content should produce identical hashes")
	}
	if Hash(a).Equals(Hash(c)) {
		t.Error("Different content should produce different hashes")
	}
	if len(a.Short()) != 12 {
		t.Errorf("Short() should return 12 characters, got %d", len(a.Short()))
	}
}
