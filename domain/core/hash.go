package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ScriptHash fingerprints the exact content of an analyzed source file so a
// report can be tied back to the revision it described.
type ScriptHash Hash

// NewScriptHash creates a script fingerprint from source content
func NewScriptHash(content []byte) ScriptHash {
	return ScriptHash(NewHash(content))
}

// String returns the string representation
func (h ScriptHash) String() string { return Hash(h).String() }

// Short returns a truncated fingerprint suitable for report headers
func (h ScriptHash) Short() string {
	s := Hash(h).String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
