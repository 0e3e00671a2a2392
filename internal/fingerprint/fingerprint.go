// Package fingerprint names the state of one schedule invocation.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Length is the number of hex characters kept from the digest.
const Length = 16

// Of returns the fingerprint of argv, the arguments after the program name.
// Identical argument lists always share a fingerprint.
func Of(argv []string) string {
	sum := sha256.Sum256([]byte(strings.Join(argv, "-")))
	return hex.EncodeToString(sum[:])[:Length]
}
