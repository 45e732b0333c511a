package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashIdentifier returns a short SHA-256 digest of a contact identifier
// (email or phone) so logs can correlate submissions without storing PII.
// Case and surrounding whitespace are ignored.
func HashIdentifier(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:8])
}
