package content

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize concatenates an entry's identifying content after cleaning
// each part. It trims whitespace, lowercases, and normalizes line
// endings for each field before joining them.
func Normalize(e Entry) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	s := normalizePart(string(e.Subject))
	c := normalizePart(e.Chapter)
	t := normalizePart(e.Topic)

	// Joined with a newline so fields cannot run together and collide,
	// e.g. chapter "a" + topic "bc" versus chapter "ab" + topic "c".
	return strings.Join([]string{s, c, t}, "\n")
}

// Fingerprint normalizes an entry and returns its SHA-256 hash as a hex
// string. Hints are deliberately left out: rewording a hint should not
// make the sync treat the topic as new and reset its counters.
func Fingerprint(e Entry) string {
	normalized := Normalize(e)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}
