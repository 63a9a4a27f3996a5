// Package dedupe provides content fingerprinting and batch-scoped duplicate
// detection for resume texts.
package dedupe

import (
	"strconv"
	"unicode/utf16"
)

// Fingerprint returns a stable content fingerprint for the given text: a
// multiply-by-31 rolling hash over UTF-16 code units with signed 32-bit
// wraparound, formatted as the decimal string of the signed result.
//
// This is a content fingerprint, not a cryptographic hash. Collisions are
// possible and acceptable; the fingerprint only feeds same-batch duplicate
// marking. The empty string hashes to "0", so two truly empty resumes are
// flagged as duplicates of each other, which is intentional.
func Fingerprint(text string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(text)) {
		h = h*31 + int32(unit)
	}
	return strconv.FormatInt(int64(h), 10)
}
