package coordinator

import (
	xxhash "github.com/cespare/xxhash/v2"
)

// contentHash fingerprints submission content for the audit trail. It is
// informational only: nothing deduplicates on it, so re-submitting
// identical content still gets a fresh submission id.
func contentHash(content string) string {
	if content == "" {
		return "0000000000000000"
	}
	sum := xxhash.Sum64String(content)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
