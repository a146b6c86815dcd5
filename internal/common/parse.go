package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseUint32orHex parses a decimal or 0x-prefixed hex number that must fit
// in 32 bits, as block heights and header timestamps do.
func ParseUint32orHex(val string) (uint32, error) {
	digits, base := val, 10
	if rest, ok := strings.CutPrefix(strings.ToLower(val), "0x"); ok {
		digits, base = rest, 16
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid uint32 %q: %w", val, err)
	}

	return uint32(v), nil
}

const bytesInMB = 1024 * 1024

func BytesToMB(bytes uint64) uint64 {
	return bytes / bytesInMB
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
