package utils

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the hex xxhash64 fingerprint of input.
func Hash(input string) string {
	return strconv.FormatUint(xxhash.Sum64String(input), 16)
}
