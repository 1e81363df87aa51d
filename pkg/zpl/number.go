package zpl

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Modulus is the size of a station's numbering space. Counters wrap back to
// zero when they reach it, so every number fits in six digits.
const Modulus = 1_000_000

// FormatCompact renders n as the six digit, zero padded form used inside
// scannable payloads.
func FormatCompact(n int) string {
	return fmt.Sprintf("%06d", normalize(n))
}

// FormatSpaced renders n as "NN NN NN" for operators to read.
func FormatSpaced(n int) string {
	s := FormatCompact(n)
	return s[0:2] + " " + s[2:4] + " " + s[4:6]
}

// ParseCompact is the inverse of FormatCompact.
func ParseCompact(s string) (int, error) {
	if len(s) != 6 {
		return 0, errors.Errorf("number %q must be 6 digits", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.Errorf("number %q must be 6 digits", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}

// Payload builds the machine readable content of the label's scan code.
func Payload(prefix, series string, n int) string {
	return prefix + series + "-" + FormatCompact(n)
}

func normalize(n int) int {
	n %= Modulus
	if n < 0 {
		n += Modulus
	}
	return n
}
