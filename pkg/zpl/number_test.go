package zpl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "000041", FormatCompact(41))
	assert.Equal(t, "00 00 41", FormatSpaced(41))
	assert.Equal(t, "999999", FormatCompact(999999))
	assert.Equal(t, "12 34 56", FormatSpaced(123456))
	assert.Equal(t, "000000", FormatCompact(Modulus))
}

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	for n := 0; n < Modulus; n++ {
		compact := FormatCompact(n)
		got, err := ParseCompact(compact)
		if err != nil || got != n {
			t.Fatalf("round trip failed for %d: got %d, err %v", n, got, err)
		}
		if spaced := FormatSpaced(n); strings.ReplaceAll(spaced, " ", "") != compact || spaced[2] != ' ' || spaced[5] != ' ' {
			t.Fatalf("spaced form %q doesn't match compact %q", spaced, compact)
		}
	}
}

func TestParseCompact_Invalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "41", "0000041", "00 041", "-00041", "00a041"} {
		_, err := ParseCompact(s)
		require.Error(t, err, s)
	}
}

func TestPayload(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "TRO-2501-000041", Payload("TRO-", "2501", 41))
	assert.Equal(t, "2501-000000", Payload("", "2501", 0))
}
