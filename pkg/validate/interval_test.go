package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"500ms", 500 * time.Millisecond},
		{"30s", 30 * time.Second},
		{"5m", 5 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseInterval(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseIntervalRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "30", "s", "-5m", "0h", "1.5h", "3w", "m5", "5 m"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseInterval(in)
			assert.Error(t, err)
			assert.False(t, IsInterval(in))
		})
	}
}
