package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		hasErr bool
	}{
		{
			name:  "search form value without offset",
			input: "2025-03-20T08:00:00",
			want:  time.Date(2025, 3, 20, 8, 0, 0, 0, WAT),
		},
		{
			name:  "rfc3339 with utc",
			input: "2025-03-20T07:00:00Z",
			want:  time.Date(2025, 3, 20, 7, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2025-03-20",
			want:  time.Date(2025, 3, 20, 0, 0, 0, 0, WAT),
		},
		{
			name:   "garbage",
			input:  "next tuesday",
			hasErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISO(tt.input)
			if tt.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestMinutesOfDay(t *testing.T) {
	m, err := MinutesOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, m)

	m, err = MinutesOfDay("2:15 pm")
	require.NoError(t, err)
	assert.Equal(t, 14*60+15, m)

	_, err = MinutesOfDay("noon")
	assert.Error(t, err)
}
