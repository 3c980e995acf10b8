package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "plain day",
			input: `"2025-11-16"`,
			want:  time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wrong layout",
			input:   `"16/11/2025"`,
			wantErr: true,
		},
		{
			name:    "number instead of string",
			input:   `5`,
			wantErr: true,
		},
		{
			name:    "null",
			input:   `null`,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   `""`,
			wantErr: true,
		},
		{
			name:    "bare quote",
			input:   `"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOnly
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time))
		})
	}
}

func TestDateOnlyMarshal(t *testing.T) {
	d := DateOnly{Time: time.Date(2025, 11, 16, 23, 30, 0, 0, time.FixedZone("BRT", -3*60*60))}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-11-17"`, string(b))
}
