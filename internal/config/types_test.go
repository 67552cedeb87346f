package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"hours", "24h", 24 * time.Hour, false},
		{"minutes", "90m", 90 * time.Minute, false},
		{"compound", "1h30m", 90 * time.Minute, false},
		{"negative", "-5m", 0, true},
		{"garbage", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration(6 * time.Hour)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "6h0m0s", string(text))
}
