package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"15s"`, want: 15 * time.Second},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		Timeout Duration `yaml:"timeout"`
		Raw     Duration `yaml:"raw"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("timeout: 2m\nraw: 500\n"), &cfg))
	assert.Equal(t, 2*time.Minute, cfg.Timeout.Duration)
	assert.Equal(t, 500*time.Nanosecond, cfg.Raw.Duration)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 3 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"3s"`, string(b))
}
