package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "http://api.local", "-x", "1"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://api.local"},
		},
		{
			name:    "equals form",
			args:    []string{"-a=http://api.local", "-x", "1"},
			allowed: []string{"-a"},
			want:    []string{"-a=http://api.local"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-a"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-t"},
			allowed: []string{"-t"},
			want:    []string{"-t"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-s", "-b", "redis"},
			allowed: []string{"-s", "-b"},
			want:    []string{"-s", "-b", "redis"},
		},
		{
			name:    "repeated flags keep order",
			args:    []string{"-l", "debug", "-l", "warn"},
			allowed: []string{"-l"},
			want:    []string{"-l", "debug", "-l", "warn"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-a"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/gophgive.json", ConfigFileFlag([]string{"-c", "/etc/gophgive.json"}))
	assert.Equal(t, "cfg.yaml", ConfigFileFlag([]string{"-a", "x", "-config", "cfg.yaml"}))
	assert.Equal(t, "cfg.yaml", ConfigFileFlag([]string{"-config=cfg.yaml"}))
	assert.Equal(t, "second.json", ConfigFileFlag([]string{"-c", "first.json", "-config", "second.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-x", "1"}))
}
