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
			args:    []string{"-d", "tour.db", "-delay", "1s"},
			allowed: []string{"-d"},
			want:    []string{"-d", "tour.db"},
		},
		{
			name:    "equals form",
			args:    []string{"-driver=pgx", "-log", "zap"},
			allowed: []string{"-driver"},
			want:    []string{"-driver=pgx"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not consumed as value",
			args:    []string{"-c", "-delay", "2s"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "order and repeats preserved",
			args:    []string{"-log", "json", "-d", "a.db", "-log", "zap"},
			allowed: []string{"-log", "-d"},
			want:    []string{"-log", "json", "-d", "a.db", "-log", "zap"},
		},
		{
			name:    "empty input",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "/etc/tour.json", ConfigFilePath([]string{"-c", "/etc/tour.json"}))
	assert.Equal(t, "long.json", ConfigFilePath([]string{"-config", "long.json", "-d", "x.db"}))
	assert.Equal(t, "eq.json", ConfigFilePath([]string{"-config=eq.json"}))
	assert.Equal(t, "second.json", ConfigFilePath([]string{"-c", "first.json", "-config", "second.json"}))
	assert.Empty(t, ConfigFilePath([]string{"-d", "x.db"}))
}
