package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPathFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no args",
			args: nil,
			want: "",
		},
		{
			name: "separate value",
			args: []string{"serve", "--config", "/etc/workforce.toml"},
			want: "/etc/workforce.toml",
		},
		{
			name: "equals form",
			args: []string{"--config=local.toml", "config", "show"},
			want: "local.toml",
		},
		{
			name: "flag without value",
			args: []string{"serve", "--config"},
			want: "",
		},
		{
			name: "after terminator",
			args: []string{"replay", "--", "--config", "x.toml"},
			want: "",
		},
		{
			name: "other flags only",
			args: []string{"serve", "--addr", ":9000"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configPathFromArgs(tt.args))
		})
	}
}

func TestRun_Version(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.NoError(t, run([]string{"--version"}))
}
