package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags gives each test a fresh flag set and viper instance
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	viper.Reset()
}

// withArgs runs LoadFromFlags against args, restoring global state after
func withArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	originalArgs := os.Args
	t.Cleanup(func() {
		os.Args = originalArgs
		resetFlags()
	})

	os.Args = append([]string{"esic-ip-extractor"}, args...)
	resetFlags()
	return LoadFromFlags()
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	cfg, err := withArgs(t)
	require.NoError(t, err)

	assert.Equal(t, "stdio", cfg.Mode)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, "|", cfg.Delimiter)
	assert.NotEmpty(t, cfg.PDFDirectory)
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	dir := t.TempDir()

	cfg, err := withArgs(t,
		"--mode=server",
		"--host=0.0.0.0",
		"--port=5000",
		"--dir="+dir,
		"--loglevel=debug",
		"--maxfilesize=1048576",
		"--delimiter=,",
		"--logo=/srv/brand/logo.png",
		"--snaptolerance=2.5",
		"--jointolerance=1.5",
	)
	require.NoError(t, err)

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
	assert.Equal(t, dir, cfg.PDFDirectory)
	assert.True(t, cfg.IsDebug())
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, "/srv/brand/logo.png", cfg.LogoPath)
	assert.Equal(t, 2.5, cfg.SnapTolerance)
	assert.Equal(t, 1.5, cfg.JoinTolerance)
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ESIC_MODE", "server")
	t.Setenv("ESIC_PORT", "3000")
	t.Setenv("ESIC_DIR", dir)
	t.Setenv("ESIC_LOGLEVEL", "warn")
	t.Setenv("ESIC_MAXFILESIZE", "200000000")
	t.Setenv("ESIC_DELIMITER", ";")

	cfg, err := withArgs(t)
	require.NoError(t, err)

	assert.Equal(t, "server", cfg.Mode)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, dir, cfg.PDFDirectory)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(200000000), cfg.MaxFileSize)
	assert.Equal(t, ";", cfg.Delimiter)
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("ESIC_MODE", "server")
	t.Setenv("ESIC_PORT", "3000")

	cfg, err := withArgs(t, "--port=4000", "--dir="+t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "server", cfg.Mode)
	assert.Equal(t, 4000, cfg.Port)
}

func TestLoadFromFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "mode", args: []string{"--mode=grpc"}, want: "mode must be"},
		{name: "port", args: []string{"--mode=server", "--port=70000"}, want: "port must be"},
		{name: "log level", args: []string{"--loglevel=verbose"}, want: "invalid log level"},
		{name: "delimiter", args: []string{"--delimiter="}, want: "delimiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := withArgs(t, append(tt.args, "--dir="+t.TempDir())...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	for _, flag := range []string{"--version", "-version", "-v"} {
		_, err := withArgs(t, flag)
		require.Error(t, err)
		assert.Equal(t, "version requested", err.Error())
	}
}
