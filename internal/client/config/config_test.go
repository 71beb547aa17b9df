package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "server_url: http://studio.test/api\nrequest_timeout: 45s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://studio.test/api", cfg.ServerURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel, "unset keys keep defaults")
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeFile(t, "server_url: [unclosed"))
	assert.Error(t, err)
}

func TestFromFlags_FlagsWinOverFile(t *testing.T) {
	path := writeFile(t, "server_url: http://file.test\nlog_level: info\n")
	fs := pflag.NewFlagSet("studio", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-c", path, "--server", "http://flag.test", "--timeout", "2m"}))

	cfg, err := FromFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.test", cfg.ServerURL)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromFlags_RejectsEmptyServer(t *testing.T) {
	fs := pflag.NewFlagSet("studio", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-c", writeFile(t, "{}\n"), "--server", ""}))

	_, err := FromFlags(fs)
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "state"), expandHome("~/state"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
