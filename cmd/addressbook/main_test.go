package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/addressbook/config"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "addressbook version "+Version+" (build: "+BuildTime+")\n", out)
}

func TestExecCommand(t *testing.T) {
	isolateHome(t)
	dataPath := filepath.Join(t.TempDir(), "addressbook.json")

	out, err := runCLI(t, "", "exec", "--data", dataPath, "add", "n/John", "Doe", "p/98765432", "e/johnd@example.com", "a/street")
	require.NoError(t, err)
	assert.Contains(t, out, "New person added: John Doe")

	out, err = runCLI(t, "", "exec", "--data", dataPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1. John Doe")

	_, err = runCLI(t, "", "exec", "--data", dataPath, "frobnicate")
	assert.EqualError(t, err, "Unknown command")
}

func TestRootCommandRunsREPL(t *testing.T) {
	isolateHome(t)
	dataPath := filepath.Join(t.TempDir(), "addressbook.json")

	out, err := runCLI(t, "add n/Jane p/12345678 e/jane@example.com a/lane\nexit\n", "--data", dataPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Addressbook v"+Version)
	assert.Contains(t, out, "New person added: Jane")

	_, err = os.Stat(dataPath)
	assert.NoError(t, err, "data file is written after a change")
}

func TestCheckCommand(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0755))
	good := filepath.Join(dir, "a", "good.json")
	bad := filepath.Join(dir, "a", "b", "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"persons": [], "tasks": []}`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(invalidPersonData), 0644))

	out, err := runCLI(t, "", "check", filepath.Join(dir, "**", "good.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "good.json: 0 persons, 0 tasks loaded")

	out, err = runCLI(t, "", "check", filepath.Join(dir, "**", "*.json"))
	assert.EqualError(t, err, "invalid records found")
	assert.Contains(t, out, "bad.json: 1 persons")

	_, err = runCLI(t, "", "check", filepath.Join(dir, "**", "*.yaml"))
	assert.Error(t, err)
}

func TestConfigInitCommand(t *testing.T) {
	home := isolateHome(t)

	out, err := runCLI(t, "", "config", "init")
	require.NoError(t, err)

	want := filepath.Join(home, config.UserConfigDir, config.UserConfigFile)
	assert.Equal(t, want+"\n", out)
	_, err = os.Stat(want)
	assert.NoError(t, err)
}

func TestSetupAppliesFlagOverrides(t *testing.T) {
	home := isolateHome(t)
	userConfig := filepath.Join(home, config.UserConfigDir, config.UserConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfig), 0755))
	require.NoError(t, os.WriteFile(userConfig, []byte("data:\n  path: /from/user.json\nlog:\n  level: info\n"), 0644))

	cmd := rootCmd()
	cmd.SetErr(&bytes.Buffer{})

	app, err := setup(cmd, globalOptions{dataPath: "/from/flag.json"})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.json", app.cfg.Data.Path)
	assert.Equal(t, "info", app.cfg.Log.Level)

	_, err = setup(cmd, globalOptions{logLevel: "loud"})
	assert.Error(t, err)
}

func TestSetupFlagsReplaceInvalidEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv("ADDRESSBOOK_LOG_LEVEL", "verbose")
	t.Setenv("ADDRESSBOOK_LOG_FORMAT", "xml")

	cmd := rootCmd()
	cmd.SetErr(&bytes.Buffer{})
	dataPath := filepath.Join(t.TempDir(), "addressbook.json")

	app, err := setup(cmd, globalOptions{logLevel: "debug", logFormat: "json", dataPath: dataPath})
	require.NoError(t, err)
	assert.Equal(t, "debug", app.cfg.Log.Level)
	assert.Equal(t, "json", app.cfg.Log.Format)

	_, err = setup(cmd, globalOptions{dataPath: dataPath})
	assert.ErrorContains(t, err, "invalid configuration")
}
