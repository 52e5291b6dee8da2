package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/addressbook/commands"
	"github.com/c360studio/addressbook/config"
	"github.com/c360studio/addressbook/storage"
)

const invalidPersonData = `{
  "persons": [
    {"name": "Alice Pauline", "phone": "94351253", "email": "alice@example.com", "address": "123, Jurong West Ave 6", "tags": []},
    {"name": "Hans Muster", "phone": "9482424", "email": "invalid@email!3e", "address": "4th street", "tags": []}
  ],
  "tasks": []
}`

func newTestApp(t *testing.T, dataPath string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Data.Path = dataPath
	cfg.Metrics.File = filepath.Join(t.TempDir(), "addressbook.prom")

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := NewApp(cfg, logger, &out)
	require.NoError(t, err)
	return app, &out
}

func TestAppExecuteSavesChanges(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data", "addressbook.json")

	app, _ := newTestApp(t, dataPath)
	require.NoError(t, app.Start())

	result, err := app.Execute("add n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2")
	require.NoError(t, err)
	assert.True(t, result.Mutated)

	_, err = app.Execute("add-task 1 d/Buy medication")
	require.NoError(t, err)

	// A second instance sees the saved state
	again, _ := newTestApp(t, dataPath)
	require.NoError(t, again.Start())
	assert.Len(t, again.session.Book.Persons(), 1)
	assert.Len(t, again.session.Book.Tasks(), 1)
}

func TestAppExecuteReportsUserErrors(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "addressbook.json"))
	require.NoError(t, app.Start())

	_, err := app.Execute("frobnicate")
	require.Error(t, err)
	assert.Equal(t, commands.CodeUnknownCommand, commands.ErrorCode(err))
	assert.True(t, isUserError(err))

	_, err = app.Execute("delete 1")
	require.Error(t, err)
	assert.Equal(t, commands.MessageInvalidPersonDisplayedIndex, err.Error())
	assert.True(t, isUserError(err))
}

func TestAppStartReportsDroppedRecords(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "addressbook.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(invalidPersonData), 0644))

	app, out := newTestApp(t, dataPath)
	require.NoError(t, app.Start())

	assert.Len(t, app.session.Book.Persons(), 1)
	assert.Contains(t, out.String(), "1 invalid record(s)")
}

func TestAppRunREPL(t *testing.T) {
	app, out := newTestApp(t, filepath.Join(t.TempDir(), "addressbook.json"))
	require.NoError(t, app.Start())

	input := strings.Join([]string{
		"add n/John Doe p/98765432 e/johnd@example.com a/street",
		"",
		"bogus",
		"list",
		"exit",
		"clear",
	}, "\n")

	require.NoError(t, app.RunREPL(context.Background(), strings.NewReader(input)))

	output := out.String()
	assert.Contains(t, output, "New person added: John Doe")
	assert.Contains(t, output, commands.MessageUnknownCommand)
	assert.Contains(t, output, "1. John Doe")
	assert.Contains(t, output, "Exiting Address Book as requested ...")
	assert.Len(t, app.session.Book.Persons(), 1, "commands after exit are not run")
}

func TestAppRunREPLStopsAtEOF(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "addressbook.json"))
	require.NoError(t, app.Start())

	assert.NoError(t, app.RunREPL(context.Background(), strings.NewReader("list")))
}

func TestAppRunREPLAcceptsLongLines(t *testing.T) {
	app, out := newTestApp(t, filepath.Join(t.TempDir(), "addressbook.json"))
	require.NoError(t, app.Start())

	long := "find " + strings.Repeat("x", 256*1024)
	input := "add n/John Doe p/98765432 e/johnd@example.com a/street\r\n" + long + "\nlist\nexit\n"

	require.NoError(t, app.RunREPL(context.Background(), strings.NewReader(input)))

	output := out.String()
	assert.Contains(t, output, "New person added: John Doe")
	assert.Contains(t, output, "0 persons listed!")
	assert.Contains(t, output, "1. John Doe")
	assert.Contains(t, output, "Exiting Address Book as requested ...")
}

func TestAppShutdownWritesMetrics(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "addressbook.json"))
	require.NoError(t, app.Start())
	_, _ = app.Execute("list")
	_, _ = app.Execute("nope")

	require.NoError(t, app.Shutdown())

	data, err := os.ReadFile(app.cfg.Metrics.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `addressbook_commands_parsed_total{keyword="list"} 1`)
	assert.Contains(t, string(data), `addressbook_command_parse_failures_total{reason="unknown"} 1`)
}

func TestAppCheck(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte(invalidPersonData), 0644))
	require.NoError(t, os.WriteFile(broken, []byte(`{"persons": []}`), 0644))

	app, out := newTestApp(t, filepath.Join(dir, "unused.json"))

	reports, err := app.Check([]string{bad, broken})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrMissingCollection)

	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].Count(storage.KindPerson, storage.StatusAccepted))
	assert.Len(t, reports[0].Invalid(), 1)

	output := out.String()
	assert.Contains(t, output, "bad.json: 1 persons, 0 tasks loaded; 1 invalid, 0 duplicate records ignored")
	assert.Contains(t, output, "person #2:")
	assert.Contains(t, output, "broken.json:")
}
