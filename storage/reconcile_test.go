package storage

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/addressbook/metrics"
	"github.com/c360studio/addressbook/model"
	abtest "github.com/c360studio/addressbook/model/testutil"
)

// captureLogger returns a logger that writes text records into buf.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func loadTestdata(t *testing.T, name string) *Snapshot {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	snap, err := Decode(data)
	require.NoError(t, err)
	return snap
}

func TestReconcile_TypicalPersons(t *testing.T) {
	rc := NewReconciler(nil, nil)

	book, report, err := rc.Reconcile(loadTestdata(t, "typicalPersonsAddressBook.json"))
	require.NoError(t, err)

	expected := model.NewAddressBook()
	for _, p := range abtest.TypicalPersons() {
		require.NoError(t, expected.AddPerson(p))
	}
	assert.True(t, expected.Equal(book))
	assert.Equal(t, 3, report.Count(KindPerson, StatusAccepted))
}

func TestReconcile_DuplicatePersonsIgnored(t *testing.T) {
	var logs bytes.Buffer
	rc := NewReconciler(captureLogger(&logs), nil)

	book, report, err := rc.Reconcile(loadTestdata(t, "duplicatePersonAddressBook.json"))
	require.NoError(t, err)

	persons := book.Persons()
	require.Len(t, persons, 2)
	assert.True(t, persons[0].Equal(abtest.Alice()))
	assert.True(t, persons[1].Equal(abtest.Benson()), "first accepted record wins")
	assert.Equal(t, 2, report.Count(KindPerson, StatusDuplicate))
	assert.NotContains(t, logs.String(), "level=WARN", "duplicates are dropped silently")
}

func TestReconcile_InvalidPersonLogsWarning(t *testing.T) {
	var logs bytes.Buffer
	rc := NewReconciler(captureLogger(&logs), nil)

	book, report, err := rc.Reconcile(loadTestdata(t, "invalidPersonAddressBook.json"))
	require.NoError(t, err)

	assert.Len(t, book.Persons(), 2)
	assert.Contains(t, logs.String(), "illegal value found in JSON data for person and ignored:")
	assert.Contains(t, logs.String(), "invalid email")

	invalid := report.Invalid()
	require.Len(t, invalid, 1)
	assert.Equal(t, 0, invalid[0].Index)
	var fe *model.FieldError
	assert.ErrorAs(t, invalid[0].Err, &fe)
}

func TestReconcile_TypicalTasks(t *testing.T) {
	rc := NewReconciler(nil, nil)

	book, _, err := rc.Reconcile(loadTestdata(t, "typicalTasksAddressBook.json"))
	require.NoError(t, err)

	expected := model.NewAddressBook()
	require.NoError(t, expected.AddPerson(abtest.Alice()))
	require.NoError(t, expected.AddPerson(abtest.Benson()))
	for _, task := range abtest.TypicalTasks() {
		require.NoError(t, expected.AddTask(task))
	}
	assert.True(t, expected.Equal(book))
}

func TestReconcile_InvalidTasksIgnored(t *testing.T) {
	var logs bytes.Buffer
	rc := NewReconciler(captureLogger(&logs), nil)

	book, report, err := rc.Reconcile(loadTestdata(t, "invalidTaskAddressBook.json"))
	require.NoError(t, err)

	tasks := book.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Equal(model.Task{Person: abtest.Alice(), Description: "Buy medication", Done: true}))

	assert.Equal(t, 2, report.Count(KindPerson, StatusInvalid), "an invalid duplicate is reported as invalid")
	assert.Equal(t, 5, report.Count(KindTask, StatusInvalid))
	assert.Contains(t, logs.String(), "illegal value found in JSON data for task and ignored:")
	assert.Equal(t, 5, strings.Count(logs.String(), "for task and ignored"))
}

func TestReconcile_TaskForDroppedPerson(t *testing.T) {
	var logs bytes.Buffer
	rc := NewReconciler(captureLogger(&logs), nil)

	valid := rawPerson(abtest.Carl())
	invalid := valid
	invalid.Phone = "not-a-phone"
	done := false

	snap := &Snapshot{
		Persons: []RawPerson{invalid},
		Tasks:   []RawTask{{Person: valid, Description: "Pay rent", IsDone: &done}},
	}

	book, report, err := rc.Reconcile(snap)
	require.NoError(t, err)

	assert.Empty(t, book.Tasks())
	require.Len(t, report.Invalid(), 2)
	assert.ErrorIs(t, report.Invalid()[1].Err, ErrPersonNotInBook)
	assert.Contains(t, logs.String(), "task's person is not in the address book")
}

func TestReconcile_DuplicateTasksFirstWins(t *testing.T) {
	rc := NewReconciler(nil, nil)

	book, report, err := rc.Reconcile(loadTestdata(t, "duplicateTaskAddressBook.json"))
	require.NoError(t, err)

	tasks := book.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy medication", tasks[0].Description)
	assert.True(t, tasks[0].Done, "the first encountered record is kept")
	assert.Equal(t, "Visit doctor", tasks[1].Description)
	assert.Equal(t, 1, report.Count(KindTask, StatusDuplicate))
}

func TestReconcile_MissingCollection(t *testing.T) {
	rc := NewReconciler(nil, nil)

	tests := []struct {
		name string
		snap *Snapshot
	}{
		{"nil snapshot", nil},
		{"nil persons", &Snapshot{Tasks: []RawTask{}}},
		{"nil tasks", &Snapshot{Persons: []RawPerson{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := rc.Reconcile(tt.snap)
			assert.ErrorIs(t, err, ErrMissingCollection)
		})
	}
}

func TestReconcile_RoundTripIsIdempotent(t *testing.T) {
	rc := NewReconciler(nil, nil)
	first := abtest.TypicalAddressBook()

	data, err := Encode(FromModel(first))
	require.NoError(t, err)
	snap, err := Decode(data)
	require.NoError(t, err)

	second, report, err := rc.Reconcile(snap)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Empty(t, report.Invalid())

	data2, err := Encode(FromModel(second))
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(data2))
}

func TestReconcile_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)
	rc := NewReconciler(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), rec)

	_, _, err = rc.Reconcile(loadTestdata(t, "invalidTaskAddressBook.json"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.RecordsLoaded.WithLabelValues("person", metrics.OutcomeAccepted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.RecordsLoaded.WithLabelValues("person", metrics.OutcomeInvalid)))
	assert.Equal(t, 5.0, testutil.ToFloat64(rec.RecordsLoaded.WithLabelValues("task", metrics.OutcomeInvalid)))
}
