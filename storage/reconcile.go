package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/c360studio/addressbook/metrics"
	"github.com/c360studio/addressbook/model"
)

const (
	msgIllegalPerson = "illegal value found in JSON data for person and ignored"
	msgIllegalTask   = "illegal value found in JSON data for task and ignored"
)

// RecordKind identifies which collection a record came from.
type RecordKind string

// Record kinds.
const (
	KindPerson RecordKind = "person"
	KindTask   RecordKind = "task"
)

// Status is what the reconciler did with one record.
type Status string

// Record statuses.
const (
	StatusAccepted  Status = metrics.OutcomeAccepted
	StatusInvalid   Status = metrics.OutcomeInvalid
	StatusDuplicate Status = metrics.OutcomeDuplicate
)

// Outcome is the result for a single persisted record.
type Outcome struct {
	Kind   RecordKind
	Index  int
	Status Status
	// Err explains why an invalid record was dropped. Nil otherwise.
	Err error
}

// Report lists one Outcome per record in the order the records were read.
type Report struct {
	// Source is the file the snapshot came from, if any.
	Source string
	// Fresh is true when there was no data file and the book starts empty.
	Fresh    bool
	Outcomes []Outcome
}

// Count returns the number of outcomes with the given kind and status.
func (r *Report) Count(kind RecordKind, status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == kind && o.Status == status {
			n++
		}
	}
	return n
}

// Invalid returns the outcomes of records dropped for failing validation.
func (r *Report) Invalid() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusInvalid {
			out = append(out, o)
		}
	}
	return out
}

// Reconciler converts an untrusted snapshot into a consistent address book.
type Reconciler struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewReconciler creates a reconciler. A nil logger uses slog.Default; a nil
// recorder disables metrics.
func NewReconciler(logger *slog.Logger, rec *metrics.Recorder) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{logger: logger, metrics: rec}
}

// Reconcile builds an address book from snap. Persons are resolved first, in
// order, then tasks, so a task can only link to a person accepted above it.
// Invalid records are logged and skipped; duplicates of an already accepted
// record are skipped silently. Only a missing collection is an error.
func (rc *Reconciler) Reconcile(snap *Snapshot) (*model.AddressBook, *Report, error) {
	if snap == nil || snap.Persons == nil || snap.Tasks == nil {
		return nil, nil, ErrMissingCollection
	}

	book := model.NewAddressBook()
	report := &Report{Outcomes: make([]Outcome, 0, len(snap.Persons)+len(snap.Tasks))}

	for i, raw := range snap.Persons {
		out := rc.reconcilePerson(book, i, raw)
		rc.metrics.RecordLoaded(string(out.Kind), string(out.Status))
		report.Outcomes = append(report.Outcomes, out)
	}

	for i, raw := range snap.Tasks {
		out := rc.reconcileTask(book, i, raw)
		rc.metrics.RecordLoaded(string(out.Kind), string(out.Status))
		report.Outcomes = append(report.Outcomes, out)
	}

	return book, report, nil
}

func (rc *Reconciler) reconcilePerson(book *model.AddressBook, i int, raw RawPerson) Outcome {
	out := Outcome{Kind: KindPerson, Index: i}

	person, err := raw.ToModel()
	if err != nil {
		rc.logger.Warn(fmt.Sprintf("%s: %v", msgIllegalPerson, err), "index", i)
		out.Status, out.Err = StatusInvalid, err
		return out
	}
	if err := book.AddPerson(person); err != nil {
		if errors.Is(err, model.ErrDuplicatePerson) {
			out.Status = StatusDuplicate
			return out
		}
		rc.logger.Warn(fmt.Sprintf("%s: %v", msgIllegalPerson, err), "index", i)
		out.Status, out.Err = StatusInvalid, err
		return out
	}
	out.Status = StatusAccepted
	return out
}

func (rc *Reconciler) reconcileTask(book *model.AddressBook, i int, raw RawTask) Outcome {
	out := Outcome{Kind: KindTask, Index: i}

	task, err := raw.ToModel(book)
	if err != nil {
		rc.logger.Warn(fmt.Sprintf("%s: %v", msgIllegalTask, err), "index", i)
		out.Status, out.Err = StatusInvalid, err
		return out
	}
	if err := book.AddTask(task); err != nil {
		if errors.Is(err, model.ErrDuplicateTask) {
			out.Status = StatusDuplicate
			return out
		}
		rc.logger.Warn(fmt.Sprintf("%s: %v", msgIllegalTask, err), "index", i)
		out.Status, out.Err = StatusInvalid, err
		return out
	}
	out.Status = StatusAccepted
	return out
}
