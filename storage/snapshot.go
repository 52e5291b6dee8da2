// Package storage persists the address book as a JSON snapshot and rebuilds a
// consistent in-memory model from it, salvaging every record that validates.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/addressbook/model"
)

// Snapshot is the on-disk shape of the address book:
//
//	{ "persons": [ RawPerson, ... ], "tasks": [ RawTask, ... ] }
//
// Records are untrusted; Reconciler turns them into a model.AddressBook.
type Snapshot struct {
	Persons []RawPerson `json:"persons"`
	Tasks   []RawTask   `json:"tasks"`
}

// RawEmergencyContact is the persisted form of model.EmergencyContact.
type RawEmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// RawPerson is the persisted form of model.Person.
type RawPerson struct {
	Name             string               `json:"name"`
	Phone            string               `json:"phone"`
	Email            string               `json:"email"`
	Address          string               `json:"address"`
	Tags             []string             `json:"tags"`
	Priority         string               `json:"priority,omitempty"`
	EmergencyContact *RawEmergencyContact `json:"emergencyContact,omitempty"`

	// decodeErr is set when the array element could not be decoded into
	// this shape at all.
	decodeErr error
}

// RawTask is the persisted form of model.Task. The person is embedded in full
// and re-identified against the accepted persons on load.
type RawTask struct {
	Person      RawPerson `json:"person"`
	Description string    `json:"description"`
	IsDone      *bool     `json:"isDone"`

	decodeErr error
}

// ToModel validates every field and builds the person.
func (r RawPerson) ToModel() (model.Person, error) {
	if r.decodeErr != nil {
		return model.Person{}, r.decodeErr
	}
	name, err := model.NewName(r.Name)
	if err != nil {
		return model.Person{}, err
	}
	phone, err := model.NewPhone(r.Phone)
	if err != nil {
		return model.Person{}, err
	}
	email, err := model.NewEmail(r.Email)
	if err != nil {
		return model.Person{}, err
	}
	address, err := model.NewAddress(r.Address)
	if err != nil {
		return model.Person{}, err
	}
	tags, err := model.NewTags(r.Tags)
	if err != nil {
		return model.Person{}, err
	}
	p := model.NewPerson(name, phone, email, address, tags)

	if r.Priority != "" {
		priority, err := model.NewPriority(r.Priority)
		if err != nil {
			return model.Person{}, err
		}
		p = p.WithPriority(priority)
	}

	if r.EmergencyContact != nil {
		ec, err := r.EmergencyContact.toModel()
		if err != nil {
			return model.Person{}, fmt.Errorf("emergency contact: %w", err)
		}
		p = p.WithEmergencyContact(&ec)
	}
	return p, nil
}

func (r RawEmergencyContact) toModel() (model.EmergencyContact, error) {
	name, err := model.NewName(r.Name)
	if err != nil {
		return model.EmergencyContact{}, err
	}
	phone, err := model.NewPhone(r.Phone)
	if err != nil {
		return model.EmergencyContact{}, err
	}
	rel, err := model.NewRelationship(r.Relationship)
	if err != nil {
		return model.EmergencyContact{}, err
	}
	return model.EmergencyContact{Name: name, Phone: phone, Relationship: rel}, nil
}

// ToModel validates the task and links it to the stored person in book with
// the same identity as the embedded person.
func (r RawTask) ToModel(book *model.AddressBook) (model.Task, error) {
	if r.decodeErr != nil {
		return model.Task{}, r.decodeErr
	}
	embedded, err := r.Person.ToModel()
	if err != nil {
		return model.Task{}, fmt.Errorf("task's person: %w", err)
	}
	person, ok := book.FindPerson(embedded)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrPersonNotInBook, embedded.Name)
	}
	if r.IsDone == nil {
		return model.Task{}, &model.FieldError{Field: "isDone"}
	}
	return model.NewTask(person, r.Description, *r.IsDone)
}

// FromModel converts book into its persisted form. It is the structural
// inverse of Reconciler.Reconcile for a consistent book.
func FromModel(book *model.AddressBook) *Snapshot {
	persons := book.Persons()
	tasks := book.Tasks()

	snap := &Snapshot{
		Persons: make([]RawPerson, 0, len(persons)),
		Tasks:   make([]RawTask, 0, len(tasks)),
	}
	for _, p := range persons {
		snap.Persons = append(snap.Persons, rawPerson(p))
	}
	for _, t := range tasks {
		done := t.Done
		snap.Tasks = append(snap.Tasks, RawTask{
			Person:      rawPerson(t.Person),
			Description: t.Description,
			IsDone:      &done,
		})
	}
	return snap
}

func rawPerson(p model.Person) RawPerson {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = string(t)
	}
	r := RawPerson{
		Name:     string(p.Name),
		Phone:    string(p.Phone),
		Email:    string(p.Email),
		Address:  string(p.Address),
		Tags:     tags,
		Priority: string(p.Priority),
	}
	if ec := p.EmergencyContact; ec != nil {
		r.EmergencyContact = &RawEmergencyContact{
			Name:         string(ec.Name),
			Phone:        string(ec.Phone),
			Relationship: string(ec.Relationship),
		}
	}
	return r
}

// Decode parses a snapshot. Malformed JSON, or a persons/tasks member that is
// missing or not an array, is fatal. Array elements that do not fit the
// record shape are kept as invalid records for the reconciler to report.
func Decode(data []byte) (*Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	persons, err := decodeArray(top, "persons")
	if err != nil {
		return nil, err
	}
	tasks, err := decodeArray(top, "tasks")
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Persons: make([]RawPerson, 0, len(persons)),
		Tasks:   make([]RawTask, 0, len(tasks)),
	}
	for _, el := range persons {
		var rp RawPerson
		if err := json.Unmarshal(el, &rp); err != nil {
			rp = RawPerson{decodeErr: fmt.Errorf("malformed person record: %w", err)}
		}
		snap.Persons = append(snap.Persons, rp)
	}
	for _, el := range tasks {
		var rt RawTask
		if err := json.Unmarshal(el, &rt); err != nil {
			rt = RawTask{decodeErr: fmt.Errorf("malformed task record: %w", err)}
		}
		snap.Tasks = append(snap.Tasks, rt)
	}
	return snap, nil
}

func decodeArray(top map[string]json.RawMessage, key string) ([]json.RawMessage, error) {
	raw, ok := top[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q not found", ErrMissingCollection, key)
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil || arr == nil {
		return nil, fmt.Errorf("%w: %q is not an array", ErrMissingCollection, key)
	}
	return arr, nil
}

// Encode renders snap as indented JSON.
func Encode(snap *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
