package model

import "fmt"

// Task is a to-do item attached to exactly one person. The link is by value:
// the address book keeps Person in sync when the linked person is edited.
type Task struct {
	Person      Person
	Description string
	Done        bool
}

// NewTask validates the description and builds a task for person.
func NewTask(person Person, description string, done bool) (Task, error) {
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	return Task{Person: person, Description: description, Done: done}, nil
}

// IsSameTask reports whether other is the same task: same person identity and
// the same description. Completion state is ignored.
func (t Task) IsSameTask(other Task) bool {
	return t.Person.IsSamePerson(other.Person) && t.Description == other.Description
}

// Equal reports whether every field of t and other matches.
func (t Task) Equal(other Task) bool {
	return t.Person.Equal(other.Person) && t.Description == other.Description && t.Done == other.Done
}

// Mark returns a completed copy of t.
func (t Task) Mark() Task {
	t.Done = true
	return t
}

// Unmark returns an incomplete copy of t.
func (t Task) Unmark() Task {
	t.Done = false
	return t
}

func (t Task) String() string {
	status := " "
	if t.Done {
		status = "X"
	}
	return fmt.Sprintf("[%s] %s (for %s)", status, t.Description, t.Person.Name)
}
