package model

// AddressBook holds the ordered, duplicate-free collections of persons and
// tasks. Every task's person is present in the person collection.
//
// AddressBook is not safe for concurrent use.
type AddressBook struct {
	persons []Person
	tasks   []Task
}

// NewAddressBook returns an empty address book.
func NewAddressBook() *AddressBook {
	return &AddressBook{}
}

// Persons returns the persons in insertion order.
func (ab *AddressBook) Persons() []Person {
	out := make([]Person, len(ab.persons))
	copy(out, ab.persons)
	return out
}

// Tasks returns the tasks in insertion order.
func (ab *AddressBook) Tasks() []Task {
	out := make([]Task, len(ab.tasks))
	copy(out, ab.tasks)
	return out
}

// HasPerson reports whether a person with the same identity as p exists.
func (ab *AddressBook) HasPerson(p Person) bool {
	return ab.indexOfPerson(p) >= 0
}

// FindPerson returns the stored person with the same identity as p.
func (ab *AddressBook) FindPerson(p Person) (Person, bool) {
	i := ab.indexOfPerson(p)
	if i < 0 {
		return Person{}, false
	}
	return ab.persons[i], true
}

// AddPerson appends p. It fails with ErrDuplicatePerson if p's identity is
// already taken.
func (ab *AddressBook) AddPerson(p Person) error {
	if ab.HasPerson(p) {
		return ErrDuplicatePerson
	}
	ab.persons = append(ab.persons, p)
	return nil
}

// SetPerson replaces target with edited and relinks target's tasks to edited.
func (ab *AddressBook) SetPerson(target, edited Person) error {
	i := ab.indexOfPerson(target)
	if i < 0 {
		return ErrPersonNotFound
	}
	if !target.IsSamePerson(edited) && ab.HasPerson(edited) {
		return ErrDuplicatePerson
	}
	ab.persons[i] = edited
	for j := range ab.tasks {
		if ab.tasks[j].Person.IsSamePerson(target) {
			ab.tasks[j].Person = edited
		}
	}
	return nil
}

// RemovePerson deletes the person with target's identity together with all
// of their tasks.
func (ab *AddressBook) RemovePerson(target Person) error {
	i := ab.indexOfPerson(target)
	if i < 0 {
		return ErrPersonNotFound
	}
	ab.persons = append(ab.persons[:i:i], ab.persons[i+1:]...)

	kept := ab.tasks[:0:0]
	for _, t := range ab.tasks {
		if !t.Person.IsSamePerson(target) {
			kept = append(kept, t)
		}
	}
	ab.tasks = kept
	return nil
}

// HasTask reports whether a task equivalent to t exists.
func (ab *AddressBook) HasTask(t Task) bool {
	return ab.indexOfTask(t) >= 0
}

// AddTask appends t. The task's person must already be in the book; the task
// is relinked to the stored copy of that person.
func (ab *AddressBook) AddTask(t Task) error {
	stored, ok := ab.FindPerson(t.Person)
	if !ok {
		return ErrPersonNotFound
	}
	t.Person = stored
	if ab.HasTask(t) {
		return ErrDuplicateTask
	}
	ab.tasks = append(ab.tasks, t)
	return nil
}

// SetTask replaces target with edited.
func (ab *AddressBook) SetTask(target, edited Task) error {
	i := ab.indexOfTask(target)
	if i < 0 {
		return ErrTaskNotFound
	}
	stored, ok := ab.FindPerson(edited.Person)
	if !ok {
		return ErrPersonNotFound
	}
	edited.Person = stored
	if !target.IsSameTask(edited) && ab.HasTask(edited) {
		return ErrDuplicateTask
	}
	ab.tasks[i] = edited
	return nil
}

// RemoveTask deletes the task equivalent to target.
func (ab *AddressBook) RemoveTask(target Task) error {
	i := ab.indexOfTask(target)
	if i < 0 {
		return ErrTaskNotFound
	}
	ab.tasks = append(ab.tasks[:i:i], ab.tasks[i+1:]...)
	return nil
}

// Clear removes all persons and tasks.
func (ab *AddressBook) Clear() {
	ab.persons = nil
	ab.tasks = nil
}

// Equal reports whether both books hold equal persons and tasks in the same
// order.
func (ab *AddressBook) Equal(other *AddressBook) bool {
	if other == nil || len(ab.persons) != len(other.persons) || len(ab.tasks) != len(other.tasks) {
		return false
	}
	for i := range ab.persons {
		if !ab.persons[i].Equal(other.persons[i]) {
			return false
		}
	}
	for i := range ab.tasks {
		if !ab.tasks[i].Equal(other.tasks[i]) {
			return false
		}
	}
	return true
}

func (ab *AddressBook) indexOfPerson(p Person) int {
	for i := range ab.persons {
		if ab.persons[i].IsSamePerson(p) {
			return i
		}
	}
	return -1
}

func (ab *AddressBook) indexOfTask(t Task) int {
	for i := range ab.tasks {
		if ab.tasks[i].IsSameTask(t) {
			return i
		}
	}
	return -1
}
