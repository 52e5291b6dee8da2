package commands

import (
	"fmt"

	"github.com/c360studio/addressbook/model"
)

const (
	messageSetPriority     = "Priority of %s set to %s"
	messageDeletedPriority = "Removed priority of %s"
	messageNoPriority      = "This person has no priority to remove."
)

// SetPriorityCommand sets the priority of the displayed person at Index.
type SetPriorityCommand struct {
	Index    int
	Priority model.Priority
}

// Kind returns KindSetPriority.
func (c *SetPriorityCommand) Kind() Kind { return KindSetPriority }

// Execute replaces the person's priority.
func (c *SetPriorityCommand) Execute(s *Session) (Result, error) {
	return updatePerson(s, c.Index, func(p model.Person) (model.Person, string, error) {
		return p.WithPriority(c.Priority), fmt.Sprintf(messageSetPriority, p.Name, c.Priority), nil
	})
}

func parseSetPriority(args string) (Command, error) {
	m := Tokenize(args, PrefixPriority)
	index, err := ParseIndex(m.Preamble())
	if err != nil || !m.Has(PrefixPriority) {
		return nil, invalidFormat(usagePriority)
	}
	if err := m.VerifyNoDuplicates(PrefixPriority); err != nil {
		return nil, err
	}
	value, _ := m.Value(PrefixPriority)
	priority, err := model.NewPriority(value)
	if err != nil {
		return nil, invalidArgument(err)
	}
	return &SetPriorityCommand{Index: index, Priority: priority}, nil
}

// DeletePriorityCommand removes the priority of the displayed person at
// Index.
type DeletePriorityCommand struct {
	Index int
}

// Kind returns KindDeletePriority.
func (c *DeletePriorityCommand) Kind() Kind { return KindDeletePriority }

// Execute clears the person's priority.
func (c *DeletePriorityCommand) Execute(s *Session) (Result, error) {
	return updatePerson(s, c.Index, func(p model.Person) (model.Person, string, error) {
		if p.Priority == model.PriorityNone {
			return p, "", &ExecError{Message: messageNoPriority}
		}
		return p.WithPriority(model.PriorityNone), fmt.Sprintf(messageDeletedPriority, p.Name), nil
	})
}

func parseDeletePriority(args string) (Command, error) {
	index, err := ParseIndex(args)
	if err != nil {
		return nil, invalidFormat(usageDeletePriority)
	}
	return &DeletePriorityCommand{Index: index}, nil
}

// updatePerson replaces the displayed person at index with the result of
// update. The person's identity does not change, so tasks stay linked.
func updatePerson(s *Session, index int, update func(model.Person) (model.Person, string, error)) (Result, error) {
	target, err := s.personAt(index)
	if err != nil {
		return Result{}, err
	}
	edited, feedback, err := update(target)
	if err != nil {
		return Result{}, err
	}
	if err := s.Book.SetPerson(target, edited); err != nil {
		return Result{}, execError(err)
	}
	r := newResult(feedback)
	r.Mutated = true
	return r, nil
}
