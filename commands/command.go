package commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/c360studio/addressbook/model"
)

// Command is a parsed user command, ready to run against a Session.
type Command interface {
	Kind() Kind
	Execute(s *Session) (Result, error)
}

// Result is what a command reports back to the user.
type Result struct {
	// ID uniquely identifies this result in logs.
	ID string
	// Feedback is the one-line message for the user.
	Feedback string
	// View is the rendered list or help text to show, if any.
	View string
	// ShowHelp asks the front end to show usage help.
	ShowHelp bool
	// Exit asks the front end to stop.
	Exit bool
	// Mutated reports that the address book changed and should be saved.
	Mutated bool
}

func newResult(feedback string) Result {
	return Result{ID: uuid.New().String(), Feedback: feedback}
}

// Session is the state commands run against: the address book and the
// filters that decide which persons and tasks are currently displayed.
// Command indices refer to the displayed lists.
type Session struct {
	Book *model.AddressBook

	personFilter func(model.Person) bool
	taskFilter   func(model.Task) bool
}

// NewSession creates a session that displays everything in book.
func NewSession(book *model.AddressBook) *Session {
	if book == nil {
		book = model.NewAddressBook()
	}
	return &Session{Book: book}
}

// FilteredPersons returns the displayed persons.
func (s *Session) FilteredPersons() []model.Person {
	all := s.Book.Persons()
	if s.personFilter == nil {
		return all
	}
	out := all[:0]
	for _, p := range all {
		if s.personFilter(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilteredTasks returns the displayed tasks.
func (s *Session) FilteredTasks() []model.Task {
	all := s.Book.Tasks()
	if s.taskFilter == nil {
		return all
	}
	out := all[:0]
	for _, t := range all {
		if s.taskFilter(t) {
			out = append(out, t)
		}
	}
	return out
}

// SetPersonFilter changes which persons are displayed. A nil filter shows
// everyone.
func (s *Session) SetPersonFilter(f func(model.Person) bool) {
	s.personFilter = f
}

// SetTaskFilter changes which tasks are displayed. A nil filter shows every
// task.
func (s *Session) SetTaskFilter(f func(model.Task) bool) {
	s.taskFilter = f
}

// personAt returns the displayed person at the one-based index.
func (s *Session) personAt(index int) (model.Person, error) {
	persons := s.FilteredPersons()
	if index < 1 || index > len(persons) {
		return model.Person{}, &ExecError{Message: MessageInvalidPersonDisplayedIndex}
	}
	return persons[index-1], nil
}

// taskAt returns the displayed task at the one-based index.
func (s *Session) taskAt(index int) (model.Task, error) {
	tasks := s.FilteredTasks()
	if index < 1 || index > len(tasks) {
		return model.Task{}, &ExecError{Message: MessageInvalidTaskDisplayedIndex}
	}
	return tasks[index-1], nil
}

// RenderPersons renders the displayed persons as a numbered list.
func (s *Session) RenderPersons() string {
	persons := s.FilteredPersons()
	if len(persons) == 0 {
		return "No persons to show."
	}
	var sb strings.Builder
	for i, p := range persons {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// RenderTasks renders the displayed tasks as a numbered list.
func (s *Session) RenderTasks() string {
	tasks := s.FilteredTasks()
	if len(tasks) == 0 {
		return "No tasks to show."
	}
	var sb strings.Builder
	for i, t := range tasks {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, t)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// containsWord reports whether any whitespace-separated word of text equals
// one of keywords, ignoring case.
func containsWord(text string, keywords []string) bool {
	for _, word := range strings.Fields(text) {
		for _, k := range keywords {
			if strings.EqualFold(word, k) {
				return true
			}
		}
	}
	return false
}

// splitKeywords splits find arguments into keywords.
func splitKeywords(args string) []string {
	return strings.Fields(args)
}
