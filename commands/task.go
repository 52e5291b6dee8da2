package commands

import (
	"fmt"

	"github.com/c360studio/addressbook/model"
)

const (
	messageAddedTask        = "New task added: %s"
	messageDeletedTask      = "Deleted Task: %s"
	messageMarkedTask       = "Marked task as done: %s"
	messageUnmarkedTask     = "Marked task as not done: %s"
	messageTasksListed      = "%d tasks listed!"
	messageListedAllTasks   = "Listed all tasks"
	messageListedIncomplete = "Listed all incomplete tasks"
)

// AddTaskCommand adds a task for the displayed person at Index.
type AddTaskCommand struct {
	Index       int
	Description string
}

// Kind returns KindAddTask.
func (c *AddTaskCommand) Kind() Kind { return KindAddTask }

// Execute adds the task unless the person already has one with the same
// description.
func (c *AddTaskCommand) Execute(s *Session) (Result, error) {
	person, err := s.personAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	task, err := model.NewTask(person, c.Description, false)
	if err != nil {
		return Result{}, execError(err)
	}
	if err := s.Book.AddTask(task); err != nil {
		return Result{}, execError(err)
	}
	r := newResult(fmt.Sprintf(messageAddedTask, task))
	r.Mutated = true
	return r, nil
}

func parseAddTask(args string) (Command, error) {
	m := Tokenize(args, PrefixDescription)
	index, err := ParseIndex(m.Preamble())
	if err != nil || !m.Has(PrefixDescription) {
		return nil, invalidFormat(usageAddTask)
	}
	if err := m.VerifyNoDuplicates(PrefixDescription); err != nil {
		return nil, err
	}
	description, _ := m.Value(PrefixDescription)
	if err := model.ValidateDescription(description); err != nil {
		return nil, invalidArgument(err)
	}
	return &AddTaskCommand{Index: index, Description: description}, nil
}

// DeleteTaskCommand deletes the displayed task at Index.
type DeleteTaskCommand struct {
	Index int
}

// Kind returns KindDeleteTask.
func (c *DeleteTaskCommand) Kind() Kind { return KindDeleteTask }

// Execute removes the task.
func (c *DeleteTaskCommand) Execute(s *Session) (Result, error) {
	target, err := s.taskAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := s.Book.RemoveTask(target); err != nil {
		return Result{}, execError(err)
	}
	r := newResult(fmt.Sprintf(messageDeletedTask, target))
	r.Mutated = true
	return r, nil
}

func parseDeleteTask(args string) (Command, error) {
	index, err := ParseIndex(args)
	if err != nil {
		return nil, invalidFormat(usageDeleteTask)
	}
	return &DeleteTaskCommand{Index: index}, nil
}

// MarkTaskCommand marks the displayed task at Index as done.
type MarkTaskCommand struct {
	Index int
}

// Kind returns KindMarkTask.
func (c *MarkTaskCommand) Kind() Kind { return KindMarkTask }

// Execute marks the task. Marking a done task again is allowed.
func (c *MarkTaskCommand) Execute(s *Session) (Result, error) {
	return setDone(s, c.Index, true)
}

func parseMarkTask(args string) (Command, error) {
	index, err := ParseIndex(args)
	if err != nil {
		return nil, invalidFormat(usageMarkTask)
	}
	return &MarkTaskCommand{Index: index}, nil
}

// UnmarkTaskCommand marks the displayed task at Index as not done.
type UnmarkTaskCommand struct {
	Index int
}

// Kind returns KindUnmarkTask.
func (c *UnmarkTaskCommand) Kind() Kind { return KindUnmarkTask }

// Execute unmarks the task.
func (c *UnmarkTaskCommand) Execute(s *Session) (Result, error) {
	return setDone(s, c.Index, false)
}

func parseUnmarkTask(args string) (Command, error) {
	index, err := ParseIndex(args)
	if err != nil {
		return nil, invalidFormat(usageUnmarkTask)
	}
	return &UnmarkTaskCommand{Index: index}, nil
}

func setDone(s *Session, index int, done bool) (Result, error) {
	target, err := s.taskAt(index)
	if err != nil {
		return Result{}, err
	}
	edited, message := target.Unmark(), messageUnmarkedTask
	if done {
		edited, message = target.Mark(), messageMarkedTask
	}
	if err := s.Book.SetTask(target, edited); err != nil {
		return Result{}, execError(err)
	}
	r := newResult(fmt.Sprintf(message, edited))
	r.Mutated = true
	r.View = s.RenderTasks()
	return r, nil
}

// FindTaskCommand shows tasks whose description contains any of the
// keywords as a whole word, ignoring case.
type FindTaskCommand struct {
	Keywords []string
}

// Kind returns KindFindTask.
func (c *FindTaskCommand) Kind() Kind { return KindFindTask }

// Execute narrows the displayed tasks.
func (c *FindTaskCommand) Execute(s *Session) (Result, error) {
	keywords := c.Keywords
	s.SetTaskFilter(func(t model.Task) bool {
		return containsWord(t.Description, keywords)
	})
	r := newResult(fmt.Sprintf(messageTasksListed, len(s.FilteredTasks())))
	r.View = s.RenderTasks()
	return r, nil
}

func parseFindTask(args string) (Command, error) {
	keywords := splitKeywords(args)
	if len(keywords) == 0 {
		return nil, invalidFormat(usageFindTask)
	}
	return &FindTaskCommand{Keywords: keywords}, nil
}

// ListTaskCommand shows every task.
type ListTaskCommand struct{}

// Kind returns KindListTask.
func (c *ListTaskCommand) Kind() Kind { return KindListTask }

// Execute resets the task filter.
func (c *ListTaskCommand) Execute(s *Session) (Result, error) {
	s.SetTaskFilter(nil)
	r := newResult(messageListedAllTasks)
	r.View = s.RenderTasks()
	return r, nil
}

// ListIncompleteCommand shows the tasks that are not done.
type ListIncompleteCommand struct{}

// Kind returns KindListIncomplete.
func (c *ListIncompleteCommand) Kind() Kind { return KindListIncomplete }

// Execute filters out completed tasks.
func (c *ListIncompleteCommand) Execute(s *Session) (Result, error) {
	s.SetTaskFilter(func(t model.Task) bool { return !t.Done })
	r := newResult(messageListedIncomplete)
	r.View = s.RenderTasks()
	return r, nil
}
