// Package commands turns lines of user input into address book commands and
// executes them against a Session.
package commands

// Kind identifies what a parsed command does.
type Kind string

// Command kinds.
const (
	KindAdd                    Kind = "add"
	KindEdit                   Kind = "edit"
	KindDelete                 Kind = "delete"
	KindClear                  Kind = "clear"
	KindFind                   Kind = "find"
	KindList                   Kind = "list"
	KindListTask               Kind = "list-task"
	KindListIncomplete         Kind = "list-incomplete"
	KindExit                   Kind = "exit"
	KindHelp                   Kind = "help"
	KindAddTask                Kind = "add-task"
	KindDeleteTask             Kind = "delete-task"
	KindMarkTask               Kind = "mark-task"
	KindUnmarkTask             Kind = "unmark-task"
	KindFindTask               Kind = "find-task"
	KindSetPriority            Kind = "set-priority"
	KindDeletePriority         Kind = "delete-priority"
	KindAddEmergencyContact    Kind = "add-emergency-contact"
	KindDeleteEmergencyContact Kind = "delete-emergency-contact"
)

// Help categories, in display order.
const (
	CategoryContacts          = "Contacts"
	CategoryTasks             = "Tasks"
	CategoryPriority          = "Priority"
	CategoryEmergencyContacts = "Emergency contacts"
	CategoryGeneral           = "General"
)

var categoryOrder = []string{
	CategoryContacts,
	CategoryTasks,
	CategoryPriority,
	CategoryEmergencyContacts,
	CategoryGeneral,
}

// Usage messages shown when a command's arguments do not match its format.
const (
	usageAdd = "add: Adds a person to the address book.\n" +
		"Parameters: n/NAME p/PHONE e/EMAIL a/ADDRESS [t/TAG]...\n" +
		"Example: add n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2, #02-25 t/friends t/owesMoney"
	usageEdit = "edit: Edits the details of the person identified by the index number used in the displayed person list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]...\n" +
		"Example: edit 1 p/91234567 e/johndoe@example.com"
	usageDelete = "delete: Deletes the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: delete 1"
	usageFind = "find: Finds all persons whose names contain any of the specified keywords (case-insensitive) " +
		"and displays them as a list with index numbers.\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: find alice bob charlie"
	usageAddTask = "add-task: Adds a task for the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer) d/DESCRIPTION\n" +
		"Example: add-task 1 d/Buy medication"
	usageDeleteTask = "delete-task: Deletes the task identified by the index number used in the displayed task list.\n" +
		"Parameters: TASK_INDEX (must be a positive integer)\n" +
		"Example: delete-task 1"
	usageMarkTask = "mark-task: Marks the task identified by the index number used in the displayed task list as done.\n" +
		"Parameters: TASK_INDEX (must be a positive integer)\n" +
		"Example: mark-task 1"
	usageUnmarkTask = "unmark-task: Marks the task identified by the index number used in the displayed task list as not done.\n" +
		"Parameters: TASK_INDEX (must be a positive integer)\n" +
		"Example: unmark-task 1"
	usageFindTask = "find-task: Finds all tasks whose descriptions contain any of the specified keywords (case-insensitive) " +
		"and displays them as a list with index numbers.\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: find-task medication doctor"
	usagePriority = "priority: Sets the priority of the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer) pr/PRIORITY (high, medium or low)\n" +
		"Example: priority 1 pr/high"
	usageDeletePriority = "delete-priority: Removes the priority of the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: delete-priority 1"
	usageAddEmergencyContact = "add-emergency-contact: Sets the emergency contact of the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer) n/NAME p/PHONE r/RELATIONSHIP\n" +
		"Example: add-emergency-contact 1 n/Mary Meier p/91234567 r/Mother"
	usageDeleteEmergencyContact = "delete-emergency-contact: Removes the emergency contact of the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: delete-emergency-contact 1"
	usageHelp = "help: Shows program usage instructions.\n" +
		"Example: help"
)

// parseFunc builds a Command from the text that follows the command word.
type parseFunc func(args string) (Command, error)

// entry describes one registered command word.
type entry struct {
	kind     Kind
	category string
	// help is "<keyword> <arguments> - <description>"
	help  string
	parse parseFunc
}

// registry maps a command word to its entry. Lookup is exact and
// case-sensitive.
type registry map[string]entry

// keywordOrder is the order commands are listed in within a help category.
var keywordOrder = []string{
	"add", "edit", "delete", "find", "list", "clear",
	"add-task", "delete-task", "mark-task", "unmark-task", "find-task", "list-task", "list-incomplete",
	"priority", "delete-priority",
	"add-emergency-contact", "delete-emergency-contact",
	"help", "exit",
}

func defaultRegistry() registry {
	return registry{
		// Contacts
		"add": {
			kind: KindAdd, category: CategoryContacts,
			help:  "add n/NAME p/PHONE e/EMAIL a/ADDRESS [t/TAG]... - Add a person",
			parse: parseAdd,
		},
		"edit": {
			kind: KindEdit, category: CategoryContacts,
			help:  "edit INDEX [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]... - Edit a person",
			parse: parseEdit,
		},
		"delete": {
			kind: KindDelete, category: CategoryContacts,
			help:  "delete INDEX - Delete a person and their tasks",
			parse: parseDelete,
		},
		"find": {
			kind: KindFind, category: CategoryContacts,
			help:  "find KEYWORD [MORE_KEYWORDS]... - Find persons by name",
			parse: parseFind,
		},
		"list": {
			kind: KindList, category: CategoryContacts,
			help:  "list - List all persons",
			parse: noArgs(func() Command { return &ListCommand{} }),
		},
		"clear": {
			kind: KindClear, category: CategoryContacts,
			help:  "clear - Delete every person and task",
			parse: noArgs(func() Command { return &ClearCommand{} }),
		},

		// Tasks
		"add-task": {
			kind: KindAddTask, category: CategoryTasks,
			help:  "add-task INDEX d/DESCRIPTION - Add a task for a person",
			parse: parseAddTask,
		},
		"delete-task": {
			kind: KindDeleteTask, category: CategoryTasks,
			help:  "delete-task TASK_INDEX - Delete a task",
			parse: parseDeleteTask,
		},
		"mark-task": {
			kind: KindMarkTask, category: CategoryTasks,
			help:  "mark-task TASK_INDEX - Mark a task as done",
			parse: parseMarkTask,
		},
		"unmark-task": {
			kind: KindUnmarkTask, category: CategoryTasks,
			help:  "unmark-task TASK_INDEX - Mark a task as not done",
			parse: parseUnmarkTask,
		},
		"find-task": {
			kind: KindFindTask, category: CategoryTasks,
			help:  "find-task KEYWORD [MORE_KEYWORDS]... - Find tasks by description",
			parse: parseFindTask,
		},
		"list-task": {
			kind: KindListTask, category: CategoryTasks,
			help:  "list-task - List all tasks",
			parse: noArgs(func() Command { return &ListTaskCommand{} }),
		},
		"list-incomplete": {
			kind: KindListIncomplete, category: CategoryTasks,
			help:  "list-incomplete - List tasks that are not done",
			parse: noArgs(func() Command { return &ListIncompleteCommand{} }),
		},

		// Priority
		"priority": {
			kind: KindSetPriority, category: CategoryPriority,
			help:  "priority INDEX pr/PRIORITY - Set a person's priority (high, medium, low)",
			parse: parseSetPriority,
		},
		"delete-priority": {
			kind: KindDeletePriority, category: CategoryPriority,
			help:  "delete-priority INDEX - Remove a person's priority",
			parse: parseDeletePriority,
		},

		// Emergency contacts
		"add-emergency-contact": {
			kind: KindAddEmergencyContact, category: CategoryEmergencyContacts,
			help:  "add-emergency-contact INDEX n/NAME p/PHONE r/RELATIONSHIP - Set a person's emergency contact",
			parse: parseAddEmergencyContact,
		},
		"delete-emergency-contact": {
			kind: KindDeleteEmergencyContact, category: CategoryEmergencyContacts,
			help:  "delete-emergency-contact INDEX - Remove a person's emergency contact",
			parse: parseDeleteEmergencyContact,
		},

		// General
		"help": {
			kind: KindHelp, category: CategoryGeneral,
			help:  "help - Show this list",
			parse: noArgs(func() Command { return &HelpCommand{} }),
		},
		"exit": {
			kind: KindExit, category: CategoryGeneral,
			help:  "exit - Save and quit",
			parse: noArgs(func() Command { return &ExitCommand{} }),
		},
	}
}

// noArgs adapts a constructor for a command that takes no arguments. Any
// trailing text after the command word is ignored.
func noArgs(build func() Command) parseFunc {
	return func(string) (Command, error) {
		return build(), nil
	}
}
