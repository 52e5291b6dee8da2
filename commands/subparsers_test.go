package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/addressbook/model"
)

func TestSubParsers_Success(t *testing.T) {
	name := model.Name("Mary Meier")
	phone := model.Phone("91234567")
	noTags := []model.Tag{}

	tests := []struct {
		input string
		want  Command
	}{
		{
			input: "add n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2, #02-25 t/owesMoney t/friends",
			want: &AddCommand{Person: model.NewPerson("John Doe", "98765432", "johnd@example.com",
				"311, Clementi Ave 2, #02-25", []model.Tag{"friends", "owesMoney"})},
		},
		{
			input: "edit 1 n/Mary Meier p/91234567",
			want:  &EditCommand{Index: 1, Edit: EditDescriptor{Name: &name, Phone: &phone}},
		},
		{
			input: "edit 2 t/",
			want:  &EditCommand{Index: 2, Edit: EditDescriptor{Tags: &noTags}},
		},
		{input: "delete 3", want: &DeleteCommand{Index: 3}},
		{input: "find alice  Bob", want: &FindCommand{Keywords: []string{"alice", "Bob"}}},
		{input: "add-task 1 d/Buy groceries", want: &AddTaskCommand{Index: 1, Description: "Buy groceries"}},
		{input: "delete-task 2", want: &DeleteTaskCommand{Index: 2}},
		{input: "mark-task 1", want: &MarkTaskCommand{Index: 1}},
		{input: "unmark-task 1", want: &UnmarkTaskCommand{Index: 1}},
		{input: "find-task doctor", want: &FindTaskCommand{Keywords: []string{"doctor"}}},
		{input: "priority 2 pr/HIGH", want: &SetPriorityCommand{Index: 2, Priority: model.PriorityHigh}},
		{input: "delete-priority 2", want: &DeletePriorityCommand{Index: 2}},
		{
			input: "add-emergency-contact 1 n/Mary Meier p/91234567 r/Mother",
			want: &AddEmergencyContactCommand{Index: 1, Contact: model.EmergencyContact{
				Name: "Mary Meier", Phone: "91234567", Relationship: "Mother",
			}},
		},
		{input: "delete-emergency-contact 1", want: &DeleteEmergencyContactCommand{Index: 1}},
	}

	p := NewParser(nil, nil)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)

			word := strings.Fields(tt.input)[0]
			assert.Equal(t, p.registry[word].kind, cmd.Kind(), "registered kind matches the built command")
		})
	}
}

func TestSubParsers_InvalidFormat(t *testing.T) {
	tests := []struct {
		input string
		usage string
	}{
		{"add n/John p/98765432 e/johnd@example.com", usageAdd},
		{"add John n/John p/98765432 e/johnd@example.com a/street", usageAdd},
		{"edit n/John", usageEdit},
		{"edit 0 n/John", usageEdit},
		{"delete", usageDelete},
		{"delete a", usageDelete},
		{"find", usageFind},
		{"find   ", usageFind},
		{"add-task 1", usageAddTask},
		{"add-task d/Buy milk", usageAddTask},
		{"delete-task -1", usageDeleteTask},
		{"mark-task", usageMarkTask},
		{"unmark-task x", usageUnmarkTask},
		{"find-task", usageFindTask},
		{"priority 1", usagePriority},
		{"priority pr/high", usagePriority},
		{"delete-priority", usageDeletePriority},
		{"add-emergency-contact 1 n/Mary p/91234567", usageAddEmergencyContact},
		{"delete-emergency-contact 0", usageDeleteEmergencyContact},
	}

	p := NewParser(nil, nil)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := p.Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, CodeInvalidArguments, ErrorCode(err))
			assert.Equal(t, fmt.Sprintf(MessageInvalidCommandFormat, tt.usage), err.Error())
		})
	}
}

func TestSubParsers_InvalidValues(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"add n/J@hn p/98765432 e/johnd@example.com a/street", model.NameConstraint},
		{"add n/John p/98a e/johnd@example.com a/street", model.PhoneConstraint},
		{"add n/John p/98765432 e/johnd a/street", model.EmailConstraint},
		{"add n/John p/98765432 e/johnd@example.com a/street t/hubby*", model.TagConstraint},
		{"edit 1 e/not-an-email", model.EmailConstraint},
		{"edit 1", messageNotEdited},
		{"add-task 1 d/   ", model.DescriptionConstraint},
		{"priority 1 pr/urgent", model.PriorityConstraint},
		{"add-emergency-contact 1 n/Mary p/91234567 r/", model.RelationshipConstraint},
		{"add n/John n/Jon p/98765432 e/johnd@example.com a/street", fmt.Sprintf(MessageDuplicateFields, "n/")},
	}

	p := NewParser(nil, nil)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := p.Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, CodeInvalidArguments, ErrorCode(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestSubParsers_FieldErrorIsWrapped(t *testing.T) {
	_, err := NewParser(nil, nil).Parse("add n/John p/1 e/johnd@example.com a/street")
	require.Error(t, err)

	var fe *model.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, model.FieldPhone, fe.Field)
}
