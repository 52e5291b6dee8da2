package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/addressbook/model"
	"github.com/c360studio/addressbook/model/testutil"
)

func TestPerson_IsSamePerson(t *testing.T) {
	alice := testutil.Alice()

	t.Run("same name different fields", func(t *testing.T) {
		edited := testutil.NewPersonBuilder(alice).WithPhone("911").WithTags("husband").Build()
		assert.True(t, alice.IsSamePerson(edited))
		assert.False(t, alice.Equal(edited))
	})

	t.Run("different name", func(t *testing.T) {
		edited := testutil.NewPersonBuilder(alice).WithName("Bob Choo").Build()
		assert.False(t, alice.IsSamePerson(edited))
	})

	t.Run("name differs in case", func(t *testing.T) {
		edited := testutil.NewPersonBuilder(alice).WithName("alice pauline").Build()
		assert.False(t, alice.IsSamePerson(edited))
	})
}

func TestPerson_Equal(t *testing.T) {
	benson := testutil.Benson()
	assert.True(t, benson.Equal(testutil.Benson()))
	assert.False(t, benson.Equal(benson.WithEmergencyContact(nil)))
	assert.False(t, benson.Equal(benson.WithPriority(model.PriorityLow)))
}

func TestTask_IsSameTask(t *testing.T) {
	task := model.Task{Person: testutil.Alice(), Description: "Buy medication", Done: true}

	assert.True(t, task.IsSameTask(task.Unmark()), "completion state does not affect identity")
	assert.False(t, task.Equal(task.Unmark()))

	other := model.Task{Person: testutil.Benson(), Description: "Buy medication"}
	assert.False(t, task.IsSameTask(other))
}

func TestNewTask_BlankDescription(t *testing.T) {
	_, err := model.NewTask(testutil.Alice(), "  ", false)
	require.Error(t, err)
}

func TestAddressBook_AddPerson(t *testing.T) {
	ab := model.NewAddressBook()
	require.NoError(t, ab.AddPerson(testutil.Alice()))

	err := ab.AddPerson(testutil.NewPersonBuilder(testutil.Alice()).WithPhone("911").Build())
	assert.ErrorIs(t, err, model.ErrDuplicatePerson)
	assert.Len(t, ab.Persons(), 1)
}

func TestAddressBook_AddTask(t *testing.T) {
	ab := model.NewAddressBook()
	require.NoError(t, ab.AddPerson(testutil.Alice()))

	t.Run("unknown person", func(t *testing.T) {
		err := ab.AddTask(model.Task{Person: testutil.Carl(), Description: "Call"})
		assert.ErrorIs(t, err, model.ErrPersonNotFound)
	})

	t.Run("relinks to stored person", func(t *testing.T) {
		stale := testutil.NewPersonBuilder(testutil.Alice()).WithPhone("911").Build()
		require.NoError(t, ab.AddTask(model.Task{Person: stale, Description: "Call"}))
		tasks := ab.Tasks()
		require.Len(t, tasks, 1)
		assert.True(t, tasks[0].Person.Equal(testutil.Alice()))
	})

	t.Run("duplicate", func(t *testing.T) {
		err := ab.AddTask(model.Task{Person: testutil.Alice(), Description: "Call", Done: true})
		assert.ErrorIs(t, err, model.ErrDuplicateTask)
	})
}

func TestAddressBook_SetPersonRelinksTasks(t *testing.T) {
	ab := testutil.TypicalAddressBook()
	edited := testutil.NewPersonBuilder(testutil.Alice()).WithName("Alice Tan").Build()

	require.NoError(t, ab.SetPerson(testutil.Alice(), edited))

	tasks := ab.Tasks()
	assert.True(t, tasks[0].Person.Equal(edited))
	assert.False(t, ab.HasPerson(testutil.Alice()))

	err := ab.SetPerson(edited, testutil.NewPersonBuilder(edited).WithName("Benson Meier").Build())
	assert.ErrorIs(t, err, model.ErrDuplicatePerson)
}

func TestAddressBook_RemovePersonRemovesTasks(t *testing.T) {
	ab := testutil.TypicalAddressBook()

	require.NoError(t, ab.RemovePerson(testutil.Alice()))

	assert.Len(t, ab.Persons(), 2)
	for _, task := range ab.Tasks() {
		assert.False(t, task.Person.IsSamePerson(testutil.Alice()))
	}
	assert.ErrorIs(t, ab.RemovePerson(testutil.Alice()), model.ErrPersonNotFound)
}

func TestAddressBook_TaskUpdates(t *testing.T) {
	ab := testutil.TypicalAddressBook()
	visit := ab.Tasks()[1]

	require.NoError(t, ab.SetTask(visit, visit.Mark()))
	assert.True(t, ab.Tasks()[1].Done)

	require.NoError(t, ab.RemoveTask(visit))
	assert.Len(t, ab.Tasks(), 1)
	assert.ErrorIs(t, ab.RemoveTask(visit), model.ErrTaskNotFound)
}

func TestAddressBook_Equal(t *testing.T) {
	assert.True(t, testutil.TypicalAddressBook().Equal(testutil.TypicalAddressBook()))

	ab := testutil.TypicalAddressBook()
	ab.Clear()
	assert.True(t, ab.Equal(model.NewAddressBook()))
	assert.False(t, ab.Equal(testutil.TypicalAddressBook()))
	assert.False(t, ab.Equal(nil))
}
