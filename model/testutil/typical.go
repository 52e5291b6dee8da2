// Package testutil provides fixture persons and tasks for tests across the
// address book packages.
//
// Usage:
//
//	book := testutil.TypicalAddressBook()
//	alice := testutil.Alice()
//	edited := testutil.NewPersonBuilder(alice).WithPhone("99999999").Build()
package testutil

import "github.com/c360studio/addressbook/model"

// PersonBuilder assembles persons without going through the validators.
type PersonBuilder struct {
	p model.Person
}

// NewPersonBuilder starts from a copy of base.
func NewPersonBuilder(base model.Person) *PersonBuilder {
	return &PersonBuilder{p: base}
}

// WithName sets the name.
func (b *PersonBuilder) WithName(name string) *PersonBuilder {
	b.p.Name = model.Name(name)
	return b
}

// WithPhone sets the phone number.
func (b *PersonBuilder) WithPhone(phone string) *PersonBuilder {
	b.p.Phone = model.Phone(phone)
	return b
}

// WithEmail sets the email.
func (b *PersonBuilder) WithEmail(email string) *PersonBuilder {
	b.p.Email = model.Email(email)
	return b
}

// WithAddress sets the address.
func (b *PersonBuilder) WithAddress(address string) *PersonBuilder {
	b.p.Address = model.Address(address)
	return b
}

// WithTags replaces the tags.
func (b *PersonBuilder) WithTags(tags ...string) *PersonBuilder {
	ts := make([]model.Tag, len(tags))
	for i, t := range tags {
		ts[i] = model.Tag(t)
	}
	b.p = model.NewPerson(b.p.Name, b.p.Phone, b.p.Email, b.p.Address, ts).
		WithPriority(b.p.Priority).
		WithEmergencyContact(b.p.EmergencyContact)
	return b
}

// WithPriority sets the priority.
func (b *PersonBuilder) WithPriority(p model.Priority) *PersonBuilder {
	b.p.Priority = p
	return b
}

// WithEmergencyContact sets the emergency contact.
func (b *PersonBuilder) WithEmergencyContact(name, phone, relationship string) *PersonBuilder {
	b.p = b.p.WithEmergencyContact(&model.EmergencyContact{
		Name:         model.Name(name),
		Phone:        model.Phone(phone),
		Relationship: model.Relationship(relationship),
	})
	return b
}

// Build returns the assembled person.
func (b *PersonBuilder) Build() model.Person {
	return b.p
}

// Alice is a fully populated typical person.
func Alice() model.Person {
	return NewPersonBuilder(model.Person{}).
		WithName("Alice Pauline").
		WithPhone("94351253").
		WithEmail("alice@example.com").
		WithAddress("123, Jurong West Ave 6, #08-111").
		WithTags("friends").
		Build()
}

// Benson is a typical person with a priority and an emergency contact.
func Benson() model.Person {
	return NewPersonBuilder(model.Person{}).
		WithName("Benson Meier").
		WithPhone("98765432").
		WithEmail("johnd@example.com").
		WithAddress("311, Clementi Ave 2, #02-25").
		WithTags("owesMoney", "friends").
		WithPriority(model.PriorityHigh).
		WithEmergencyContact("Mary Meier", "91234567", "Mother").
		Build()
}

// Carl is a typical person without tags.
func Carl() model.Person {
	return NewPersonBuilder(model.Person{}).
		WithName("Carl Kurz").
		WithPhone("95352563").
		WithEmail("heinz@example.com").
		WithAddress("wall street").
		Build()
}

// TypicalPersons returns Alice, Benson and Carl in that order.
func TypicalPersons() []model.Person {
	return []model.Person{Alice(), Benson(), Carl()}
}

// TypicalTasks returns one completed task for Alice and one open task for
// Benson.
func TypicalTasks() []model.Task {
	return []model.Task{
		{Person: Alice(), Description: "Buy medication", Done: true},
		{Person: Benson(), Description: "Visit doctor", Done: false},
	}
}

// TypicalAddressBook returns a book holding TypicalPersons and TypicalTasks.
func TypicalAddressBook() *model.AddressBook {
	ab := model.NewAddressBook()
	for _, p := range TypicalPersons() {
		if err := ab.AddPerson(p); err != nil {
			panic(err)
		}
	}
	for _, t := range TypicalTasks() {
		if err := ab.AddTask(t); err != nil {
			panic(err)
		}
	}
	return ab
}
