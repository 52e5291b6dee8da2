package commands

import (
	"fmt"

	"github.com/c360studio/addressbook/model"
)

const (
	messageAddedEmergencyContact   = "Emergency contact of %s set to %s"
	messageDeletedEmergencyContact = "Removed emergency contact of %s"
	messageNoEmergencyContact      = "This person has no emergency contact to remove."
)

// AddEmergencyContactCommand sets the emergency contact of the displayed
// person at Index, replacing any existing one.
type AddEmergencyContactCommand struct {
	Index   int
	Contact model.EmergencyContact
}

// Kind returns KindAddEmergencyContact.
func (c *AddEmergencyContactCommand) Kind() Kind { return KindAddEmergencyContact }

// Execute stores the contact on the person.
func (c *AddEmergencyContactCommand) Execute(s *Session) (Result, error) {
	return updatePerson(s, c.Index, func(p model.Person) (model.Person, string, error) {
		return p.WithEmergencyContact(&c.Contact), fmt.Sprintf(messageAddedEmergencyContact, p.Name, c.Contact), nil
	})
}

func parseAddEmergencyContact(args string) (Command, error) {
	m := Tokenize(args, PrefixName, PrefixPhone, PrefixRelationship)
	index, err := ParseIndex(m.Preamble())
	if err != nil || !m.HasAll(PrefixName, PrefixPhone, PrefixRelationship) {
		return nil, invalidFormat(usageAddEmergencyContact)
	}
	if err := m.VerifyNoDuplicates(PrefixName, PrefixPhone, PrefixRelationship); err != nil {
		return nil, err
	}

	nameValue, _ := m.Value(PrefixName)
	name, err := model.NewName(nameValue)
	if err != nil {
		return nil, invalidArgument(err)
	}
	phoneValue, _ := m.Value(PrefixPhone)
	phone, err := model.NewPhone(phoneValue)
	if err != nil {
		return nil, invalidArgument(err)
	}
	relationshipValue, _ := m.Value(PrefixRelationship)
	relationship, err := model.NewRelationship(relationshipValue)
	if err != nil {
		return nil, invalidArgument(err)
	}

	return &AddEmergencyContactCommand{
		Index:   index,
		Contact: model.EmergencyContact{Name: name, Phone: phone, Relationship: relationship},
	}, nil
}

// DeleteEmergencyContactCommand removes the emergency contact of the
// displayed person at Index.
type DeleteEmergencyContactCommand struct {
	Index int
}

// Kind returns KindDeleteEmergencyContact.
func (c *DeleteEmergencyContactCommand) Kind() Kind { return KindDeleteEmergencyContact }

// Execute clears the person's emergency contact.
func (c *DeleteEmergencyContactCommand) Execute(s *Session) (Result, error) {
	return updatePerson(s, c.Index, func(p model.Person) (model.Person, string, error) {
		if p.EmergencyContact == nil {
			return p, "", &ExecError{Message: messageNoEmergencyContact}
		}
		return p.WithEmergencyContact(nil), fmt.Sprintf(messageDeletedEmergencyContact, p.Name), nil
	})
}

func parseDeleteEmergencyContact(args string) (Command, error) {
	index, err := ParseIndex(args)
	if err != nil {
		return nil, invalidFormat(usageDeleteEmergencyContact)
	}
	return &DeleteEmergencyContactCommand{Index: index}, nil
}
