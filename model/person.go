package model

import (
	"fmt"
	"strings"
)

// EmergencyContact is the person to call on someone's behalf.
type EmergencyContact struct {
	Name         Name
	Phone        Phone
	Relationship Relationship
}

// String renders the contact on one line.
func (c EmergencyContact) String() string {
	return fmt.Sprintf("%s (%s) %s", c.Name, c.Relationship, c.Phone)
}

// Person is a validated contact. Fields are values; copying a Person yields an
// independent entity.
type Person struct {
	Name             Name
	Phone            Phone
	Email            Email
	Address          Address
	Tags             []Tag
	Priority         Priority
	EmergencyContact *EmergencyContact
}

// NewPerson builds a person from already validated fields. Tags are stored as
// a sorted set.
func NewPerson(name Name, phone Phone, email Email, address Address, tags []Tag) Person {
	return Person{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Tags:    canonicalTags(tags),
	}
}

// IsSamePerson reports whether other identifies the same contact. Two persons
// are the same when their names match exactly; the remaining fields may
// differ.
func (p Person) IsSamePerson(other Person) bool {
	return p.Name == other.Name
}

// Equal reports whether every field of p and other matches.
func (p Person) Equal(other Person) bool {
	if p.Name != other.Name || p.Phone != other.Phone || p.Email != other.Email ||
		p.Address != other.Address || p.Priority != other.Priority {
		return false
	}
	if len(p.Tags) != len(other.Tags) {
		return false
	}
	for i := range p.Tags {
		if p.Tags[i] != other.Tags[i] {
			return false
		}
	}
	switch {
	case p.EmergencyContact == nil && other.EmergencyContact == nil:
		return true
	case p.EmergencyContact == nil || other.EmergencyContact == nil:
		return false
	default:
		return *p.EmergencyContact == *other.EmergencyContact
	}
}

// WithPriority returns a copy of p with the given priority.
func (p Person) WithPriority(priority Priority) Person {
	p.Priority = priority
	return p
}

// WithEmergencyContact returns a copy of p with the given emergency contact.
// A nil contact removes it.
func (p Person) WithEmergencyContact(c *EmergencyContact) Person {
	if c != nil {
		cp := *c
		c = &cp
	}
	p.EmergencyContact = c
	return p
}

// String renders the person for display.
func (p Person) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s; Phone: %s; Email: %s; Address: %s", p.Name, p.Phone, p.Email, p.Address)
	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = "[" + string(t) + "]"
		}
		sb.WriteString("; Tags: " + strings.Join(tags, ""))
	}
	if p.Priority != PriorityNone {
		sb.WriteString("; Priority: " + string(p.Priority))
	}
	if p.EmergencyContact != nil {
		sb.WriteString("; Emergency contact: " + p.EmergencyContact.String())
	}
	return sb.String()
}
