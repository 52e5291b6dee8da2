// Package model defines the address book domain: persons, their tasks, and the
// validated field values they are built from.
package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// FieldError reports a value that does not satisfy a field's constraint.
type FieldError struct {
	Field      string
	Value      string
	Constraint string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s field is missing", e.Field)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Constraint)
}

// Field names used in FieldError.
const (
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldAddress      = "address"
	FieldTag          = "tag"
	FieldPriority     = "priority"
	FieldRelationship = "relationship"
	FieldDescription  = "description"
)

// Constraint messages shown to the user.
const (
	NameConstraint         = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	PhoneConstraint        = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	EmailConstraint        = "Emails should be of the format local-part@domain"
	AddressConstraint      = "Addresses can take any values, and it should not be blank"
	TagConstraint          = "Tags names should be alphanumeric"
	PriorityConstraint     = "Priority should be one of: high, medium, low"
	RelationshipConstraint = "Relationship can take any values, and it should not be blank"
	DescriptionConstraint  = "Task descriptions can take any values, and it should not be blank"
)

var (
	namePattern    = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phonePattern   = regexp.MustCompile(`^\d{3,}$`)
	tagPattern     = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
	emailPattern   = regexp.MustCompile(`^[\p{L}\p{N}](?:[+_.-]?[\p{L}\p{N}]+)*@(?:[\p{L}\p{N}](?:[-\p{L}\p{N}]*[\p{L}\p{N}])?\.)*[\p{L}\p{N}][-\p{L}\p{N}]*[\p{L}\p{N}]$`)
	nonBlankPrefix = regexp.MustCompile(`^\S`)
)

// Name is a person's full name.
type Name string

// NewName validates s as a person name.
func NewName(s string) (Name, error) {
	if !namePattern.MatchString(s) {
		return "", &FieldError{Field: FieldName, Value: s, Constraint: NameConstraint}
	}
	return Name(s), nil
}

// Phone is a phone number made of digits only.
type Phone string

// NewPhone validates s as a phone number.
func NewPhone(s string) (Phone, error) {
	if !phonePattern.MatchString(s) {
		return "", &FieldError{Field: FieldPhone, Value: s, Constraint: PhoneConstraint}
	}
	return Phone(s), nil
}

// Email is an email address.
type Email string

// NewEmail validates s as an email address.
func NewEmail(s string) (Email, error) {
	if !emailPattern.MatchString(s) {
		return "", &FieldError{Field: FieldEmail, Value: s, Constraint: EmailConstraint}
	}
	return Email(s), nil
}

// Address is a free-form postal address.
type Address string

// NewAddress validates s as an address.
func NewAddress(s string) (Address, error) {
	if !nonBlankPrefix.MatchString(s) {
		return "", &FieldError{Field: FieldAddress, Value: s, Constraint: AddressConstraint}
	}
	return Address(s), nil
}

// Tag is a single alphanumeric label.
type Tag string

// NewTag validates s as a tag name.
func NewTag(s string) (Tag, error) {
	if !tagPattern.MatchString(s) {
		return "", &FieldError{Field: FieldTag, Value: s, Constraint: TagConstraint}
	}
	return Tag(s), nil
}

// NewTags validates every tag and returns them as a sorted set.
func NewTags(raw []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(raw))
	for _, s := range raw {
		t, err := NewTag(s)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return canonicalTags(tags), nil
}

func canonicalTags(tags []Tag) []Tag {
	seen := make(map[Tag]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Priority ranks how urgently a person needs attention. The zero value means
// no priority has been assigned.
type Priority string

// Priority levels.
const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NewPriority validates s as a priority level. Matching is case-insensitive;
// the result is always lowercase.
func NewPriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", &FieldError{Field: FieldPriority, Value: s, Constraint: PriorityConstraint}
}

// Relationship describes how an emergency contact relates to a person.
type Relationship string

// NewRelationship validates s as a relationship.
func NewRelationship(s string) (Relationship, error) {
	if !nonBlankPrefix.MatchString(s) {
		return "", &FieldError{Field: FieldRelationship, Value: s, Constraint: RelationshipConstraint}
	}
	return Relationship(s), nil
}

// ValidateDescription checks a task description.
func ValidateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return &FieldError{Field: FieldDescription, Value: s, Constraint: DescriptionConstraint}
	}
	return nil
}
