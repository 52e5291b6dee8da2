package commands

import (
	"fmt"

	"github.com/c360studio/addressbook/model"
)

const (
	messageAddedPerson   = "New person added: %s"
	messageEditedPerson  = "Edited Person: %s"
	messageDeletedPerson = "Deleted Person: %s"
	messageCleared       = "Address book has been cleared!"
	messagePersonsListed = "%d persons listed!"
	messageListedAll     = "Listed all persons"
	messageNotEdited     = "At least one field to edit must be provided."
)

// AddCommand adds a new person.
type AddCommand struct {
	Person model.Person
}

// Kind returns KindAdd.
func (c *AddCommand) Kind() Kind { return KindAdd }

// Execute adds the person unless someone with the same name exists.
func (c *AddCommand) Execute(s *Session) (Result, error) {
	if err := s.Book.AddPerson(c.Person); err != nil {
		return Result{}, execError(err)
	}
	r := newResult(fmt.Sprintf(messageAddedPerson, c.Person))
	r.Mutated = true
	return r, nil
}

func parseAdd(args string) (Command, error) {
	m := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	if !m.HasAll(PrefixName, PrefixPhone, PrefixEmail, PrefixAddress) || m.Preamble() != "" {
		return nil, invalidFormat(usageAdd)
	}
	if err := m.VerifyNoDuplicates(PrefixName, PrefixPhone, PrefixEmail, PrefixAddress); err != nil {
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
	emailValue, _ := m.Value(PrefixEmail)
	email, err := model.NewEmail(emailValue)
	if err != nil {
		return nil, invalidArgument(err)
	}
	addressValue, _ := m.Value(PrefixAddress)
	address, err := model.NewAddress(addressValue)
	if err != nil {
		return nil, invalidArgument(err)
	}
	tags, err := model.NewTags(m.AllValues(PrefixTag))
	if err != nil {
		return nil, invalidArgument(err)
	}

	return &AddCommand{Person: model.NewPerson(name, phone, email, address, tags)}, nil
}

// EditDescriptor holds the fields an edit replaces. Nil fields are kept.
type EditDescriptor struct {
	Name    *model.Name
	Phone   *model.Phone
	Email   *model.Email
	Address *model.Address
	// Tags replaces the whole tag set; an empty non-nil slice clears it.
	Tags *[]model.Tag
}

// IsAnyFieldEdited reports whether the descriptor changes anything.
func (d EditDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Address != nil || d.Tags != nil
}

// Apply returns p with the descriptor's fields replaced. Priority and
// emergency contact are carried over.
func (d EditDescriptor) Apply(p model.Person) model.Person {
	edited := p
	if d.Name != nil {
		edited.Name = *d.Name
	}
	if d.Phone != nil {
		edited.Phone = *d.Phone
	}
	if d.Email != nil {
		edited.Email = *d.Email
	}
	if d.Address != nil {
		edited.Address = *d.Address
	}
	if d.Tags != nil {
		edited.Tags = append([]model.Tag(nil), (*d.Tags)...)
	}
	return edited
}

// EditCommand edits the displayed person at Index.
type EditCommand struct {
	Index int
	Edit  EditDescriptor
}

// Kind returns KindEdit.
func (c *EditCommand) Kind() Kind { return KindEdit }

// Execute applies the edit and shows all persons again.
func (c *EditCommand) Execute(s *Session) (Result, error) {
	target, err := s.personAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := c.Edit.Apply(target)
	if err := s.Book.SetPerson(target, edited); err != nil {
		return Result{}, execError(err)
	}
	s.SetPersonFilter(nil)

	r := newResult(fmt.Sprintf(messageEditedPerson, edited))
	r.Mutated = true
	return r, nil
}

func parseEdit(args string) (Command, error) {
	m := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	index, err := ParseIndex(m.Preamble())
	if err != nil {
		return nil, invalidFormat(usageEdit)
	}
	if err := m.VerifyNoDuplicates(PrefixName, PrefixPhone, PrefixEmail, PrefixAddress); err != nil {
		return nil, err
	}

	var d EditDescriptor
	if v, ok := m.Value(PrefixName); ok {
		name, err := model.NewName(v)
		if err != nil {
			return nil, invalidArgument(err)
		}
		d.Name = &name
	}
	if v, ok := m.Value(PrefixPhone); ok {
		phone, err := model.NewPhone(v)
		if err != nil {
			return nil, invalidArgument(err)
		}
		d.Phone = &phone
	}
	if v, ok := m.Value(PrefixEmail); ok {
		email, err := model.NewEmail(v)
		if err != nil {
			return nil, invalidArgument(err)
		}
		d.Email = &email
	}
	if v, ok := m.Value(PrefixAddress); ok {
		address, err := model.NewAddress(v)
		if err != nil {
			return nil, invalidArgument(err)
		}
		d.Address = &address
	}
	if m.Has(PrefixTag) {
		tags, err := parseTagsForEdit(m.AllValues(PrefixTag))
		if err != nil {
			return nil, invalidArgument(err)
		}
		d.Tags = &tags
	}

	if !d.IsAnyFieldEdited() {
		return nil, &ParseError{Code: CodeInvalidArguments, Message: messageNotEdited}
	}
	return &EditCommand{Index: index, Edit: d}, nil
}

// parseTagsForEdit treats a single empty "t/" as a request to remove all
// tags.
func parseTagsForEdit(values []string) ([]model.Tag, error) {
	if len(values) == 1 && values[0] == "" {
		return []model.Tag{}, nil
	}
	return model.NewTags(values)
}

// DeleteCommand deletes the displayed person at Index together with their
// tasks.
type DeleteCommand struct {
	Index int
}

// Kind returns KindDelete.
func (c *DeleteCommand) Kind() Kind { return KindDelete }

// Execute removes the person.
func (c *DeleteCommand) Execute(s *Session) (Result, error) {
	target, err := s.personAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := s.Book.RemovePerson(target); err != nil {
		return Result{}, execError(err)
	}
	r := newResult(fmt.Sprintf(messageDeletedPerson, target))
	r.Mutated = true
	return r, nil
}

func parseDelete(args string) (Command, error) {
	index, err := ParseIndex(args)
	if err != nil {
		return nil, invalidFormat(usageDelete)
	}
	return &DeleteCommand{Index: index}, nil
}

// ClearCommand empties the address book.
type ClearCommand struct{}

// Kind returns KindClear.
func (c *ClearCommand) Kind() Kind { return KindClear }

// Execute removes every person and task.
func (c *ClearCommand) Execute(s *Session) (Result, error) {
	s.Book.Clear()
	r := newResult(messageCleared)
	r.Mutated = true
	return r, nil
}

// FindCommand shows persons whose name contains any of the keywords as a
// whole word, ignoring case.
type FindCommand struct {
	Keywords []string
}

// Kind returns KindFind.
func (c *FindCommand) Kind() Kind { return KindFind }

// Execute narrows the displayed persons.
func (c *FindCommand) Execute(s *Session) (Result, error) {
	keywords := c.Keywords
	s.SetPersonFilter(func(p model.Person) bool {
		return containsWord(string(p.Name), keywords)
	})
	r := newResult(fmt.Sprintf(messagePersonsListed, len(s.FilteredPersons())))
	r.View = s.RenderPersons()
	return r, nil
}

func parseFind(args string) (Command, error) {
	keywords := splitKeywords(args)
	if len(keywords) == 0 {
		return nil, invalidFormat(usageFind)
	}
	return &FindCommand{Keywords: keywords}, nil
}

// ListCommand shows every person.
type ListCommand struct{}

// Kind returns KindList.
func (c *ListCommand) Kind() Kind { return KindList }

// Execute resets the person filter.
func (c *ListCommand) Execute(s *Session) (Result, error) {
	s.SetPersonFilter(nil)
	r := newResult(messageListedAll)
	r.View = s.RenderPersons()
	return r, nil
}
