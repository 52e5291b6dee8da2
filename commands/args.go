package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Prefix marks the start of an argument value, as in "n/John Doe".
type Prefix string

// Argument prefixes.
const (
	PrefixName         Prefix = "n/"
	PrefixPhone        Prefix = "p/"
	PrefixEmail        Prefix = "e/"
	PrefixAddress      Prefix = "a/"
	PrefixTag          Prefix = "t/"
	PrefixDescription  Prefix = "d/"
	PrefixPriority     Prefix = "pr/"
	PrefixRelationship Prefix = "r/"
)

// ErrInvalidIndex is returned by ParseIndex for anything that is not a
// positive integer.
var ErrInvalidIndex = errors.New(MessageInvalidIndex)

// ArgMultimap holds the values found after each prefix, in input order,
// plus the preamble that precedes the first prefix.
type ArgMultimap struct {
	preamble string
	values   map[Prefix][]string
}

// Value returns the last value given for prefix.
func (m *ArgMultimap) Value(prefix Prefix) (string, bool) {
	vs := m.values[prefix]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for prefix.
func (m *ArgMultimap) AllValues(prefix Prefix) []string {
	out := make([]string, len(m.values[prefix]))
	copy(out, m.values[prefix])
	return out
}

// Has reports whether prefix appeared at least once.
func (m *ArgMultimap) Has(prefix Prefix) bool {
	return len(m.values[prefix]) > 0
}

// HasAll reports whether every prefix appeared.
func (m *ArgMultimap) HasAll(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if !m.Has(p) {
			return false
		}
	}
	return true
}

// Preamble returns the trimmed text before the first prefix.
func (m *ArgMultimap) Preamble() string {
	return m.preamble
}

// VerifyNoDuplicates fails if any of the given single-valued prefixes
// appeared more than once.
func (m *ArgMultimap) VerifyNoDuplicates(prefixes ...Prefix) error {
	var dups []string
	for _, p := range prefixes {
		if len(m.values[p]) > 1 {
			dups = append(dups, string(p))
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return &ParseError{
		Code:    CodeInvalidArguments,
		Message: fmt.Sprintf(MessageDuplicateFields, strings.Join(dups, " ")),
	}
}

type prefixPosition struct {
	prefix Prefix
	start  int
}

// Tokenize splits args on the given prefixes. A prefix only counts when it
// directly follows a space, so "a/b" inside a value is left alone.
func Tokenize(args string, prefixes ...Prefix) *ArgMultimap {
	var positions []prefixPosition
	for _, p := range prefixes {
		positions = append(positions, findPrefixPositions(args, p)...)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].start < positions[j].start
	})

	m := &ArgMultimap{values: make(map[Prefix][]string)}

	preambleEnd := len(args)
	if len(positions) > 0 {
		preambleEnd = positions[0].start
	}
	m.preamble = strings.TrimSpace(args[:preambleEnd])

	for i, pos := range positions {
		end := len(args)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		value := strings.TrimSpace(args[pos.start+len(pos.prefix) : end])
		m.values[pos.prefix] = append(m.values[pos.prefix], value)
	}
	return m
}

func findPrefixPositions(args string, prefix Prefix) []prefixPosition {
	var out []prefixPosition
	needle := " " + string(prefix)
	from := 0
	for {
		i := strings.Index(args[from:], needle)
		if i < 0 {
			return out
		}
		start := from + i + 1
		out = append(out, prefixPosition{prefix: prefix, start: start})
		from = start
	}
}

// ParseIndex parses a one-based index. Leading and trailing whitespace is
// ignored.
func ParseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, ErrInvalidIndex
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrInvalidIndex
	}
	return n, nil
}
