package commands

import (
	"fmt"
	"sort"
	"strings"
)

const (
	messageShowingHelp = "Opened help window."
	messageExit        = "Exiting Address Book as requested ..."
)

// HelpCommand shows the list of available commands.
type HelpCommand struct{}

// Kind returns KindHelp.
func (c *HelpCommand) Kind() Kind { return KindHelp }

// Execute returns the command listing as the result view.
func (c *HelpCommand) Execute(s *Session) (Result, error) {
	r := newResult(messageShowingHelp)
	r.View = HelpText()
	r.ShowHelp = true
	return r, nil
}

// ExitCommand ends the session.
type ExitCommand struct{}

// Kind returns KindExit.
func (c *ExitCommand) Kind() Kind { return KindExit }

// Execute asks the front end to stop.
func (c *ExitCommand) Execute(s *Session) (Result, error) {
	r := newResult(messageExit)
	r.Exit = true
	return r, nil
}

// HelpText lists every built-in command grouped by category.
func HelpText() string {
	return listAllCommands(defaultRegistry())
}

// listAllCommands lists all commands grouped by category.
func listAllCommands(reg registry) string {
	byCategory := make(map[string][]string)
	for _, name := range orderedKeywords(reg) {
		cat := reg[name].category
		byCategory[cat] = append(byCategory[cat], name)
	}

	var sb strings.Builder
	sb.WriteString("# Address Book Commands\n")

	known := make(map[string]bool, len(categoryOrder))
	for _, cat := range categoryOrder {
		known[cat] = true
		writeCategory(&sb, cat, byCategory[cat], reg)
	}

	// Any categories not in the list above
	var other []string
	for cat := range byCategory {
		if !known[cat] {
			other = append(other, cat)
		}
	}
	sort.Strings(other)
	for _, cat := range other {
		writeCategory(&sb, cat, byCategory[cat], reg)
	}

	sb.WriteString("\n---\n")
	sb.WriteString("Indices refer to the numbers shown in the most recent person or task list.\n")
	return sb.String()
}

func writeCategory(sb *strings.Builder, category string, names []string, reg registry) {
	if len(names) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n## %s\n\n", category))
	sb.WriteString("| Command | Description |\n")
	sb.WriteString("|---------|-------------|\n")
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("| `%s` | %s |\n", extractSyntax(reg[name].help), extractDescription(reg[name].help)))
	}
}

// orderedKeywords returns the registered command words in help order, with
// any words not in keywordOrder appended alphabetically.
func orderedKeywords(reg registry) []string {
	out := make([]string, 0, len(reg))
	seen := make(map[string]bool, len(reg))
	for _, name := range keywordOrder {
		if _, ok := reg[name]; ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range reg {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// extractDescription extracts the description portion after the dash in help text.
func extractDescription(help string) string {
	// Help format is "command <args> - Description"
	parts := strings.SplitN(help, " - ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return help
}

// extractSyntax extracts the "command <args>" portion before the dash.
func extractSyntax(help string) string {
	parts := strings.SplitN(help, " - ", 2)
	return parts[0]
}
