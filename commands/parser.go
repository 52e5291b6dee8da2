package commands

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/c360studio/addressbook/metrics"
)

// basicCommandFormat separates the command word from its arguments. The
// arguments keep their leading whitespace.
var basicCommandFormat = regexp.MustCompile(`^(?s)(\S+)(.*)$`)

// Parser turns raw input lines into Commands.
type Parser struct {
	registry registry
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewParser creates a parser over the built-in command words. A nil logger
// falls back to slog.Default; a nil recorder disables metrics.
func NewParser(logger *slog.Logger, rec *metrics.Recorder) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		registry: defaultRegistry(),
		logger:   logger,
		metrics:  rec,
	}
}

// Parse parses one line of user input.
//
// Blank input fails with CodeMalformedCommand and an unregistered command
// word fails with CodeUnknownCommand. Otherwise the text after the command
// word is handed unmodified to the command's own argument parser, whose
// result is returned as is.
func (p *Parser) Parse(rawLine string) (Command, error) {
	matches := basicCommandFormat.FindStringSubmatch(strings.TrimSpace(rawLine))
	if matches == nil {
		p.metrics.IncParseFailure(string(CodeMalformedCommand))
		return nil, &ParseError{
			Code:    CodeMalformedCommand,
			Message: fmt.Sprintf(MessageInvalidCommandFormat, usageHelp),
		}
	}

	commandWord, arguments := matches[1], matches[2]
	p.logger.Debug("Parsed command line", "command_word", commandWord, "arguments", arguments)

	e, ok := p.registry[commandWord]
	if !ok {
		p.logger.Debug("Input caused an unknown command error", "input", rawLine)
		p.metrics.IncParseFailure(string(CodeUnknownCommand))
		return nil, &ParseError{Code: CodeUnknownCommand, Message: MessageUnknownCommand}
	}

	cmd, err := e.parse(arguments)
	if err != nil {
		reason := ErrorCode(err)
		if reason == "" {
			reason = CodeInvalidArguments
		}
		p.metrics.IncParseFailure(string(reason))
		return nil, err
	}

	p.logger.Debug("Built command", "command_word", commandWord, "kind", e.kind)
	p.metrics.IncCommandParsed(commandWord)
	return cmd, nil
}
