package commands

import (
	"strings"
)

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "!"

const (
	ParseOK = iota
	ParseNoPrefix
	ParseNoCommand
)

type ParseResult struct {
	ParseID int
	Command string
	Args    []string
}

// Parse splits a message into command name and arguments. Command names are
// case-insensitive; arguments keep their case.
func Parse(prefix, content string) ParseResult {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, prefix) {
		return ParseResult{ParseID: ParseNoPrefix}
	}

	words := strings.Fields(content[len(prefix):])
	if len(words) == 0 {
		return ParseResult{ParseID: ParseNoCommand}
	}

	return ParseResult{
		ParseID: ParseOK,
		Command: strings.ToLower(words[0]),
		Args:    words[1:],
	}
}
