package server

import (
	"strings"

	"github.com/jaytlang-hopkins/freefocus/ipc/common"
)

// ParserFunc handles one matched command. It receives the command's
// arguments (never the command name) and is expected to arrange for a
// Response eventually, possibly from another goroutine.
type ParserFunc func(arguments []string)

// Parser binds a command keyword to its handler and a one-line
// description used by the generated help listing.
type Parser struct {
	Key         string
	Description string
	Parse       ParserFunc
}

// Registry is an ordered collection of parsers. Order matters: Dispatch
// consults parsers front to back and the first key match wins, so a
// parser registered under an already-taken key is unreachable.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a parser. Duplicate keys are accepted; the earlier
// registration shadows the later one.
func (r *Registry) Add(p Parser) {
	r.parsers = append(r.parsers, p)
}

// Dispatch routes a command to the first parser whose key matches its
// name. It reports whether any parser matched; the help fallback is the
// caller's business.
func (r *Registry) Dispatch(cmd *common.Command) bool {
	for _, p := range r.parsers {
		if p.Key == cmd.Name {
			p.Parse(cmd.Arguments)
			return true
		}
	}
	return false
}

// HelpListing renders the registry as the fallback message sent for
// unmatched commands. The trailing "help" entry is always present even
// though no parser is registered under that key.
func (r *Registry) HelpListing() string {
	var sb strings.Builder
	sb.WriteString("Supported commands:")
	for _, p := range r.parsers {
		sb.WriteString("\n\t=> ")
		sb.WriteString(p.Key)
		sb.WriteString(": ")
		sb.WriteString(p.Description)
	}
	sb.WriteString("\n\t=> help: show this message")
	return sb.String()
}
