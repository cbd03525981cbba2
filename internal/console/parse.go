package console

import (
	"errors"
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"
)

// Parse turns one input line into a Command. Lines starting with a known
// verb use the verb form; anything else is tried as a dot call.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, nil
	}

	verb, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		verb, rest = line[:i], line[i+1:]
	}
	if !isVerb(verb) {
		return ParseCall(line)
	}

	args, err := tokenize(rest)
	if err != nil {
		if verb == VerbUpdate {
			return Command{}, ErrInvalidUpdate
		}
		return Command{}, ErrInvalidCommand
	}
	return Command{Verb: verb, Args: args}, nil
}

// ParseCall parses the "<Kind>.<method>(<args>)" form. The kind is the first
// argument, possibly empty, so the handlers report a missing class the same
// way for both syntaxes. ".all()" carries no kind and lists everything.
func ParseCall(line string) (Command, error) {
	kind, call, ok := strings.Cut(strings.TrimSpace(line), ".")
	if !ok {
		return Command{}, ErrInvalidCommand
	}
	open := strings.IndexByte(call, '(')
	if open < 0 || !strings.HasSuffix(call, ")") {
		return Command{}, ErrInvalidCommand
	}
	method := call[:open]
	inner := strings.TrimSpace(call[open+1 : len(call)-1])

	switch method {
	case VerbAll, VerbCount:
		if inner != "" {
			return Command{}, ErrInvalidCommand
		}
		// The kind is optional for all, as in the verb form.
		if method == VerbAll && kind == "" {
			return Command{Verb: VerbAll, Args: []string{}}, nil
		}
		return Command{Verb: method, Args: []string{kind}}, nil

	case VerbShow, VerbDestroy:
		args := []string{kind}
		if id := unquote(inner); id != "" {
			args = append(args, id)
		}
		return Command{Verb: method, Args: args}, nil

	case VerbUpdate:
		parts := splitArgs(inner)
		if len(parts) < 2 {
			return Command{}, ErrDictionaryMissing
		}
		payload := strings.Join(parts[1:], " ")
		if strings.HasPrefix(payload, "{") {
			return Command{}, ErrInvalidUpdate
		}
		tokens, err := tokenize(payload)
		if err != nil {
			return Command{}, ErrInvalidUpdate
		}
		args := append([]string{kind, unquote(parts[0])}, tokens...)
		return Command{Verb: VerbUpdate, Args: args}, nil
	}
	return Command{}, ErrInvalidCommand
}

var errShellOperator = errors.New("unquoted shell operator")

// tokenize splits s on whitespace, treating single- or double-quoted
// substrings as one token with the quotes removed. A backslash is literal
// unless it precedes a quote character.
func tokenize(s string) ([]string, error) {
	p := shellwords.NewParser()
	args, err := p.Parse(keepBackslashes(s))
	if err != nil {
		return nil, err
	}
	// The parser stops at an unquoted ; & | < or > and records where.
	if p.Position >= 0 {
		return nil, errShellOperator
	}
	return args, nil
}

// keepBackslashes doubles every backslash the shellwords parser would
// otherwise consume, except \" and \' escapes and anything inside single
// quotes, where the parser already keeps backslashes.
func keepBackslashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var (
		b     strings.Builder
		quote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && quote != '\'':
			if i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\'') {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
				continue
			}
			b.WriteString(`\\`)
			continue
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case c == quote:
			quote = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitArgs splits a call's argument list on commas that are not inside
// quotes. Parts are trimmed; quotes are kept for the tokenizer.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var (
		parts   []string
		cur     strings.Builder
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ',':
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(parts, strings.TrimSpace(cur.String()))
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
