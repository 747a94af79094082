// Package compiler turns textual condition atoms and raw descriptor
// documents into domain types. It owns the condition-atom grammar:
//
//	identifier [ "!" ] [ operator ] [ value ]
//
// where the identifier excludes the characters "! < > = ~" and
// whitespace, the operator is one of = < > <= >= ~, and a bare
// identifier (optionally negated) is a presence check. A leading "!" is
// accepted as an alternative spelling of the negated presence check
// ("!assignee" means "assignee absent or falsy").
package compiler

import (
	"fmt"
	"strings"

	"github.com/verdict-dev/verdict/pkg/domain"
)

// reserved holds the characters that terminate an identifier.
const reserved = "!<>=~"

// ParseAtom parses a single condition atom.
func ParseAtom(input string) (domain.Atom, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return domain.Atom{}, fmt.Errorf("empty condition atom")
	}

	var atom domain.Atom
	if s[0] == '!' {
		atom.Negated = true
		s = s[1:]
	}

	// Identifier runs until the first reserved character.
	end := strings.IndexAny(s, reserved)
	if end == -1 {
		end = len(s)
	}
	atom.Identifier = s[:end]
	tail := s[end:]
	if err := checkIdentifier(atom.Identifier); err != nil {
		return domain.Atom{}, fmt.Errorf("atom %q: %w", input, err)
	}

	if tail == "" {
		// Bare presence check.
		return atom, nil
	}

	if tail[0] == '!' {
		if atom.Negated {
			return domain.Atom{}, fmt.Errorf("atom %q: double negation", input)
		}
		atom.Negated = true
		tail = tail[1:]
		if tail == "" {
			// Trailing-negation presence check ("assignee!").
			return atom, nil
		}
	}

	op, rest, err := splitOperator(tail)
	if err != nil {
		return domain.Atom{}, fmt.Errorf("atom %q: %w", input, err)
	}
	atom.Op = op

	// Multi-character operators all end in "=", so a literal starting
	// with "=" would be ambiguous. The grammar forbids it.
	if strings.HasPrefix(rest, "=") {
		return domain.Atom{}, fmt.Errorf("atom %q: literal may not begin with %q", input, "=")
	}
	atom.Literal = rest

	return atom, nil
}

// ParseCondition parses a list of atom strings into a conjunction.
func ParseCondition(entries []string) (domain.Condition, error) {
	cond := make(domain.Condition, 0, len(entries))
	for _, entry := range entries {
		atom, err := ParseAtom(entry)
		if err != nil {
			return nil, err
		}
		cond = append(cond, atom)
	}
	return cond, nil
}

func splitOperator(s string) (domain.Op, string, error) {
	for _, op := range []domain.Op{domain.OpLessOrEqual, domain.OpGreaterOrEqual,
		domain.OpLess, domain.OpGreater, domain.OpEqual, domain.OpContains} {
		if strings.HasPrefix(s, string(op)) {
			return op, s[len(op):], nil
		}
	}
	return domain.OpNone, "", fmt.Errorf("expected operator, found %q", s)
}

func checkIdentifier(ident string) error {
	// The scan above already stops at reserved characters; the shared
	// check also rejects empty and whitespace-bearing names.
	return domain.CheckIdentifier(ident)
}
