package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Op is a condition-atom match operator. The left-hand operand is always
// the metadata value, the right-hand operand the atom's literal.
type Op string

const (
	// OpNone marks a bare presence (truthiness) check; no literal.
	OpNone Op = ""
	// OpEqual matches when both values are equivalent.
	OpEqual Op = "="
	// OpLess matches when the metadata value orders strictly below the literal.
	OpLess Op = "<"
	// OpGreater matches when the metadata value orders strictly above the literal.
	OpGreater Op = ">"
	// OpLessOrEqual is OpLess or OpEqual.
	OpLessOrEqual Op = "<="
	// OpGreaterOrEqual is OpGreater or OpEqual.
	OpGreaterOrEqual Op = ">="
	// OpContains matches when the metadata value contains, or equals, the literal.
	OpContains Op = "~"
)

// CheckIdentifier reports whether name is usable as a metadata
// identifier: non-empty, no whitespace, and none of the characters the
// condition grammar reserves. Adapters apply it to incoming metadata
// keys so an invalid key fails at ingestion rather than silently never
// matching any atom.
func CheckIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("missing identifier")
	}
	if strings.ContainsAny(name, "!<>=~") {
		return fmt.Errorf("identifier %q contains a reserved character", name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return fmt.Errorf("identifier %q contains whitespace", name)
		}
	}
	return nil
}

// Atom is a single comparison between one metadata identifier's value and
// a literal. With OpNone it degenerates to a presence check; Negated
// inverts the result after the base relation is computed.
type Atom struct {
	Identifier string
	Negated    bool
	Op         Op
	Literal    string
}

// String renders the atom back in the condition grammar.
func (a Atom) String() string {
	var sb strings.Builder
	if a.Op == OpNone {
		if a.Negated {
			sb.WriteString("!")
		}
		sb.WriteString(a.Identifier)
		return sb.String()
	}
	sb.WriteString(a.Identifier)
	if a.Negated {
		sb.WriteString("!")
	}
	sb.WriteString(string(a.Op))
	sb.WriteString(a.Literal)
	return sb.String()
}

// Condition is a conjunction of atoms. Atom order carries no meaning; an
// empty condition is vacuously true.
type Condition []Atom

// String renders the condition as its atoms joined by " && ".
func (c Condition) String() string {
	parts := make([]string, len(c))
	for i, a := range c {
		parts[i] = a.String()
	}
	return strings.Join(parts, " && ")
}
