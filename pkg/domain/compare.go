package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Policy selects how the comparator treats a relation that is not defined
// for the operand kind. It is fixed per comparator instance so that the
// behavior is consistent across a whole resolution run.
type Policy string

const (
	// PolicyStrict surfaces undefined relations as a *TypeError.
	PolicyStrict Policy = "strict"
	// PolicyLenient treats undefined relations as a non-matching atom
	// (false before negation is applied).
	PolicyLenient Policy = "lenient"
)

// capability describes the relations a kind supports. Equality is
// mandatory for every registered kind. Ordering covers both "<" and ">"
// (one is the other with swapped operands), and therefore "<=" and ">="
// as their derived forms. Contains must be defined whenever equality is:
// at minimum "lhs ~ rhs" holds when "lhs = rhs".
type capability struct {
	equal    func(lhs Value, rhs Value) bool
	less     func(lhs Value, rhs Value) bool // nil if the kind is unordered
	contains func(lhs Value, rhs Value) bool
}

// capabilities is the closed capability table, one entry per Kind.
var capabilities = map[Kind]capability{
	KindString: {
		equal: func(a, b Value) bool { return a.(StringValue) == b.(StringValue) },
		less:  func(a, b Value) bool { return a.(StringValue) < b.(StringValue) },
		contains: func(a, b Value) bool {
			return strings.Contains(string(a.(StringValue)), string(b.(StringValue)))
		},
	},
	KindNumber: {
		equal:    func(a, b Value) bool { return a.(NumberValue) == b.(NumberValue) },
		less:     func(a, b Value) bool { return a.(NumberValue) < b.(NumberValue) },
		contains: func(a, b Value) bool { return a.(NumberValue) == b.(NumberValue) },
	},
	KindBool: {
		equal:    func(a, b Value) bool { return a.(BoolValue) == b.(BoolValue) },
		contains: func(a, b Value) bool { return a.(BoolValue) == b.(BoolValue) },
	},
	KindTime: {
		equal: func(a, b Value) bool { return time.Time(a.(TimeValue)).Equal(time.Time(b.(TimeValue))) },
		less:  func(a, b Value) bool { return time.Time(a.(TimeValue)).Before(time.Time(b.(TimeValue))) },
		contains: func(a, b Value) bool {
			return time.Time(a.(TimeValue)).Equal(time.Time(b.(TimeValue)))
		},
	},
	KindSet: {
		equal:    setEqual,
		contains: setContains,
	},
}

func init() {
	// Registration-time consistency check for the capability table.
	// The table is a closed, compile-time structure, so a violation is a
	// programmer error rather than a runtime condition.
	if err := validateCapabilities(capabilities); err != nil {
		panic(err)
	}
}

// validateCapabilities enforces the composition rules of the table:
// every kind defines equality, and every kind that defines equality also
// defines containment.
func validateCapabilities(table map[Kind]capability) error {
	for kind, caps := range table {
		if caps.equal == nil {
			return fmt.Errorf("kind %q: equality is mandatory", kind)
		}
		if caps.contains == nil {
			return fmt.Errorf("kind %q: contains must be defined when equality is", kind)
		}
	}
	return nil
}

// Comparator performs type-aware relation evaluation between a metadata
// value and a condition-atom literal.
type Comparator struct {
	policy Policy
}

// NewComparator builds a comparator with the given undefined-relation policy.
func NewComparator(policy Policy) *Comparator {
	if policy == "" {
		policy = PolicyStrict
	}
	return &Comparator{policy: policy}
}

// Policy returns the comparator's undefined-relation policy.
func (c *Comparator) Policy() Policy { return c.policy }

// Compare evaluates "lhs op literal", applying negation last. The literal
// is coerced to the kind of lhs; a literal that does not parse as that
// kind is handled like an undefined relation, per the policy.
func (c *Comparator) Compare(op Op, negated bool, lhs Value, literal string) (bool, error) {
	if op == OpNone {
		return false, fmt.Errorf("presence checks are not a comparator relation")
	}

	matched, err := c.relate(op, lhs, literal)
	if err != nil {
		var typeErr *TypeError
		if c.policy == PolicyStrict || !errors.As(err, &typeErr) {
			return false, err
		}
		// Lenient: the base relation is false, negation still applies.
		matched = false
	}

	if negated {
		matched = !matched
	}
	return matched, nil
}

// relate computes the base relation, before negation. An undefined
// relation or an uncoercible literal is reported as a *TypeError.
func (c *Comparator) relate(op Op, lhs Value, literal string) (bool, error) {
	caps, ok := capabilities[lhs.Kind()]
	if !ok {
		return false, &TypeError{Op: op, Kind: lhs.Kind(), Detail: "unregistered kind"}
	}

	rhs, err := ParseValue(lhs.Kind(), literal)
	if err != nil {
		return false, &TypeError{Op: op, Kind: lhs.Kind(), Detail: err.Error()}
	}

	switch op {
	case OpEqual:
		return caps.equal(lhs, rhs), nil
	case OpLess, OpGreater, OpLessOrEqual, OpGreaterOrEqual:
		if caps.less == nil {
			return false, &TypeError{Op: op, Kind: lhs.Kind(), Detail: "kind is unordered"}
		}
		switch op {
		case OpLess:
			return caps.less(lhs, rhs), nil
		case OpGreater:
			return caps.less(rhs, lhs), nil
		case OpLessOrEqual:
			return caps.less(lhs, rhs) || caps.equal(lhs, rhs), nil
		default:
			return caps.less(rhs, lhs) || caps.equal(lhs, rhs), nil
		}
	case OpContains:
		return caps.contains(lhs, rhs) || caps.equal(lhs, rhs), nil
	default:
		return false, fmt.Errorf("unknown operator %q", op)
	}
}

func setEqual(a, b Value) bool {
	as, bs := a.(SetValue), b.(SetValue)
	if len(as) != len(bs) {
		return false
	}
	for _, e := range as {
		if !bs.Contains(e) {
			return false
		}
	}
	return true
}

// setContains matches when lhs is a superset of rhs. A single-element rhs
// therefore behaves as a membership test.
func setContains(a, b Value) bool {
	as, bs := a.(SetValue), b.(SetValue)
	for _, e := range bs {
		if !as.Contains(e) {
			return false
		}
	}
	return true
}
