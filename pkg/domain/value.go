package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type of a metadata value.
// The kind of an identifier is declared by the metadata source,
// never inferred by the resolver.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindTime   Kind = "time"
	KindSet    Kind = "set"
)

// Value is a typed piece of issue metadata.
// The set of implementations is closed: each kind registers its
// comparison capabilities in the capability table (see compare.go).
type Value interface {
	// Kind returns the type of the value.
	Kind() Kind
	// Truthy reports whether a bare presence check on the value passes.
	Truthy() bool
	// String returns the canonical textual form of the value.
	String() string
}

// StringValue is free-form text metadata (e.g. a title or an assignee login).
type StringValue string

func (v StringValue) Kind() Kind     { return KindString }
func (v StringValue) Truthy() bool   { return v != "" }
func (v StringValue) String() string { return string(v) }

// NumberValue is numeric metadata (e.g. a review count or a priority rank).
type NumberValue float64

func (v NumberValue) Kind() Kind   { return KindNumber }
func (v NumberValue) Truthy() bool { return v != 0 }

func (v NumberValue) String() string {
	if v == NumberValue(math.Trunc(float64(v))) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

// BoolValue is flag metadata (e.g. "closed").
type BoolValue bool

func (v BoolValue) Kind() Kind     { return KindBool }
func (v BoolValue) Truthy() bool   { return bool(v) }
func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

// TimeValue is timestamp metadata (e.g. a due date).
type TimeValue time.Time

func (v TimeValue) Kind() Kind     { return KindTime }
func (v TimeValue) Truthy() bool   { return !time.Time(v).IsZero() }
func (v TimeValue) String() string { return time.Time(v).Format(time.RFC3339) }

// SetValue is multi-valued metadata (e.g. labels). Membership is
// case-sensitive; the element order is not significant.
type SetValue []string

func (v SetValue) Kind() Kind   { return KindSet }
func (v SetValue) Truthy() bool { return len(v) > 0 }

func (v SetValue) String() string {
	elems := append([]string(nil), v...)
	sort.Strings(elems)
	return strings.Join(elems, ",")
}

// Contains reports whether the set holds the given element.
func (v SetValue) Contains(elem string) bool {
	for _, e := range v {
		if e == elem {
			return true
		}
	}
	return false
}

// NewSet builds a SetValue, dropping duplicate elements.
func NewSet(elems ...string) SetValue {
	seen := make(map[string]struct{}, len(elems))
	out := make(SetValue, 0, len(elems))
	for _, e := range elems {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// ParseValue coerces a textual representation into a value of the given
// kind. This is how literals from condition atoms and fields from textual
// stores (Redis hashes, key=value CLI args) become typed values.
func ParseValue(kind Kind, s string) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(s), nil
	case KindNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		return NumberValue(f), nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", s)
		}
		return BoolValue(b), nil
	case KindTime:
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
		if err != nil {
			// Date-only form is common in issue metadata.
			t, err = time.Parse("2006-01-02", strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("invalid timestamp %q", s)
			}
		}
		return TimeValue(t), nil
	case KindSet:
		if strings.TrimSpace(s) == "" {
			return SetValue{}, nil
		}
		parts := strings.Split(s, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return NewSet(parts...), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

// FromAny converts a dynamically typed value (as produced by JSON or YAML
// decoding) into a Value, inferring the kind from the Go type.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case float64:
		return NumberValue(v), nil
	case int:
		return NumberValue(v), nil
	case int64:
		return NumberValue(v), nil
	case time.Time:
		return TimeValue(v), nil
	case []string:
		return NewSet(v...), nil
	case []any:
		elems := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("set element must be a string, got %T", e)
			}
			elems = append(elems, s)
		}
		return NewSet(elems...), nil
	case nil:
		return nil, fmt.Errorf("metadata value must not be null")
	default:
		return nil, fmt.Errorf("unsupported metadata value type %T", raw)
	}
}
