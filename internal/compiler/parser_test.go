package compiler

import (
	"testing"

	"github.com/verdict-dev/verdict/pkg/domain"
)

func TestParseAtom(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Atom
	}{
		{"closed", domain.Atom{Identifier: "closed"}},
		{"!assignee", domain.Atom{Identifier: "assignee", Negated: true}},
		{"assignee!", domain.Atom{Identifier: "assignee", Negated: true}},
		{"closed=true", domain.Atom{Identifier: "closed", Op: domain.OpEqual, Literal: "true"}},
		{"review_count>=1", domain.Atom{Identifier: "review_count", Op: domain.OpGreaterOrEqual, Literal: "1"}},
		{"priority!=high", domain.Atom{Identifier: "priority", Negated: true, Op: domain.OpEqual, Literal: "high"}},
		{"age~overdue", domain.Atom{Identifier: "age", Op: domain.OpContains, Literal: "overdue"}},
		{"due<2024-06-01", domain.Atom{Identifier: "due", Op: domain.OpLess, Literal: "2024-06-01"}},
		{"labels!~wontfix", domain.Atom{Identifier: "labels", Negated: true, Op: domain.OpContains, Literal: "wontfix"}},
		{"count=", domain.Atom{Identifier: "count", Op: domain.OpEqual, Literal: ""}},
		{"  closed=true  ", domain.Atom{Identifier: "closed", Op: domain.OpEqual, Literal: "true"}},
	}

	for _, tc := range cases {
		got, err := ParseAtom(tc.in)
		if err != nil {
			t.Errorf("ParseAtom(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAtom(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseAtom_Invalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"=true",
		"!",
		"!!closed",
		"!closed!=x",
		"closed==true",
		"my field=1",
	}

	for _, in := range cases {
		if got, err := ParseAtom(in); err == nil {
			t.Errorf("ParseAtom(%q) = %+v, expected error", in, got)
		}
	}
}

func TestParseCondition_RoundTrip(t *testing.T) {
	cond, err := ParseCondition([]string{"closed=true", "!archived"})
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if got := cond.String(); got != "closed=true && !archived" {
		t.Errorf("Condition.String() = %q", got)
	}
}
