package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verdict-dev/verdict/internal/presentation/tui"
	"github.com/verdict-dev/verdict/pkg/domain"
)

func TestPrintOutcome(t *testing.T) {
	cases := []struct {
		name    string
		outcome domain.Outcome
		want    string
	}{
		{
			name:    "matched",
			outcome: domain.Outcome{State: "closed", Matched: true, Enabled: []string{"closed", "open"}, Engaged: []string{"closed"}},
			want:    "state: closed",
		},
		{
			name:    "none",
			outcome: domain.Outcome{},
			want:    "state: none",
		},
		{
			name:    "ambiguous",
			outcome: domain.Outcome{Enabled: []string{"stale", "urgent"}, Engaged: []string{"stale", "urgent"}},
			want:    "state: ambiguous (stale, urgent)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tui.NewPrinter(&buf).PrintOutcome(tc.outcome)
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("output %q does not contain %q", buf.String(), tc.want)
			}
		})
	}
}

func TestPrintExplanation(t *testing.T) {
	states := []domain.StateInfo{
		{Name: "open"},
		{Name: "closed", Conditions: []string{"closed=true"}, Overrides: []string{"open"}},
	}
	outcome := domain.Outcome{State: "closed", Matched: true, Enabled: []string{"closed", "open"}, Engaged: []string{"closed"}}
	effective := func(name string) (domain.Condition, bool) {
		if name == "closed" {
			return domain.Condition{{Identifier: "closed", Op: domain.OpEqual, Literal: "true"}}, true
		}
		return nil, true
	}

	var buf bytes.Buffer
	tui.NewPrinter(&buf).PrintExplanation(states, outcome, effective)
	out := buf.String()

	for _, want := range []string{"engaged", "suppressed", "closed=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q does not contain %q", out, want)
		}
	}
}
