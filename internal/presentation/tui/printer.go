// Package tui formats resolution outcomes for terminal output.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/verdict-dev/verdict/pkg/domain"
)

// Printer writes human-readable outcome and state listings. Colors
// follow the terminal's capabilities; piping output degrades to plain
// text.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewPrinter creates a printer for the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		profile: termenv.NewOutput(out).ColorProfile(),
	}
}

func (p *Printer) styled(s, color string) string {
	return termenv.String(s).Foreground(p.profile.Color(color)).String()
}

// PrintOutcome writes one resolution outcome. The selected state is
// highlighted; an empty engaged set and an ambiguous one each get their
// own rendering.
func (p *Printer) PrintOutcome(outcome domain.Outcome) {
	switch {
	case outcome.Matched:
		fmt.Fprintf(p.out, "state: %s\n", p.styled(outcome.State, "#4ade80"))
	case len(outcome.Engaged) > 1:
		fmt.Fprintf(p.out, "state: %s (%s)\n",
			p.styled("ambiguous", "#facc15"),
			strings.Join(outcome.Engaged, ", "))
	default:
		fmt.Fprintf(p.out, "state: %s\n", p.styled("none", "#94a3b8"))
	}

	if len(outcome.Enabled) > 0 {
		fmt.Fprintf(p.out, "enabled: %s\n", strings.Join(outcome.Enabled, ", "))
	}
}

// PrintExplanation writes the per-state breakdown of one resolution:
// every state with its effective condition and whether it was enabled,
// engaged or suppressed.
func (p *Printer) PrintExplanation(states []domain.StateInfo, outcome domain.Outcome, effective func(string) (domain.Condition, bool)) {
	enabled := toSet(outcome.Enabled)
	engaged := toSet(outcome.Engaged)

	for _, st := range states {
		var status string
		switch {
		case engaged[st.Name]:
			status = p.styled("engaged", "#4ade80")
		case enabled[st.Name]:
			status = p.styled("suppressed", "#facc15")
		default:
			status = p.styled("disabled", "#94a3b8")
		}

		fmt.Fprintf(p.out, "%-12s %s", st.Name, status)
		if cond, ok := effective(st.Name); ok && len(cond) > 0 {
			fmt.Fprintf(p.out, "  [%s]", cond.String())
		} else if st.Counter {
			fmt.Fprintf(p.out, "  [counters %s]", st.Origin)
		}
		fmt.Fprintln(p.out)
	}
}

// PrintStates writes the validated state list with relations.
func (p *Printer) PrintStates(states []domain.StateInfo) {
	for _, st := range states {
		fmt.Fprintf(p.out, "%s", p.styled(st.Name, "#818cf8"))
		if st.Counter {
			fmt.Fprintf(p.out, " (counters %s)", st.Origin)
		}
		fmt.Fprintln(p.out)
		if len(st.Conditions) > 0 {
			fmt.Fprintf(p.out, "  conditions: %s\n", strings.Join(st.Conditions, " && "))
		}
		if len(st.Extends) > 0 {
			fmt.Fprintf(p.out, "  extends: %s\n", strings.Join(st.Extends, ", "))
		}
		if len(st.Overrides) > 0 {
			fmt.Fprintf(p.out, "  overrides: %s\n", strings.Join(st.Overrides, ", "))
		}
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
