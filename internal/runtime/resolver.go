package runtime

import (
	"fmt"
	"sort"

	"github.com/verdict-dev/verdict/pkg/domain"
	"github.com/verdict-dev/verdict/pkg/ports"
)

// Resolve computes the issue state exhibited by the given metadata.
//
// The resolution proceeds in three steps: compute the enabled set from
// the effective conditions (counter-states are enabled exactly when
// their origin is not), drop every enabled state that an enabled state
// overrides, then require the surviving engaged set to hold at most one
// member. An empty engaged set is a valid outcome, not an error; more
// than one member is reported as a *domain.AmbiguousStateError together
// with the outcome, never broken arbitrarily.
//
// Resolve does not mutate the graph; any number of calls may run
// concurrently against the same Graph.
func (g *Graph) Resolve(meta ports.MetadataSource) (domain.Outcome, error) {
	enabled := make([]bool, len(g.states))

	for idx := range g.states {
		st := &g.states[idx]
		if st.counter {
			enabled[idx] = !enabled[st.origin]
			continue
		}
		ok, err := g.isEnabled(idx, meta)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("evaluating state %q: %w", st.name, err)
		}
		enabled[idx] = ok
	}

	// A state is engaged iff it is enabled and no other enabled state
	// overrides it, directly or transitively.
	suppressed := make([]bool, len(g.states))
	for idx := range g.states {
		if !enabled[idx] {
			continue
		}
		for target := range g.states[idx].overridesClosure {
			if enabled[target] {
				suppressed[target] = true
			}
		}
	}

	var outcome domain.Outcome
	var engagedIdx []int
	for idx := range g.states {
		if !enabled[idx] {
			continue
		}
		outcome.Enabled = append(outcome.Enabled, g.states[idx].name)
		if !suppressed[idx] {
			engagedIdx = append(engagedIdx, idx)
			outcome.Engaged = append(outcome.Engaged, g.states[idx].name)
		}
	}
	sort.Strings(outcome.Enabled)
	sort.Strings(outcome.Engaged)

	switch len(engagedIdx) {
	case 0:
		return outcome, nil
	case 1:
		outcome.State = g.states[engagedIdx[0]].name
		outcome.Matched = true
		return outcome, nil
	default:
		return outcome, &domain.AmbiguousStateError{States: outcome.Engaged}
	}
}
