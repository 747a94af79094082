package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdict-dev/verdict/pkg/adapters/memory"
	"github.com/verdict-dev/verdict/pkg/domain"
)

func TestEffectiveCondition_Composition(t *testing.T) {
	g := build(t, []domain.RawState{
		{Name: "base", Conditions: []string{"triaged=true"}},
		{Name: "mid", Conditions: []string{"review_count>=1"}, Extends: []string{"base"}},
		{Name: "leaf", Conditions: []string{"approved=true"}, Extends: []string{"mid"}},
	})

	cond, ok := g.EffectiveCondition("leaf")
	require.True(t, ok)
	atoms := make(map[string]bool, len(cond))
	for _, atom := range cond {
		atoms[atom.String()] = true
	}
	assert.True(t, atoms["approved=true"])
	assert.True(t, atoms["review_count>=1"])
	assert.True(t, atoms["triaged=true"], "extends is transitive")
}

func TestEffectiveCondition_DiamondCollectsOnce(t *testing.T) {
	g := build(t, []domain.RawState{
		{Name: "base", Conditions: []string{"triaged=true"}},
		{Name: "left", Extends: []string{"base"}},
		{Name: "right", Extends: []string{"base"}},
		{Name: "top", Extends: []string{"left", "right"}},
	})

	cond, ok := g.EffectiveCondition("top")
	require.True(t, ok)
	var seen int
	for _, atom := range cond {
		if atom.String() == "triaged=true" {
			seen++
		}
	}
	assert.Equal(t, 1, seen, "shared ancestors contribute their atoms once")
}

func TestEffectiveCondition_OrderInsensitive(t *testing.T) {
	// The same relations declared in either order evaluate identically.
	forward := build(t, []domain.RawState{
		{Name: "base", Conditions: []string{"a=1"}},
		{Name: "leaf", Conditions: []string{"b=1"}, Extends: []string{"base"}},
	})
	backward := build(t, []domain.RawState{
		{Name: "leaf", Conditions: []string{"b=1"}, Extends: []string{"base"}},
		{Name: "base", Conditions: []string{"a=1"}},
	})

	meta := memory.New().
		Set("a", domain.NumberValue(1)).
		Set("b", domain.NumberValue(1))
	first, err := forward.Resolve(meta)
	require.NoError(t, err)
	second, err := backward.Resolve(meta)
	require.NoError(t, err)
	assert.Equal(t, first.State, second.State)
	assert.Equal(t, first.Engaged, second.Engaged)
}

func TestResolve_PresenceAtoms(t *testing.T) {
	g := build(t, []domain.RawState{
		{Name: "flagged", Conditions: []string{"flag"}},
	})

	cases := []struct {
		name    string
		value   domain.Value
		enabled bool
	}{
		{"truthy string", domain.StringValue("yes"), true},
		{"empty string", domain.StringValue(""), false},
		{"nonzero number", domain.NumberValue(-1), true},
		{"zero number", domain.NumberValue(0), false},
		{"true bool", domain.BoolValue(true), true},
		{"false bool", domain.BoolValue(false), false},
		{"nonempty set", domain.NewSet("a"), true},
		{"empty set", domain.NewSet(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := g.Resolve(memory.New().Set("flag", tc.value))
			require.NoError(t, err)
			assert.Equal(t, tc.enabled, outcome.Matched)
		})
	}

	outcome, err := g.Resolve(memory.New())
	require.NoError(t, err)
	assert.False(t, outcome.Matched, "absent identifier fails a presence check")
}

func TestResolve_NegatedComparisonOnAbsentIdentifier(t *testing.T) {
	g := build(t, []domain.RawState{
		{Name: "other", Conditions: []string{"priority!=high"}},
	})

	// Absence never satisfies a comparison, negated or not.
	outcome, err := g.Resolve(memory.New())
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	outcome, err = g.Resolve(memory.New().Set("priority", domain.StringValue("low")))
	require.NoError(t, err)
	assert.True(t, outcome.Matched)
}
