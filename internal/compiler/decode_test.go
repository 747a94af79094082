package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStates(t *testing.T) {
	items := []any{
		"backlog",
		map[string]any{
			"name":       "closed",
			"conditions": "closed=true",
			"overrides":  []any{"backlog"},
		},
		map[string]any{
			"name":    "assigned",
			"conditions": []any{"assignee"},
			"counter": "unassigned",
		},
	}

	states, err := DecodeStates(items)
	require.NoError(t, err)
	require.Len(t, states, 3)

	assert.Equal(t, "backlog", states[0].Name)
	assert.Empty(t, states[0].Conditions)

	assert.Equal(t, "closed", states[1].Name)
	assert.Equal(t, []string{"closed=true"}, states[1].Conditions, "scalar condition should decode as one-element list")
	assert.Equal(t, []string{"backlog"}, states[1].Overrides)

	assert.Equal(t, "unassigned", states[2].Counter)
}

func TestDecodeStates_Errors(t *testing.T) {
	_, err := DecodeStates([]any{42})
	assert.Error(t, err)

	_, err = DecodeStates([]any{map[string]any{"conditions": "x"}})
	assert.Error(t, err, "missing name")

	_, err = DecodeStates([]any{map[string]any{"name": "a", "transitions": "b"}})
	assert.Error(t, err, "unknown keys are rejected")
}
