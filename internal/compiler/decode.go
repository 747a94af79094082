package compiler

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/verdict-dev/verdict/pkg/domain"
)

// DecodeStates converts a decoded document (YAML or JSON) into raw state
// descriptors. Each item is either a bare state name or a mapping with
// name/conditions/extends/overrides/counter keys; single-string fields
// are accepted wherever a list is expected.
func DecodeStates(items []any) ([]domain.RawState, error) {
	states := make([]domain.RawState, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			states = append(states, domain.RawState{Name: v})
		case map[string]any:
			raw, err := decodeStateMap(v)
			if err != nil {
				return nil, fmt.Errorf("state %d: %w", i, err)
			}
			states = append(states, raw)
		default:
			return nil, fmt.Errorf("state %d: expected name or mapping, got %T", i, item)
		}
	}
	return states, nil
}

func decodeStateMap(m map[string]any) (domain.RawState, error) {
	var raw domain.RawState

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
		DecodeHook:  scalarToListHook,
	})
	if err != nil {
		return domain.RawState{}, err
	}
	if err := dec.Decode(m); err != nil {
		return domain.RawState{}, err
	}
	if raw.Name == "" {
		return domain.RawState{}, fmt.Errorf("state missing name")
	}
	return raw, nil
}

// scalarToListHook promotes a single string to a one-element list, so
// "conditions: closed=true" and "conditions: [closed=true]" decode the
// same way.
func scalarToListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Slice && to.Elem().Kind() == reflect.String {
		return []string{data.(string)}, nil
	}
	return data, nil
}
