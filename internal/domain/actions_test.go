package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActions_SortedByName(t *testing.T) {
	names := make([]string, len(Actions))
	for i, a := range Actions {
		names[i] = a.Name
	}
	assert.True(t, sort.StringsAreSorted(names))
}

func TestGetActionByName(t *testing.T) {
	a := GetActionByName(ActionRemove)
	require.NotNil(t, a)
	assert.Equal(t, ActionRemove, a.Name)

	assert.Nil(t, GetActionByName("missing"))
}

func TestActionsFor(t *testing.T) {
	tests := []struct {
		state    RecordState
		expected []string
	}{
		{StateAdd, []string{ActionAdd, ActionCancel}},
		{StateEdit, []string{ActionCancel, ActionRemove, ActionSave}},
		{StateView, []string{ActionEdit, ActionRemove}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			var names []string
			for _, a := range ActionsFor(tt.state) {
				names = append(names, a.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}
