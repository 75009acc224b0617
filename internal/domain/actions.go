package domain

// Action represents a user-invocable action on a record.
type Action struct {
	Description string
	Name        string
	States      []RecordState // states in which the action is offered
}

// Built-in record actions
const (
	ActionAdd    = "add"
	ActionCancel = "cancel"
	ActionEdit   = "edit"
	ActionRemove = "remove"
	ActionSave   = "save"
)

// Actions is the canonical registry of built-in record actions.
// Sorted alphabetically by Name.
var Actions = []Action{
	{Name: ActionAdd, Description: "Add the new record to the list", States: []RecordState{StateAdd}},
	{Name: ActionCancel, Description: "Discard unsaved changes", States: []RecordState{StateAdd, StateEdit}},
	{Name: ActionEdit, Description: "Edit the record", States: []RecordState{StateView}},
	{Name: ActionRemove, Description: "Remove the record", States: []RecordState{StateView, StateEdit}},
	{Name: ActionSave, Description: "Save changes", States: []RecordState{StateEdit}},
}

// GetActions returns all built-in actions.
func GetActions() []Action {
	return Actions
}

// GetActionByName returns an action by its name, or nil if not found.
func GetActionByName(name string) *Action {
	for i := range Actions {
		if Actions[i].Name == name {
			return &Actions[i]
		}
	}
	return nil
}

// ActionsFor returns the built-in actions offered in the given state.
func ActionsFor(state RecordState) []Action {
	var result []Action
	for _, a := range Actions {
		for _, s := range a.States {
			if s == state {
				result = append(result, a)
				break
			}
		}
	}
	return result
}
