package complexinput

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/form"
)

func TestNew_StartsWithAddSlot(t *testing.T) {
	c := newPhoneForm(t)

	require.NoError(t, c.Validate())
	assert.Equal(t, 0, c.Len())
	assert.Len(t, c.Records(), 1)
	assert.Equal(t, domain.StateAdd, c.AddSlot().State())
	assert.Nil(t, c.AddSlot().Value(), "the add slot has no identity before commit")
}

func TestAdd_CommitsSlotAndRecreatesIt(t *testing.T) {
	c := newPhoneForm(t)
	var events []string
	c.AddEventHandler(func(ev Event) { events = append(events, ev.EventName()) })

	addPhone(t, c, "111")
	firstSlot := c.Records()[1]
	addPhone(t, c, "222")

	require.NoError(t, c.Validate())
	assert.Equal(t, []string{"111", "222"}, numbers(c.Value()))

	records := c.Records()
	require.Len(t, records, 3)
	assert.Equal(t, domain.StateAdd, records[0].State())
	assert.Same(t, firstSlot, records[1], "the old slot becomes a saved row")
	assert.Equal(t, domain.StateView, records[1].State())
	assert.Equal(t, "111", records[1].Value().Number)
	assert.Equal(t, "222", records[2].Value().Number)
	assert.NotEmpty(t, records[1].Value().ID(), "committed records get an identity")
	assert.NotEqual(t, records[1].Value().ID(), records[2].Value().ID())
	assert.Equal(t, "", typedNumber(t, records[0]), "the fresh slot starts empty")

	assert.Equal(t, []string{"add", "field_add", "add", "field_add"}, events)
}

func TestAdd_ValidationFailureKeepsState(t *testing.T) {
	c := newPhoneForm(t)

	err := c.Add()

	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "number is required", verr.Message)
	assert.Equal(t, 0, c.Len())
	require.NoError(t, c.Validate())
}

func TestSetValue_RebuildsRecords(t *testing.T) {
	c := newPhoneForm(t)
	addPhone(t, c, "000")
	oldSlot := c.AddSlot()

	list := []*phone{{Number: "111"}, {Number: "222"}}
	require.NoError(t, c.SetValue(list))

	require.NoError(t, c.Validate())
	assert.NotSame(t, oldSlot, c.AddSlot())
	assert.Equal(t, []string{"111", "222"}, numbers(c.Value()))
	assert.Same(t, list[0], c.Records()[1].Value(), "records bind the caller's objects")

	got := c.Value()
	got[0] = &phone{Number: "mutated"}
	assert.Equal(t, "111", c.Value()[0].Number, "Value returns a copy")
}

func TestEditSave_CommitsWorkingCopy(t *testing.T) {
	c := newPhoneForm(t)
	p := &phone{id: "p1", Number: "111"}
	require.NoError(t, c.SetValue([]*phone{p}))

	require.NoError(t, c.Edit(1))
	rec := c.Records()[1]
	assert.Equal(t, domain.StateEdit, rec.State())
	typeNumber(t, rec, "999")
	assert.True(t, rec.HasUnsavedData())
	assert.Equal(t, "111", p.Number, "edits are not live")

	require.NoError(t, c.Save(1))
	assert.Equal(t, "111", p.Number, "the caller's object is left alone")
	require.Len(t, c.Value(), 1)
	assert.Equal(t, "999", c.Value()[0].Number)
	assert.Equal(t, "p1", c.Value()[0].ID())
	assert.Same(t, c.Value()[0], rec.Value())
	assert.Equal(t, domain.StateView, rec.State())
	assert.False(t, rec.HasUnsavedData())
}

func TestEditSave_EditAgainStartsFromSavedValue(t *testing.T) {
	c := newPhoneForm(t)
	require.NoError(t, c.SetValue([]*phone{{Number: "111"}}))

	require.NoError(t, c.Edit(1))
	typeNumber(t, c.Records()[1], "222")
	require.NoError(t, c.Save(1))

	require.NoError(t, c.Edit(1))
	rec := c.Records()[1]
	assert.False(t, rec.HasUnsavedData())
	typeNumber(t, rec, "333")
	rec.AddUndo()

	assert.Equal(t, domain.StateView, rec.State())
	assert.Equal(t, []string{"222"}, numbers(c.Value()))
	assert.Equal(t, "222", rec.View())
}

func TestEdit_Errors(t *testing.T) {
	c := newPhoneForm(t)
	require.NoError(t, c.SetValue([]*phone{{Number: "111"}}))

	assert.ErrorIs(t, c.Edit(0), domain.ErrInvalidIndex, "the add slot is not a saved row")
	assert.ErrorIs(t, c.Edit(5), domain.ErrInvalidIndex)
	assert.ErrorIs(t, c.Save(1), domain.ErrInvalidState, "save needs edit state")

	require.NoError(t, c.Edit(1))
	assert.ErrorIs(t, c.Edit(1), domain.ErrInvalidState)
}

func TestRemove_WaitsForConfirmation(t *testing.T) {
	c := newPhoneForm(t)
	a, b := &phone{Number: "A"}, &phone{Number: "B"}
	require.NoError(t, c.SetValue([]*phone{a, b}))

	var pending []ConfirmationEvent
	c.AddConfirmationHandler(func(e ConfirmationEvent) { pending = append(pending, e) })

	// Give B unsaved data
	require.NoError(t, c.Edit(2))
	typeNumber(t, c.Records()[2], "B2")

	require.NoError(t, c.Remove(2))
	require.Len(t, pending, 1)
	assert.True(t, pending[0].HasSideEffect)
	assert.Equal(t, domain.ActionRemove, pending[0].Reason)
	assert.Same(t, b, pending[0].Item)
	assert.Equal(t, []*phone{a, b}, c.Value(), "nothing changes before the decision")

	assert.True(t, pending[0].Confirmation.Decline())
	assert.Equal(t, []*phone{a, b}, c.Value())
	require.NoError(t, c.Validate())

	assert.False(t, pending[0].Confirmation.Confirm(), "a resolved confirmation stays resolved")
	assert.Equal(t, []*phone{a, b}, c.Value())
	assert.Equal(t, domain.OutcomeDeclined, pending[0].Confirmation.Outcome())
}

func TestRemove_ConfirmedRemovesRecordAndItem(t *testing.T) {
	c := newPhoneForm(t)
	a, b, d := &phone{Number: "A"}, &phone{Number: "B"}, &phone{Number: "D"}
	require.NoError(t, c.SetValue([]*phone{a, b, d}))
	var removed []any
	c.AddEventHandler(func(ev Event) {
		if e, ok := ev.(RemoveEvent); ok {
			removed = append(removed, e.Item)
		}
	})
	c.AddConfirmationHandler(func(e ConfirmationEvent) {
		assert.False(t, e.HasSideEffect)
		e.Confirmation.Confirm()
	})

	require.NoError(t, c.Remove(2))

	assert.Equal(t, []*phone{a, d}, c.Value())
	assert.Equal(t, []any{b}, removed)
	require.NoError(t, c.Validate())
	assert.Same(t, d, c.Records()[2].Value())
}

func TestRemove_UnresolvedOrUnhandledLeavesState(t *testing.T) {
	c := newPhoneForm(t)
	a := &phone{Number: "A"}
	require.NoError(t, c.SetValue([]*phone{a}))

	// No handler at all: the request is dropped
	require.NoError(t, c.Remove(1))
	assert.Equal(t, []*phone{a}, c.Value())

	// Handler that never answers
	var pending *Confirmation
	c.AddConfirmationHandler(func(e ConfirmationEvent) { pending = e.Confirmation })
	require.NoError(t, c.Remove(1))
	require.NotNil(t, pending)
	assert.Equal(t, domain.OutcomePending, pending.Outcome())
	assert.Equal(t, []*phone{a}, c.Value())

	// Other interactions still work meanwhile
	addPhone(t, c, "B")
	assert.Equal(t, []string{"A", "B"}, numbers(c.Value()))
}

func TestRemove_ConfirmationAfterListRebuiltIsNoop(t *testing.T) {
	c := newPhoneForm(t)
	a := &phone{Number: "A"}
	require.NoError(t, c.SetValue([]*phone{a}))
	var pending *Confirmation
	c.AddConfirmationHandler(func(e ConfirmationEvent) { pending = e.Confirmation })
	require.NoError(t, c.Remove(1))

	require.NoError(t, c.SetValue([]*phone{a}))
	pending.Confirm()

	assert.Equal(t, []*phone{a}, c.Value())
	require.NoError(t, c.Validate())
}

func TestRemove_AddSlotIgnored(t *testing.T) {
	c := newPhoneForm(t)
	called := false
	c.AddConfirmationHandler(func(ConfirmationEvent) { called = true })

	c.AddSlot().RemoveField()

	assert.False(t, called)
	assert.ErrorIs(t, c.Remove(0), domain.ErrInvalidIndex)
}

func TestCancel_CleanEditRevertsImmediately(t *testing.T) {
	c := newPhoneForm(t)
	require.NoError(t, c.SetValue([]*phone{{Number: "A"}}))
	c.AddConfirmationHandler(func(ConfirmationEvent) { t.Fatal("clean cancel needs no confirmation") })

	require.NoError(t, c.Edit(1))
	require.NoError(t, c.Cancel(1))

	assert.Equal(t, domain.StateView, c.Records()[1].State())
}

func TestCancel_DirtyEditNeedsConfirmation(t *testing.T) {
	c := newPhoneForm(t)
	a := &phone{Number: "A"}
	require.NoError(t, c.SetValue([]*phone{a}))
	var pending *ConfirmationEvent
	c.AddConfirmationHandler(func(e ConfirmationEvent) { pending = &e })

	require.NoError(t, c.Edit(1))
	rec := c.Records()[1]
	typeNumber(t, rec, "changed")
	require.NoError(t, c.Cancel(1))

	require.NotNil(t, pending)
	assert.Equal(t, domain.ActionCancel, pending.Reason)
	assert.Equal(t, domain.StateEdit, rec.State(), "still editing until confirmed")

	pending.Confirmation.Confirm()
	assert.Equal(t, domain.StateView, rec.State())
	assert.Equal(t, "A", a.Number)
	assert.Equal(t, "A", typedNumber(t, rec), "widgets show the committed value again")
}

func TestCancel_AddSlotClearsDraft(t *testing.T) {
	c := newPhoneForm(t)
	c.AddConfirmationHandler(func(e ConfirmationEvent) { e.Confirmation.Confirm() })
	typeNumber(t, c.AddSlot(), "draft")

	require.NoError(t, c.Cancel(0))

	assert.Equal(t, "", typedNumber(t, c.AddSlot()))
	assert.Equal(t, domain.StateAdd, c.AddSlot().State())
}

func TestRequiredAndReadOnly_FanOut(t *testing.T) {
	c := newPhoneForm(t)
	require.NoError(t, c.SetValue([]*phone{{Number: "A"}}))

	c.SetRequired(true)
	c.SetReadOnly(true)

	for _, rec := range c.Records() {
		for _, f := range rec.Form().Fields() {
			assert.True(t, f.IsRequired())
			assert.True(t, f.IsReadOnly())
		}
	}

	assert.ErrorIs(t, c.Add(), domain.ErrReadOnly)
	assert.ErrorIs(t, c.Edit(1), domain.ErrReadOnly)
	assert.ErrorIs(t, c.Remove(1), domain.ErrReadOnly)

	// New records inherit the flags
	require.NoError(t, c.SetValue([]*phone{{Number: "B"}}))
	for _, rec := range c.Records() {
		assert.True(t, rec.Form().Fields()[0].IsReadOnly())
		assert.True(t, rec.Form().Fields()[0].IsRequired())
	}

	c.SetReadOnly(false)
	assert.False(t, c.AddSlot().Form().Fields()[0].IsReadOnly())
}

func TestNested_FieldAddBubblesToOutermostForm(t *testing.T) {
	outer := newContactForm(t)
	var seen []Event
	outer.AddEventHandler(func(ev Event) { seen = append(seen, ev) })

	inner := nestedPhones(t, outer.AddSlot())
	addPhone(t, inner, "555")

	var fieldAdds []FieldAddEvent
	for _, ev := range seen {
		if e, ok := ev.(FieldAddEvent); ok {
			fieldAdds = append(fieldAdds, e)
		}
	}
	require.Len(t, fieldAdds, 1)
	assert.Equal(t, "555", fieldAdds[0].Item.(*phone).Number)
	assert.Equal(t, 0, outer.Len(), "the outer list is not affected")
}

func TestNested_CommittedWithOuterRecord(t *testing.T) {
	outer := newContactForm(t)
	slot := outer.AddSlot()
	name, ok := slot.Form().Fields()[0].(*form.TextField[*contact])
	require.True(t, ok)
	name.SetWidgetValue("Ada")
	addPhone(t, nestedPhones(t, slot), "555")
	addPhone(t, nestedPhones(t, slot), "666")

	require.NoError(t, outer.Add())

	require.Equal(t, 1, outer.Len())
	ada := outer.Value()[0]
	assert.Equal(t, "Ada", ada.Name)
	assert.Equal(t, []string{"555", "666"}, numbers(ada.Phones))
	assert.Equal(t, "Ada 555,666", outer.Records()[1].View())
}

func TestNested_EditOuterRecordThenAddPhone(t *testing.T) {
	outer := newContactForm(t)
	ada := &contact{Name: "Ada", Phones: []*phone{{Number: "1"}}}
	require.NoError(t, outer.SetValue([]*contact{ada}))

	require.NoError(t, outer.Edit(1))
	rec := outer.Records()[1]
	addPhone(t, nestedPhones(t, rec), "2")
	assert.True(t, rec.HasUnsavedData())
	assert.Equal(t, []string{"1"}, numbers(ada.Phones))

	require.NoError(t, outer.Save(1))
	assert.Equal(t, []string{"1"}, numbers(ada.Phones))
	assert.Equal(t, []string{"1", "2"}, numbers(outer.Value()[0].Phones))
}

func TestNested_SavedPhoneEditMakesOuterRecordDirty(t *testing.T) {
	outer := newContactForm(t)
	require.NoError(t, outer.SetValue([]*contact{{Name: "Ada", Phones: []*phone{{Number: "111"}}}}))
	require.NoError(t, outer.Edit(1))
	rec := outer.Records()[1]
	assert.False(t, rec.HasUnsavedData())

	phones := nestedPhones(t, rec)
	require.NoError(t, phones.Edit(1))
	typeNumber(t, phones.Records()[1], "999")
	require.NoError(t, phones.Save(1))

	assert.True(t, rec.HasUnsavedData())
	assert.Equal(t, "111", outer.Value()[0].Phones[0].Number, "nothing is committed before the outer save")

	require.NoError(t, outer.Save(1))
	assert.False(t, rec.HasUnsavedData())
	assert.Equal(t, []string{"999"}, numbers(outer.Value()[0].Phones))
}

func TestNested_CancelOuterDiscardsSavedPhoneEdit(t *testing.T) {
	outer := newContactForm(t)
	ada := &contact{Name: "Ada", Phones: []*phone{{Number: "111"}}}
	require.NoError(t, outer.SetValue([]*contact{ada}))
	var asked []ConfirmationEvent
	outer.AddConfirmationHandler(func(e ConfirmationEvent) { asked = append(asked, e) })

	require.NoError(t, outer.Edit(1))
	rec := outer.Records()[1]
	phones := nestedPhones(t, rec)
	require.NoError(t, phones.Edit(1))
	typeNumber(t, phones.Records()[1], "999")
	require.NoError(t, phones.Save(1))
	require.NoError(t, outer.Cancel(1))

	require.Len(t, asked, 1)
	assert.Equal(t, domain.ActionCancel, asked[0].Reason)
	assert.Equal(t, domain.StateEdit, rec.State())

	asked[0].Confirmation.Confirm()
	assert.Equal(t, domain.StateView, rec.State())
	assert.Equal(t, "111", ada.Phones[0].Number)
	assert.Equal(t, []string{"111"}, numbers(outer.Value()[0].Phones))
	assert.Equal(t, []string{"111"}, numbers(nestedPhones(t, rec).Value()))
	assert.Equal(t, "Ada 111", rec.View())
}

func TestNested_ConfirmationAndActionsSurfaceAtRoot(t *testing.T) {
	outer := newContactForm(t)
	ada := &contact{Name: "Ada", Phones: []*phone{{Number: "1"}, {Number: "2"}}}
	require.NoError(t, outer.SetValue([]*contact{ada}))
	require.NoError(t, outer.Edit(1))
	inner := nestedPhones(t, outer.Records()[1])

	var actions []ActionEvent
	outer.AddActionHandler(func(e ActionEvent) { actions = append(actions, e) })
	outer.AddConfirmationHandler(func(e ConfirmationEvent) {
		_, fromInner := e.Source.(ComplexInput[*phone])
		assert.True(t, fromInner)
		e.Confirmation.Confirm()
	})

	require.NoError(t, inner.Remove(1))
	assert.Equal(t, []string{"2"}, numbers(inner.Value()))

	require.NoError(t, inner.Action(1, "call", "+351"))
	require.Len(t, actions, 1)
	assert.Equal(t, "call", actions[0].Name)
	assert.Equal(t, "+351", actions[0].Payload)
	assert.Equal(t, "2", actions[0].Item.(*phone).Number)
}

func TestNested_InnerHandlerTakesPrecedence(t *testing.T) {
	outer := newContactForm(t)
	require.NoError(t, outer.SetValue([]*contact{{Name: "Ada", Phones: []*phone{{Number: "1"}}}}))
	require.NoError(t, outer.Edit(1))
	inner := nestedPhones(t, outer.Records()[1])

	outerAsked, innerAsked := false, false
	outer.AddConfirmationHandler(func(ConfirmationEvent) { outerAsked = true })
	inner.AddConfirmationHandler(func(ConfirmationEvent) { innerAsked = true })

	require.NoError(t, inner.Remove(1))

	assert.True(t, innerAsked)
	assert.False(t, outerAsked)
}

func TestInvariants_HoldUnderRandomOperations(t *testing.T) {
	c := newPhoneForm(t)
	c.AddConfirmationHandler(func(e ConfirmationEvent) {
		if e.Reason == domain.ActionRemove {
			e.Confirmation.Confirm()
		} else {
			e.Confirmation.Decline()
		}
	})
	rng := rand.New(rand.NewSource(7))

	for step := 0; step < 300; step++ {
		n := len(c.Records())
		i := 1 + rng.Intn(n)
		switch rng.Intn(5) {
		case 0:
			typeNumber(t, c.AddSlot(), "n")
			require.NoError(t, c.Add())
		case 1:
			err := c.Remove(i)
			if i >= n {
				assert.True(t, errors.Is(err, domain.ErrInvalidIndex))
			}
		case 2:
			_ = c.Edit(i)
		case 3:
			if i < n {
				typeNumber(t, c.Records()[i], "edited")
			}
			_ = c.Cancel(i % n)
		case 4:
			_ = c.Save(i)
		}

		require.NoError(t, c.Validate(), "step %d", step)
		adds := 0
		for _, rec := range c.Records() {
			if rec.State() == domain.StateAdd {
				adds++
			}
		}
		require.Equal(t, 1, adds, "step %d", step)
	}
}

func TestRender_AddSlotFirst(t *testing.T) {
	c := newPhoneForm(t)
	c.SetTitle("Phones")
	require.NoError(t, c.SetValue([]*phone{{Number: "111"}}))

	out := c.Render()

	assert.Contains(t, out, "Phones")
	assert.Contains(t, out, "+ new")
	assert.Contains(t, out, "1. 111")
	assert.Less(t, strings.Index(out, "+ new"), strings.Index(out, "1. 111"))

	c.SetReadOnly(true)
	assert.NotContains(t, c.Render(), "+ new")
}

func typedNumber(t *testing.T, rec ComplexInput[*phone]) string {
	t.Helper()
	field, ok := rec.Form().Fields()[0].(*form.TextField[*phone])
	require.True(t, ok)
	return field.WidgetValue()
}

func TestCollection_ErasesRecordType(t *testing.T) {
	outer := newContactForm(t)
	require.NoError(t, outer.SetValue([]*contact{{Name: "Ada", Phones: []*phone{{Number: "1"}}}}))
	var col Collection = outer

	assert.Equal(t, 2, col.Size())
	assert.Equal(t, domain.StateAdd, col.StateAt(0))
	assert.Equal(t, domain.StateView, col.StateAt(1))
	assert.Equal(t, domain.RecordState(""), col.StateAt(9))
	assert.Equal(t, "Ada 1", col.ViewAt(1))

	_, err := col.BuildForm(1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	require.NoError(t, col.Edit(1))
	f, err := col.BuildForm(1)
	require.NoError(t, err)
	assert.NotNil(t, f)

	children := col.Children(1)
	require.Len(t, children, 1)
	assert.Equal(t, "Phones", children[0].Title())
	assert.Equal(t, 2, children[0].Size())
	assert.Equal(t, "1", children[0].ViewAt(1))
}
