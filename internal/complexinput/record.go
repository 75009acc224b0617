package complexinput

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/form"
	"github.com/renato0307/dynform/internal/logging"
	"github.com/renato0307/dynform/internal/theme"
)

// Record is the stock ComplexInput, driven by a Template
type Record[V any] struct {
	form     *form.DynamicForm[V]
	sink     Sink
	state    domain.RecordState
	template Template[V]
	value    V
}

// NewRecord builds a record in View state with no value bound
func NewRecord[V any](template Template[V], resources *theme.Resources) (*Record[V], error) {
	r := &Record[V]{
		form:     form.NewDynamicForm[V](resources),
		state:    domain.StateView,
		template: template,
	}
	if err := template.Build(r.form); err != nil {
		return nil, fmt.Errorf("failed to build record form: %w", err)
	}

	// Nested repeating forms report through this record
	for _, field := range r.form.Fields() {
		if n, ok := field.(Nestable); ok {
			n.SetParent(r)
		}
	}

	return r, nil
}

func (r *Record[V]) Form() *form.DynamicForm[V] { return r.form }
func (r *Record[V]) State() domain.RecordState  { return r.state }
func (r *Record[V]) Value() V                   { return r.value }
func (r *Record[V]) Bind(sink Sink)             { r.sink = sink }

// Notify forwards events from nested forms to the owner
func (r *Record[V]) Notify(ev Event) {
	if r.sink != nil {
		r.sink.Notify(ev)
	}
}

func (r *Record[V]) SetValue(v V) {
	r.value = v
	r.form.SetData(v)
	r.state = domain.StateView
}

func (r *Record[V]) SetViewState() {
	r.state = domain.StateView
}

// SetEditState binds a working copy of the value, so edits reach the value
// only through SaveField. Ignored in Add state.
func (r *Record[V]) SetEditState() {
	if r.state == domain.StateAdd {
		return
	}
	r.form.SetData(r.template.Clone(r.value))
	r.state = domain.StateEdit
}

// SetAddState binds a fresh draft
func (r *Record[V]) SetAddState() {
	var zero V
	r.value = zero
	r.form.SetData(r.template.New())
	r.state = domain.StateAdd
}

func (r *Record[V]) SaveField() error {
	if r.state != domain.StateEdit {
		return fmt.Errorf("%w: save in %s state", domain.ErrInvalidState, r.state)
	}
	if err := r.form.DoValidation(); err != nil {
		return err
	}
	// the working copy becomes the value
	r.value = r.form.GetData()
	r.state = domain.StateView
	logging.Logger.Debug("Record saved", "summary", r.template.Summary(r.value))
	return nil
}

func (r *Record[V]) AddField() error {
	if r.state != domain.StateAdd {
		return fmt.Errorf("%w: add in %s state", domain.ErrInvalidState, r.state)
	}
	if err := r.form.DoValidation(); err != nil {
		return err
	}

	draft := r.form.GetData()
	if ident, ok := any(draft).(domain.Identified); ok && ident.ID() == "" {
		ident.SetID(uuid.NewString())
	}
	r.value = draft

	r.Notify(AddEvent{Item: draft, Source: r})
	return nil
}

func (r *Record[V]) RemoveField() {
	if r.state == domain.StateAdd {
		logging.Logger.Debug("Ignoring remove on the add slot")
		return
	}
	r.Notify(RemoveEvent{Item: r.value, Source: r})
}

func (r *Record[V]) CancelField() {
	if r.state == domain.StateView {
		return
	}
	r.Notify(CancelEvent{Item: r.value, Source: r})
}

func (r *Record[V]) FireAction(name string, payload any) {
	r.Notify(ActionEvent{Item: r.value, Name: name, Payload: payload, Source: r})
}

func (r *Record[V]) HasUnsavedData() bool {
	if r.state == domain.StateView {
		return false
	}
	return r.form.Dirty()
}

func (r *Record[V]) AddUndo() {
	switch r.state {
	case domain.StateAdd:
		r.form.SetData(r.template.New())
	case domain.StateEdit:
		r.form.SetData(r.value)
		r.state = domain.StateView
	}
}

func (r *Record[V]) View() string {
	if r.state == domain.StateView {
		return r.template.Summary(r.value)
	}
	return r.form.View()
}
