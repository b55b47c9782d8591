// Package form holds the create/edit state machine shared by every entity
// form. Update is a pure function: callers run the returned Effect and feed
// the outcome back as a message.
package form

import (
	"strings"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

// GenericFailure is shown when a failure carries no server message.
const GenericFailure = "Something went wrong. Please try again."

// State is the form lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateEditing
	StateSubmitting
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	default:
		return "idle"
	}
}

// Mode distinguishes creating a new entity from editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Draft is the editable value behind a form.
type Draft interface {
	Validate() FieldErrors
}

// Model is the form state. The zero value is an idle create form.
type Model[D Draft] struct {
	Mode        Mode
	State       State
	TargetID    entity.ID
	Draft       D
	FieldErrors FieldErrors
	// Error is the visible failure from the last load or submit.
	Error string
}

// Editable reports whether fields accept input.
func (m Model[D]) Editable() bool {
	return m.State == StateEditing
}

// Msg is any input to Update.
type Msg any

// Open starts the form. A zero ID opens a blank create form.
type Open struct {
	ID entity.ID
}

// Loaded delivers the fetched entity as a draft.
type Loaded[D Draft] struct {
	ID    entity.ID
	Draft D
}

// LoadFailed reports a fetch failure for ID.
type LoadFailed struct {
	ID  entity.ID
	Err error
}

// Edit replaces the draft with the user's input.
type Edit[D Draft] struct {
	Draft D
}

// Submit asks to commit the draft.
type Submit struct{}

// SubmitSucceeded reports the committed entity id.
type SubmitSucceeded struct {
	ID entity.ID
}

// SubmitFailed reports a rejected commit.
type SubmitFailed struct {
	Err error
}

// EffectKind is the side effect requested by Update.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectFetch
	EffectSubmit
	EffectNavigate
)

// Effect is work the caller must perform after an update.
type Effect[D Draft] struct {
	Kind EffectKind
	// ID is the fetch target, the edit target of a submit (zero on create),
	// or the committed entity on navigate.
	ID    entity.ID
	Draft D
}

// Update applies msg to m.
func Update[D Draft](m Model[D], msg Msg) (Model[D], Effect[D]) {
	switch msg := msg.(type) {
	case Open:
		return open(m, msg.ID)
	case Loaded[D]:
		if m.State != StateLoading || msg.ID != m.TargetID {
			return m, Effect[D]{}
		}
		m.State = StateEditing
		m.Draft = msg.Draft
		m.Error = ""
		return m, Effect[D]{}
	case LoadFailed:
		if m.State != StateLoading || msg.ID != m.TargetID {
			return m, Effect[D]{}
		}
		m.Error = FailureMessage(msg.Err)
		return m, Effect[D]{}
	case Edit[D]:
		if m.State != StateEditing {
			return m, Effect[D]{}
		}
		m.Draft = msg.Draft
		if m.FieldErrors != nil {
			m.FieldErrors = msg.Draft.Validate()
		}
		return m, Effect[D]{}
	case Submit:
		if m.State != StateEditing {
			return m, Effect[D]{}
		}
		if errs := m.Draft.Validate(); len(errs) > 0 {
			m.FieldErrors = errs
			return m, Effect[D]{}
		}
		m.FieldErrors = nil
		m.Error = ""
		m.State = StateSubmitting
		return m, Effect[D]{Kind: EffectSubmit, ID: m.TargetID, Draft: m.Draft}
	case SubmitSucceeded:
		if m.State != StateSubmitting {
			return m, Effect[D]{}
		}
		m.State = StateSuccess
		return m, Effect[D]{Kind: EffectNavigate, ID: msg.ID}
	case SubmitFailed:
		if m.State != StateSubmitting {
			return m, Effect[D]{}
		}
		m.State = StateEditing
		m.Error = FailureMessage(msg.Err)
		return m, Effect[D]{}
	default:
		return m, Effect[D]{}
	}
}

func open[D Draft](m Model[D], id entity.ID) (Model[D], Effect[D]) {
	id = entity.ID(strings.TrimSpace(id.String()))
	if id.IsZero() {
		if m.Mode == ModeCreate && m.State == StateEditing {
			return m, Effect[D]{}
		}
		return Model[D]{Mode: ModeCreate, State: StateEditing}, Effect[D]{}
	}
	if m.Mode == ModeEdit && m.TargetID == id && m.State != StateIdle && m.State != StateSuccess {
		return m, Effect[D]{}
	}
	return Model[D]{Mode: ModeEdit, State: StateLoading, TargetID: id}, Effect[D]{Kind: EffectFetch, ID: id}
}

// FailureMessage returns the server message carried by err, or
// GenericFailure.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.Message(err, GenericFailure)
}
