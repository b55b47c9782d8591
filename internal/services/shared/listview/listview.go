// Package listview is the reducer behind entity list pages: fetch on mount,
// confirmed deletes applied after the server acknowledges them, and per-item
// background actions guarded against double triggering.
package listview

import (
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
)

// Item is a listed entity.
type Item interface {
	ItemID() entity.ID
}

// State is the collection load state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// Model is the list state. The zero value is an unmounted list.
type Model[T Item] struct {
	State State
	Items []T
	// Error is the visible failure from the last load or delete.
	Error string
	// PendingDelete is the item awaiting confirmation.
	PendingDelete entity.ID
	// Deleting is the item whose delete call is outstanding.
	Deleting     entity.ID
	Inflight     map[entity.ID]bool
	ActionErrors map[entity.ID]string
}

// Find returns the listed item with id.
func (m Model[T]) Find(id entity.ID) (T, bool) {
	for _, item := range m.Items {
		if item.ItemID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Busy reports whether an action for id is running.
func (m Model[T]) Busy(id entity.ID) bool {
	return m.Inflight[id]
}

// Msg is any input to Update.
type Msg any

type (
	// Mounted starts the list.
	Mounted struct{}
	// Loaded delivers the fetched collection.
	Loaded[T Item] struct{ Items []T }
	// LoadFailed reports a fetch failure.
	LoadFailed struct{ Err error }
	// DeleteRequested asks for confirmation before deleting ID.
	DeleteRequested struct{ ID entity.ID }
	// DeleteCancelled dismisses the confirmation.
	DeleteCancelled struct{}
	// DeleteConfirmed commits the pending delete.
	DeleteConfirmed struct{}
	// DeleteSucceeded is the server acknowledgment of a delete.
	DeleteSucceeded struct{ ID entity.ID }
	// DeleteFailed reports a rejected delete.
	DeleteFailed struct {
		ID  entity.ID
		Err error
	}
	// ActionStarted triggers the per-item action for ID.
	ActionStarted struct{ ID entity.ID }
	// ActionCompleted delivers the refreshed item.
	ActionCompleted[T Item] struct{ Item T }
	// ActionFailed reports a failed per-item action.
	ActionFailed struct {
		ID  entity.ID
		Err error
	}
)

// EffectKind is the side effect requested by Update.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectFetch
	EffectDelete
	EffectAction
)

// Effect is work the caller must perform after an update.
type Effect struct {
	Kind EffectKind
	ID   entity.ID
}

// Update applies msg to m. Maps in m are copied before mutation so earlier
// models stay valid.
func Update[T Item](m Model[T], msg Msg) (Model[T], Effect) {
	switch msg := msg.(type) {
	case Mounted:
		if m.State != StateIdle {
			return m, Effect{}
		}
		m.State = StateLoading
		return m, Effect{Kind: EffectFetch}
	case Loaded[T]:
		m.State = StateReady
		m.Items = msg.Items
		m.Error = ""
		return m, Effect{}
	case LoadFailed:
		m.State = StateFailed
		m.Error = form.FailureMessage(msg.Err)
		return m, Effect{}
	case DeleteRequested:
		if _, ok := m.Find(msg.ID); !ok || m.Deleting != "" {
			return m, Effect{}
		}
		m.PendingDelete = msg.ID
		return m, Effect{}
	case DeleteCancelled:
		m.PendingDelete = ""
		return m, Effect{}
	case DeleteConfirmed:
		if m.PendingDelete == "" {
			return m, Effect{}
		}
		id := m.PendingDelete
		m.PendingDelete = ""
		m.Deleting = id
		m.Error = ""
		return m, Effect{Kind: EffectDelete, ID: id}
	case DeleteSucceeded:
		return ApplyServerAck(m, msg), Effect{}
	case DeleteFailed:
		if m.Deleting == msg.ID {
			m.Deleting = ""
		}
		m.Error = form.FailureMessage(msg.Err)
		return m, Effect{}
	case ActionStarted:
		if m.Inflight[msg.ID] {
			return m, Effect{}
		}
		if _, ok := m.Find(msg.ID); !ok {
			return m, Effect{}
		}
		m.Inflight = withFlag(m.Inflight, msg.ID, true)
		m.ActionErrors = withoutKey(m.ActionErrors, msg.ID)
		return m, Effect{Kind: EffectAction, ID: msg.ID}
	case ActionCompleted[T]:
		id := msg.Item.ItemID()
		m.Inflight = withFlag(m.Inflight, id, false)
		items := make([]T, len(m.Items))
		copy(items, m.Items)
		for i, item := range items {
			if item.ItemID() == id {
				items[i] = msg.Item
			}
		}
		m.Items = items
		return m, Effect{}
	case ActionFailed:
		m.Inflight = withFlag(m.Inflight, msg.ID, false)
		errs := make(map[entity.ID]string, len(m.ActionErrors)+1)
		for k, v := range m.ActionErrors {
			errs[k] = v
		}
		errs[msg.ID] = form.FailureMessage(msg.Err)
		m.ActionErrors = errs
		return m, Effect{}
	default:
		return m, Effect{}
	}
}

// ApplyServerAck removes an acknowledged delete from the list without a
// re-fetch.
func ApplyServerAck[T Item](m Model[T], ack DeleteSucceeded) Model[T] {
	items := make([]T, 0, len(m.Items))
	for _, item := range m.Items {
		if item.ItemID() != ack.ID {
			items = append(items, item)
		}
	}
	m.Items = items
	if m.Deleting == ack.ID {
		m.Deleting = ""
	}
	if m.PendingDelete == ack.ID {
		m.PendingDelete = ""
	}
	m.Inflight = withFlag(m.Inflight, ack.ID, false)
	return m
}

func withFlag(set map[entity.ID]bool, id entity.ID, on bool) map[entity.ID]bool {
	out := make(map[entity.ID]bool, len(set)+1)
	for k, v := range set {
		if v {
			out[k] = v
		}
	}
	if on {
		out[id] = true
	} else {
		delete(out, id)
	}
	return out
}

func withoutKey(m map[entity.ID]string, id entity.ID) map[entity.ID]string {
	if _, ok := m[id]; !ok {
		return m
	}
	out := make(map[entity.ID]string, len(m))
	for k, v := range m {
		if k != id {
			out[k] = v
		}
	}
	return out
}
