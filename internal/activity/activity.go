// Package activity hosts interactive activity sessions. Each session runs one
// trainer exercise and exposes its rendered state as JSON.
package activity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/p-n-ai/ibcs-hub/internal/activity/bstree"
	"github.com/p-n-ai/ibcs-hub/internal/activity/bubblesort"
	"github.com/p-n-ai/ibcs-hub/internal/activity/linkedlist"
	"github.com/p-n-ai/ibcs-hub/internal/activity/logicgate"
	"github.com/p-n-ai/ibcs-hub/internal/activity/numconv"
	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

var (
	ErrUnknownKind     = errors.New("unknown activity kind")
	ErrBadAnswer       = errors.New("malformed answer")
	ErrSessionNotFound = errors.New("session not found")
)

// Kind names an activity.
type Kind string

const (
	KindBubbleSort       Kind = "bubble-sort"
	KindBinarySearchTree Kind = "binary-search-tree"
	KindLinkedList       Kind = "linked-list"
	KindLogicGate        Kind = "logic-gate"
	KindNumberConversion Kind = "number-conversion"
)

// Kinds lists every activity in display order.
func Kinds() []Kind {
	return []Kind{KindLogicGate, KindNumberConversion, KindBubbleSort, KindLinkedList, KindBinarySearchTree}
}

// Valid reports whether k names a known activity.
func (k Kind) Valid() bool {
	_, ok := factories[k]
	return ok
}

// State is the client-facing snapshot of a session. It carries the rendered
// view only, never the problem's ground truth.
type State struct {
	SessionID string            `json:"session_id"`
	Kind      Kind              `json:"kind"`
	Phase     trainer.Phase     `json:"phase"`
	Feedback  *trainer.Feedback `json:"feedback,omitempty"`
	Complete  bool              `json:"complete"`
	Epoch     uint64            `json:"epoch"`
	Attempts  int               `json:"attempts"`
	View      any               `json:"view"`
}

// runner erases a session's type parameters.
type runner interface {
	state() State
	submit(raw json.RawMessage) (State, error)
	reset() State
	close()
}

type typedRunner[P, G, A any, V any] struct {
	session *trainer.Session[P, G, A]
	render  func(P, G) V
}

func (r *typedRunner[P, G, A, V]) project(s trainer.Snapshot[P, G]) State {
	return State{
		Phase:    s.Phase,
		Feedback: s.Feedback,
		Complete: s.Complete(),
		Epoch:    s.Epoch,
		Attempts: s.Attempts,
		View:     r.render(s.Problem, s.Progress),
	}
}

func (r *typedRunner[P, G, A, V]) state() State {
	return r.project(r.session.Snapshot())
}

func (r *typedRunner[P, G, A, V]) submit(raw json.RawMessage) (State, error) {
	var answer A
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&answer); err != nil {
			return r.state(), fmt.Errorf("decode answer: %w: %v", ErrBadAnswer, err)
		}
	}
	snap, err := r.session.Submit(answer)
	return r.project(snap), err
}

func (r *typedRunner[P, G, A, V]) reset() State {
	return r.project(r.session.Reset())
}

func (r *typedRunner[P, G, A, V]) close() {
	r.session.Close()
}

type factory func(opts ...trainer.Option) runner

func register[P, G, A any, V any](ex trainer.Exercise[P, G, A], render func(P, G) V) factory {
	return func(opts ...trainer.Option) runner {
		return &typedRunner[P, G, A, V]{
			session: trainer.NewSession(ex, opts...),
			render:  render,
		}
	}
}

var factories = map[Kind]factory{
	KindBubbleSort:       register[bubblesort.Problem, bubblesort.Progress, bubblesort.Answer](bubblesort.Exercise{}, bubblesort.Render),
	KindBinarySearchTree: register[bstree.Problem, bstree.Progress, bstree.Answer](bstree.Exercise{}, bstree.Render),
	KindLinkedList:       register[linkedlist.Problem, linkedlist.Progress, linkedlist.Answer](linkedlist.Exercise{}, linkedlist.Render),
	KindLogicGate:        register[logicgate.Problem, logicgate.Progress, logicgate.Answer](logicgate.Exercise{}, logicgate.Render),
	KindNumberConversion: register[numconv.Problem, numconv.Progress, numconv.Answer](numconv.Exercise{}, numconv.Render),
}
