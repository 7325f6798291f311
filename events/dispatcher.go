package events

import (
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

var publicNS = names.New(names.KindPublic, "")

func qn(n string) names.QName { return names.NewQName(publicNS, n) }

// nativeFn adapts a Go closure to values.Invokable, the same
// wrap-a-function idiom the runtime package's builtins use.
type nativeFn func(this values.Value, args []values.Value) (values.Value, error)

func (f nativeFn) Invoke(this values.Value, args []values.Value) (values.Value, error) {
	return f(this, args)
}

// sameInvokable compares two listener callables by identity. A plain Go
// func value wrapped in the Invokable interface is not comparable with
// ==, which would panic at runtime rather than simply report false; the
// recover turns that into the "not the same listener" answer a dedup
// check needs.
func sameInvokable(a, b values.Invokable) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// listener is one registered handler: a callable plus the capture flag
// that determines which phase it fires in.
type listener struct {
	fn         values.Invokable
	useCapture bool
}

// Dispatcher is the EventDispatcher capability every display-list node
// (and any plain event source) embeds: a per-type ordered listener list
// plus the parent link DispatchEvent walks to build the ancestry a
// dispatch travels capture-then-bubble through.
type Dispatcher struct {
	listeners map[string][]*listener
	parent    *Dispatcher
	self      values.Value
}

func NewDispatcher(self values.Value) *Dispatcher {
	return &Dispatcher{listeners: make(map[string][]*listener), self: self}
}

// SetParent wires d into a display-list ancestry; nil marks d as a root
// (the ancestry walk for dispatch stops there).
func (d *Dispatcher) SetParent(parent *Dispatcher) { d.parent = parent }

// AddEventListener registers fn for typ, ignoring a duplicate identical
// (fn, useCapture) registration the way addEventListener does (compared
// by the underlying Invokable's identity).
func (d *Dispatcher) AddEventListener(typ string, fn values.Invokable, useCapture bool) {
	for _, l := range d.listeners[typ] {
		if sameInvokable(l.fn, fn) && l.useCapture == useCapture {
			return
		}
	}
	d.listeners[typ] = append(d.listeners[typ], &listener{fn: fn, useCapture: useCapture})
}

func (d *Dispatcher) RemoveEventListener(typ string, fn values.Invokable, useCapture bool) {
	ls := d.listeners[typ]
	for i, l := range ls {
		if sameInvokable(l.fn, fn) && l.useCapture == useCapture {
			d.listeners[typ] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) HasEventListener(typ string) bool {
	return len(d.listeners[typ]) > 0
}

// ancestry returns the chain from d up to its root, root-first, the
// order DispatchEvent's capture phase walks.
func (d *Dispatcher) ancestry() []*Dispatcher {
	var chain []*Dispatcher
	for cur := d; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// fire runs every listener registered on node for event.Type matching
// wantCapture, in registration order, honoring stopImmediatePropagation
// (abort this node's remaining listeners) and stopPropagation (let this
// node finish, but DispatchEvent checks the flag before moving to the
// next node).
func fire(node *Dispatcher, event *Event, wantCapture bool, phase Phase) {
	event.currentTarget = node.self
	event.phase = phase
	for _, l := range node.listeners[event.Type] {
		if l.useCapture != wantCapture {
			continue
		}
		if _, err := l.fn.Invoke(node.self, []values.Value{values.NewObject(ToObject(event))}); err != nil {
			continue
		}
		if event.stoppedImmediate {
			return
		}
	}
}

var eventClass = anonEventClass{}

type anonEventClass struct{}

func (anonEventClass) ClassName() string                  { return "Event" }
func (anonEventClass) IsInstanceObject(values.Object) bool { return false }

// ToObject renders e as the values.Object a listener's Invokable sees as
// its event argument: a plain ScriptObject exposing snapshot copies of the
// type/bubbles/cancelable/target/currentTarget/eventPhase properties
// plus the three propagation-control methods, all bound to this same
// *Event so script-visible mutation (stopPropagation, preventDefault)
// is reflected back into the in-flight dispatch.
func ToObject(e *Event) *values.ScriptObject {
	obj := values.NewScriptObject(eventClass, nil, true)
	obj.Set(qn("type"), values.NewString(e.Type))
	obj.Set(qn("bubbles"), values.NewBool(e.Bubbles))
	obj.Set(qn("cancelable"), values.NewBool(e.Cancelable))
	obj.Set(qn("target"), e.target)
	obj.Set(qn("currentTarget"), e.currentTarget)
	obj.Set(qn("eventPhase"), values.NewInt(int32(e.phase)))
	obj.Set(qn("stopPropagation"), values.NewObject(values.NewFunctionObject(eventClass, nil, nativeFn(
		func(values.Value, []values.Value) (values.Value, error) {
			e.StopPropagation()
			return values.Undefined, nil
		}))))
	obj.Set(qn("stopImmediatePropagation"), values.NewObject(values.NewFunctionObject(eventClass, nil, nativeFn(
		func(values.Value, []values.Value) (values.Value, error) {
			e.StopImmediatePropagation()
			return values.Undefined, nil
		}))))
	obj.Set(qn("preventDefault"), values.NewObject(values.NewFunctionObject(eventClass, nil, nativeFn(
		func(values.Value, []values.Value) (values.Value, error) {
			e.PreventDefault()
			return values.Undefined, nil
		}))))
	return obj
}

// DispatchEvent runs event through target's ancestry in three phases:
// capture from the root down to (excluding) target, target phase on
// target itself (both capturing and non-capturing listeners fire,
// collapsing capture/target into one pass), then — only if event.Bubbles
// — bubble back up from target's parent to the root. Returns whether the
// event's default action was cancelled (false if not Cancelable).
func DispatchEvent(target *Dispatcher, event *Event) bool {
	event.target = target.self
	chain := target.ancestry()

	for _, node := range chain {
		if node == target {
			break
		}
		fire(node, event, true, PhaseCapturing)
		if event.stopped {
			return event.defaultPrevented
		}
	}

	fire(target, event, true, PhaseAtTarget)
	if !event.stoppedImmediate {
		fire(target, event, false, PhaseAtTarget)
	}
	if event.stopped {
		return event.defaultPrevented
	}

	if !event.Bubbles {
		return event.defaultPrevented
	}
	for i := len(chain) - 2; i >= 0; i-- {
		fire(chain[i], event, false, PhaseBubbling)
		if event.stopped {
			break
		}
	}
	return event.defaultPrevented
}
