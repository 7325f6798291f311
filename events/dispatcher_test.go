package events

import (
	"testing"

	"github.com/flashcore/avm2/values"
	"github.com/stretchr/testify/require"
)

func recorder(tag string, order *[]string) values.Invokable {
	return nativeFn(func(values.Value, []values.Value) (values.Value, error) {
		*order = append(*order, tag)
		return values.Undefined, nil
	})
}

func TestDispatchEventRunsCaptureTargetBubbleInOrder(t *testing.T) {
	var order []string

	root := NewDispatcher(values.NewObject(values.NewScriptObject(eventClass, nil, false)))
	child := NewDispatcher(values.NewObject(values.NewScriptObject(eventClass, nil, false)))
	leaf := NewDispatcher(values.NewObject(values.NewScriptObject(eventClass, nil, false)))
	child.SetParent(root)
	leaf.SetParent(child)

	root.AddEventListener("click", recorder("root-capture", &order), true)
	child.AddEventListener("click", recorder("child-bubble", &order), false)
	leaf.AddEventListener("click", recorder("leaf-target", &order), true)
	leaf.AddEventListener("click", recorder("leaf-target-bubble-flag", &order), false)

	cancelled := DispatchEvent(leaf, NewEvent("click", true, true))

	require.False(t, cancelled)
	require.Equal(t, []string{"root-capture", "leaf-target", "leaf-target-bubble-flag", "child-bubble"}, order)
}

func TestDispatchEventSkipsBubbleWhenNotBubbling(t *testing.T) {
	var order []string

	root := NewDispatcher(values.NewObject(values.NewScriptObject(eventClass, nil, false)))
	leaf := NewDispatcher(values.NewObject(values.NewScriptObject(eventClass, nil, false)))
	leaf.SetParent(root)

	root.AddEventListener("ready", recorder("root-bubble", &order), false)
	leaf.AddEventListener("ready", recorder("leaf-target", &order), true)

	DispatchEvent(leaf, NewEvent("ready", false, false))

	require.Equal(t, []string{"leaf-target"}, order)
}

func TestPreventDefaultReflectsInDispatchResult(t *testing.T) {
	leaf := NewDispatcher(values.NewObject(values.NewScriptObject(eventClass, nil, false)))
	leaf.AddEventListener("submit", nativeFn(func(this values.Value, args []values.Value) (values.Value, error) {
		evt := args[0].Object().(*values.ScriptObject)
		fn, _ := evt.GetProperty(qn("preventDefault"))
		_, err := fn.Object().(*values.FunctionObject).Call(this, nil)
		return values.Undefined, err
	}), true)

	cancelled := DispatchEvent(leaf, NewEvent("submit", false, true))
	require.True(t, cancelled)
}

// taggedInvokable is a pointer-based Invokable (comparable, unlike a bare
// func value) so identity dedup has something concrete to compare.
type taggedInvokable struct {
	tag   string
	order *[]string
}

func (t *taggedInvokable) Invoke(values.Value, []values.Value) (values.Value, error) {
	*t.order = append(*t.order, t.tag)
	return values.Undefined, nil
}

func TestAddEventListenerDedupesIdenticalRegistration(t *testing.T) {
	var order []string
	leaf := NewDispatcher(values.Undefined)
	fn := &taggedInvokable{tag: "only-once", order: &order}
	leaf.AddEventListener("tick", fn, false)
	leaf.AddEventListener("tick", fn, false)
	require.Len(t, leaf.listeners["tick"], 1)
}

func TestSameInvokableRecoversFromUncomparableFuncValues(t *testing.T) {
	var order []string
	a := recorder("a", &order)
	b := recorder("b", &order)
	require.False(t, sameInvokable(a, b))
}
