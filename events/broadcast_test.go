package events

import (
	"testing"

	"github.com/flashcore/avm2/values"
	"github.com/stretchr/testify/require"
)

type anonBroadcastClass struct{ name string }

func (a anonBroadcastClass) ClassName() string                  { return a.name }
func (a anonBroadcastClass) IsInstanceObject(values.Object) bool { return false }

func TestBroadcastSkipsListenerRegisteredDuringInFlightDispatch(t *testing.T) {
	bl := NewBroadcastList()
	l1 := values.NewScriptObject(anonBroadcastClass{"L1"}, nil, false)
	l2 := values.NewScriptObject(anonBroadcastClass{"L2"}, nil, false)
	l3 := values.NewScriptObject(anonBroadcastClass{"L3"}, nil, false)

	bl.Register("enterFrame", l1)
	bl.Register("enterFrame", l2)

	var order []string
	dispatch := func(obj values.Object, e *Event) {
		switch obj {
		case l1:
			order = append(order, "L1")
			bl.Register("enterFrame", l3)
		case l2:
			order = append(order, "L2")
		case l3:
			order = append(order, "L3")
		}
	}

	bl.Broadcast("enterFrame", NewEvent("enterFrame", false, false), nil, dispatch)
	require.Equal(t, []string{"L1", "L2"}, order)

	order = nil
	bl.Broadcast("enterFrame", NewEvent("enterFrame", false, false), nil, dispatch)
	require.Equal(t, []string{"L1", "L2", "L3"}, order)
}

func TestRegisterIgnoresNonWhitelistedEventName(t *testing.T) {
	bl := NewBroadcastList()
	obj := values.NewScriptObject(anonBroadcastClass{"X"}, nil, false)
	bl.Register("mouseDown", obj)

	called := false
	bl.Broadcast("mouseDown", NewEvent("mouseDown", false, false), nil, func(values.Object, *Event) {
		called = true
	})
	require.False(t, called)
}

func TestRegisterIsNoOpForDuplicateIdentity(t *testing.T) {
	bl := NewBroadcastList()
	obj := values.NewScriptObject(anonBroadcastClass{"X"}, nil, false)
	bl.Register("render", obj)
	bl.Register("render", obj)
	require.Len(t, bl.buckets["render"], 1)
}

func TestBroadcastFiltersByOnType(t *testing.T) {
	bl := NewBroadcastList()
	sprite := values.NewScriptObject(anonBroadcastClass{"Sprite"}, nil, false)
	shape := values.NewScriptObject(anonBroadcastClass{"Shape"}, nil, false)
	bl.Register("render", sprite)
	bl.Register("render", shape)

	var visited []string
	onlySprites := func(o values.Object) bool { return o.Class().ClassName() == "Sprite" }
	bl.Broadcast("render", NewEvent("render", false, false), onlySprites, func(o values.Object, e *Event) {
		visited = append(visited, o.Class().ClassName())
	})
	require.Equal(t, []string{"Sprite"}, visited)
}
