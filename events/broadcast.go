package events

import "github.com/flashcore/avm2/values"

// whitelist is the fixed set of event names the broadcast list accepts;
// registration and broadcast are both no-ops for anything else.
var whitelist = map[string]bool{
	"enterFrame":       true,
	"exitFrame":        true,
	"frameConstructed": true,
	"render":           true,
}

// BroadcastList fans the four whitelisted frame-pump events out to every
// registered object regardless of display-list membership, the
// EventDispatcher.globalDispatcher equivalent for host-driven ticks.
type BroadcastList struct {
	buckets map[string][]values.Object
}

func NewBroadcastList() *BroadcastList {
	return &BroadcastList{buckets: make(map[string][]values.Object)}
}

// Register adds obj to name's bucket, a no-op when name is outside the
// whitelist or obj is already present (compared by identity, i.e.
// pointer equality of the underlying Object).
func (b *BroadcastList) Register(name string, obj values.Object) {
	if !whitelist[name] || obj == nil {
		return
	}
	for _, existing := range b.buckets[name] {
		if existing == obj {
			return
		}
	}
	b.buckets[name] = append(b.buckets[name], obj)
}

func (b *BroadcastList) Unregister(name string, obj values.Object) {
	bucket := b.buckets[name]
	for i, existing := range bucket {
		if existing == obj {
			b.buckets[name] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// Broadcast dispatches event to every object in name's bucket that
// onType admits (nil onType admits everything), in registration order.
// It snapshots the bucket length before iterating, so a listener that
// registers a new broadcast listener mid-dispatch (as invoking dispatch
// may do, since Invoke can run arbitrary bytecode) never receives this
// same in-flight broadcast; the new registration is visible to the next
// Broadcast call, since it lands in the same backing bucket.
func (b *BroadcastList) Broadcast(name string, event *Event, onType func(values.Object) bool, dispatch func(values.Object, *Event)) {
	if !whitelist[name] {
		return
	}
	bucket := b.buckets[name]
	n := len(bucket)
	for i := 0; i < n; i++ {
		obj := bucket[i]
		if onType != nil && !onType(obj) {
			continue
		}
		dispatch(obj, event)
	}
}
