package notify

import (
	"testing"
)

func TestNotifier_GlobalSubscribe(t *testing.T) {
	n := New()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.NotifySet("GstRender.VSyncMode", "0", "1", "user")
	n.NotifyReload("restore")

	if len(got) != 2 {
		t.Fatalf("received %d changes, want 2", len(got))
	}
	if got[0].Key != "GstRender.VSyncMode" || got[0].Type != ChangeSet {
		t.Errorf("first change = %+v", got[0])
	}
	if got[0].Old != "0" || got[0].New != "1" || got[0].Source != "user" {
		t.Errorf("first change values = %+v", got[0])
	}
	if got[1].Type != ChangeReload {
		t.Errorf("second change = %+v", got[1])
	}
}

func TestNotifier_SubscribeKey(t *testing.T) {
	n := New()

	var watched, other int
	n.SubscribeKey("a.Key", func(Change) { watched++ })
	n.SubscribeKey("b.Key", func(Change) { other++ })

	n.NotifySet("a.Key", "", "1", "user")
	n.NotifySet("c.Key", "", "2", "user")

	if watched != 1 {
		t.Errorf("a.Key observer called %d times, want 1", watched)
	}
	if other != 0 {
		t.Errorf("b.Key observer called %d times, want 0", other)
	}
}

func TestNotifier_KeyObserversReceiveReloads(t *testing.T) {
	n := New()

	var calls int
	n.SubscribeKey("a.Key", func(c Change) {
		if c.Type != ChangeReload {
			t.Errorf("change type = %v, want reload", c.Type)
		}
		calls++
	})

	n.NotifyReload("restore")
	if calls != 1 {
		t.Errorf("observer called %d times, want 1", calls)
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	n := New()

	var calls int
	sub := n.Subscribe(func(Change) { calls++ })

	n.NotifySet("a.Key", "", "1", "user")
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	n.NotifySet("a.Key", "1", "2", "user")

	if calls != 1 {
		t.Errorf("observer called %d times, want 1", calls)
	}
}

func TestNotifier_ObserverMayUnsubscribeDuringDelivery(t *testing.T) {
	n := New()

	var sub *Subscription
	sub = n.Subscribe(func(Change) { sub.Unsubscribe() })

	n.NotifySet("a.Key", "", "1", "user") // must not deadlock
	n.NotifySet("a.Key", "1", "2", "user")
}

func TestChangeType_String(t *testing.T) {
	if ChangeSet.String() != "set" || ChangeReload.String() != "reload" {
		t.Error("unexpected ChangeType strings")
	}
	if ChangeType(9).String() != "unknown" {
		t.Error("unexpected string for invalid type")
	}
}
