package events

import (
	"testing"
	"time"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()

	bus.Publish(Event{Type: TypeScenarioPass, Scenario: "login"})

	select {
	case e := <-ch:
		if e.Type != TypeScenarioPass {
			t.Errorf("Type = %s", e.Type)
		}
		if e.Timestamp.IsZero() {
			t.Error("timestamp not set on publish")
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBusFilter(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(TypeScenarioFail)

	bus.Publish(Event{Type: TypeScenarioPass})
	bus.Publish(Event{Type: TypeScenarioFail, Scenario: "checkout"})

	select {
	case e := <-ch:
		if e.Type != TypeScenarioFail {
			t.Errorf("filtered subscriber got %s", e.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBusHistory(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Type: TypeRunStart})
	bus.Publish(Event{Type: TypeStepStart, Action: "goto"})
	bus.Publish(Event{Type: TypeRunEnd})

	all := bus.History(time.Time{})
	if len(all) != 3 {
		t.Errorf("history len = %d, want 3", len(all))
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}
}

func TestBusSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	bus.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			bus.Publish(Event{Type: TypeStepEnd})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}
