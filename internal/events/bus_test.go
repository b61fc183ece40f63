package events

import (
	"testing"
	"time"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New(8)
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(NewPhaseChanged("s1", "Discovery"))

	select {
	case e := <-ch:
		if e.EventType() != TypePhaseChanged || e.SessionID() != "s1" {
			t.Errorf("got %v/%v", e.EventType(), e.SessionID())
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_TypeFilter(t *testing.T) {
	bus := New(8)
	defer bus.Close()

	ch, cancel := bus.Subscribe(TypeReportReady)
	defer cancel()

	bus.Publish(NewPhaseChanged("s1", "Discovery"))
	bus.Publish(NewReportReady("s1", "rep-1", core.TierLeader))

	select {
	case e := <-ch:
		if e.EventType() != TypeReportReady {
			t.Errorf("filter leaked %v", e.EventType())
		}
	case <-time.After(time.Second):
		t.Fatal("filtered event not delivered")
	}
	select {
	case e := <-ch:
		t.Errorf("unexpected second event %v", e.EventType())
	default:
	}
}

func TestBus_DropsOnFullBuffer(t *testing.T) {
	bus := New(1)
	defer bus.Close()

	_, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(NewPhaseChanged("s1", "a"))
	bus.Publish(NewPhaseChanged("s1", "b")) // buffer full, dropped

	if bus.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", bus.Dropped())
	}
}

func TestBus_CancelUnsubscribes(t *testing.T) {
	bus := New(8)
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}
	// Publishing after cancel must not panic.
	bus.Publish(NewPhaseChanged("s1", "x"))
}

func TestBus_CloseIdempotent(t *testing.T) {
	bus := New(8)
	ch, _ := bus.Subscribe()
	bus.Close()
	bus.Close()

	if _, ok := <-ch; ok {
		t.Error("channel still open after Close")
	}
	bus.Publish(NewPhaseChanged("s1", "x"))
}
