package ecs

import (
	"testing"

	"github.com/phanxgames/aseanim"

	"github.com/yohamta/donburi"
)

func newWalkSet(t *testing.T) *aseanim.AnimationSet {
	t.Helper()
	set := aseanim.NewAnimationSet()
	walk := &aseanim.Animation{Frames: []aseanim.Frame{
		{Region: aseanim.Rect{Width: 8, Height: 8}, Duration: 0.25},
		{Region: aseanim.Rect{X: 8, Width: 8, Height: 8}, Duration: 0.25},
	}}
	if err := set.Add("walk", walk); err != nil {
		t.Fatal(err)
	}
	return set
}

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitAnimationEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []aseanim.AnimationEvent
	AnimationEventType.Subscribe(world, func(w donburi.World, e aseanim.AnimationEvent) {
		received = append(received, e)
	})

	sink.EmitAnimationEvent(aseanim.AnimationEvent{
		Type:      aseanim.EventFrameChanged,
		EntityID:  42,
		Animation: "walk",
		Frame:     1,
	})
	sink.EmitAnimationEvent(aseanim.AnimationEvent{Type: aseanim.EventAnimationFinished})

	if len(received) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}
	AnimationEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("received %d events, want 2", len(received))
	}
	if received[0].EntityID != 42 || received[0].Animation != "walk" || received[0].Frame != 1 {
		t.Errorf("event 0 = %+v", received[0])
	}
	if received[1].Type != aseanim.EventAnimationFinished {
		t.Errorf("event 1 type = %v, want EventAnimationFinished", received[1].Type)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	var _ aseanim.EventSink = (*donburiSink)(nil)
}

func TestNewPlayerEntity(t *testing.T) {
	world := donburi.NewWorld()
	p := aseanim.NewPlayer(newWalkSet(t))
	entry := NewPlayerEntity(world, p)

	if !entry.HasComponent(Animation) {
		t.Fatal("entity missing Animation component")
	}
	if got := Animation.Get(entry).Player; got != p {
		t.Errorf("component player = %p, want %p", got, p)
	}

	var received []aseanim.AnimationEvent
	AnimationEventType.Subscribe(world, func(w donburi.World, e aseanim.AnimationEvent) {
		received = append(received, e)
	})
	if err := p.Play("walk"); err != nil {
		t.Fatal(err)
	}
	p.Update(0.25)
	AnimationEventType.ProcessEvents(world)

	if len(received) != 1 || received[0].Type != aseanim.EventFrameChanged {
		t.Errorf("received %+v, want one FrameChanged", received)
	}
}

func TestAttach_ReplacesPlayer(t *testing.T) {
	world := donburi.NewWorld()
	set := newWalkSet(t)
	first := aseanim.NewPlayer(set)
	entry := NewPlayerEntity(world, first)

	second := aseanim.NewPlayer(set)
	Attach(world, entry, second)

	if got := Animation.Get(entry).Player; got != second {
		t.Errorf("component player = %p, want %p", got, second)
	}
}

func TestAttach_AddsComponent(t *testing.T) {
	world := donburi.NewWorld()
	type position struct{ X, Y float64 }
	positionType := donburi.NewComponentType[position]()
	entry := world.Entry(world.Create(positionType))

	Attach(world, entry, aseanim.NewPlayer(newWalkSet(t)))

	if !entry.HasComponent(Animation) {
		t.Error("Attach did not add the Animation component")
	}
}

func TestUpdateSystem(t *testing.T) {
	world := donburi.NewWorld()
	set := newWalkSet(t)

	players := make([]*aseanim.Player, 3)
	for i := range players {
		players[i] = aseanim.NewPlayer(set)
		NewPlayerEntity(world, players[i])
	}
	if err := players[0].Play("walk"); err != nil {
		t.Fatal(err)
	}
	if err := players[1].Play("walk"); err != nil {
		t.Fatal(err)
	}

	UpdateSystem(world, 0.25)

	for i, want := range []int{1, 1, 0} {
		if got := players[i].Frame(); got != want {
			t.Errorf("player %d Frame() = %d, want %d", i, got, want)
		}
	}
}

func TestUpdateSystem_EventsCarryEntityIDs(t *testing.T) {
	world := donburi.NewWorld()
	set := newWalkSet(t)

	entries := make([]*donburi.Entry, 2)
	for i := range entries {
		p := aseanim.NewPlayer(set)
		entries[i] = NewPlayerEntity(world, p)
		if err := p.Play("walk"); err != nil {
			t.Fatal(err)
		}
	}

	var got []uint32
	AnimationEventType.Subscribe(world, func(w donburi.World, e aseanim.AnimationEvent) {
		got = append(got, e.EntityID)
	})
	UpdateSystem(world, 0.25)
	AnimationEventType.ProcessEvents(world)

	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if got[0] == got[1] {
		t.Errorf("both events carry EntityID %d", got[0])
	}
	for _, entry := range entries {
		want := uint32(entry.Entity().Id())
		if id := Animation.Get(entry).Player.EntityID; id != want {
			t.Errorf("Player.EntityID = %d, want %d", id, want)
		}
		if got[0] != want && got[1] != want {
			t.Errorf("no event carries EntityID %d, got %v", want, got)
		}
	}
}

func TestUpdateSystem_NilPlayer(t *testing.T) {
	world := donburi.NewWorld()
	world.Create(Animation)
	UpdateSystem(world, 1) // must not panic
}
