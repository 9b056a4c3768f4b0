package ecs

import (
	"github.com/phanxgames/aseanim"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimationEventType is the Donburi event type for aseanim playback events.
var AnimationEventType = events.NewEventType[aseanim.AnimationEvent]()

// AnimationData is the component payload: the player driving the entity's
// sprite.
type AnimationData struct {
	Player *aseanim.Player
}

// Animation is the component type for animated entities.
var Animation = donburi.NewComponentType[AnimationData]()

var animationQuery = donburi.NewQuery(filter.Contains(Animation))

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes playback events to
// AnimationEventType in world.
func NewDonburiSink(world donburi.World) aseanim.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitAnimationEvent(event aseanim.AnimationEvent) {
	AnimationEventType.Publish(s.world, event)
}

// NewPlayerEntity creates an entity carrying p and routes p's events into
// world.
func NewPlayerEntity(world donburi.World, p *aseanim.Player) *donburi.Entry {
	entry := world.Entry(world.Create(Animation))
	Attach(world, entry, p)
	return entry
}

// Attach sets p as entry's Animation component, adding the component if
// needed, and routes p's events into world tagged with entry's entity ID.
func Attach(world donburi.World, entry *donburi.Entry, p *aseanim.Player) {
	p.EntityID = uint32(entry.Entity().Id())
	if !entry.HasComponent(Animation) {
		donburi.Add(entry, Animation, &AnimationData{Player: p})
	} else {
		Animation.SetValue(entry, AnimationData{Player: p})
	}
	p.SetEventSink(NewDonburiSink(world))
}

// UpdateSystem advances every player in world by dt seconds.
func UpdateSystem(world donburi.World, dt float64) {
	animationQuery.Each(world, func(entry *donburi.Entry) {
		if d := Animation.Get(entry); d.Player != nil {
			d.Player.Update(dt)
		}
	})
}
