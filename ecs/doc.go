// Package ecs provides ECS adapters for aseanim.
//
// [Animation] is a Donburi component holding an [aseanim.Player];
// [UpdateSystem] advances every player in a world once per tick. Playback
// events (frame changed, animation finished) are published to
// [AnimationEventType] and can be consumed with events.Subscribe and
// ProcessEvents. Each event's EntityID is the Id of the entity the player is
// attached to.
//
// Usage:
//
//	entry := ecs.NewPlayerEntity(world, aseanim.NewPlayer(set))
//	_ = ecs.Animation.Get(entry).Player.Play("walk")
//
//	// every tick
//	ecs.UpdateSystem(world, dt)
//	ecs.AnimationEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
