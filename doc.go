// Package aseanim plays sprite-sheet animations exported from [Aseprite],
// where every frame can have its own duration.
//
// It has two halves: an importer that turns Aseprite's JSON export into an
// [AnimationSet], and a [Player] that steps through one of those animations
// as time passes.
//
// # Importing
//
// Export the sprite sheet from Aseprite with JSON data (array or hash
// layout, with frame tags), then:
//
//	res, err := aseanim.Import(jsonData)
//	if err != nil {
//		log.Fatal(err) // schema violation or no usable animations
//	}
//	for _, w := range res.Warnings {
//		log.Println(w) // skipped tags, defaulted directions
//	}
//
// Each frame tag becomes one animation named after the tag (commas removed).
// An export without tags yields a single forward animation named "default".
// Durations are converted from milliseconds to seconds.
//
// Import runs in two phases that can also be used separately: [ParseSheet]
// checks the document against the export schema, and [Sheet.Animations]
// checks tags against the frame list.
//
// # Playback
//
// A Player binds to a set, which it never modifies, so one set can drive any
// number of players:
//
//	p := aseanim.NewPlayer(res.Set)
//	p.Loop = true
//	p.OnAnimationFinished = func() { ... }
//	_ = p.Play("walk")
//
//	// every tick
//	p.Update(dt)
//
// Elapsed time accumulates across updates, so each frame stays up for its
// full duration regardless of the tick rate, and a long stall catches up
// through every frame it missed.
//
// # Drawing
//
// The sprite sheet image is supplied by the host. [Sprite] combines a Player
// with a [Renderer]; [EbitenRenderer] draws onto an [ebiten.Image]:
//
//	sprite := aseanim.NewSprite(p, &aseanim.EbitenRenderer{Sheet: sheet, Target: screen})
//	sprite.Draw()
//
// For ECS integration via [Donburi], see the aseanim/ecs package.
//
// [Aseprite]: https://www.aseprite.org
// [Donburi]: https://github.com/yohamta/donburi
package aseanim
