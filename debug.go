package aseanim

import "fmt"

const playerFormat = `animation: %q
frame: %d/%d
elapsed: %.3fs
playing: %v loop: %v forward: %v
speed: %.2f`

// String returns a multi-line summary of the playback state for debug
// overlays.
func (p *Player) String() string {
	return fmt.Sprintf(playerFormat,
		p.name,
		p.frame, p.TotalFrames(),
		p.elapsed,
		p.playing, p.Loop, p.forward,
		p.speedScale)
}
