package aseanim

import (
	"fmt"
	"math"
)

// EventType identifies a kind of playback event.
type EventType uint8

const (
	EventFrameChanged      EventType = iota // fires when playback or SetFrame moves to another frame
	EventAnimationFinished                  // fires once per completed pass, looping or not
	EventFrameDrawn                         // fires once per actual draw of the current frame
)

// AnimationEvent carries playback event data for the ECS bridge.
type AnimationEvent struct {
	Type      EventType
	EntityID  uint32
	Animation string
	Frame     int
}

// EventSink is the interface for optional ECS integration. When set on a
// Player, frame-changed and animation-finished events are forwarded to it.
type EventSink interface {
	EmitAnimationEvent(event AnimationEvent)
}

// Player plays the animations of an AnimationSet. It owns only its own
// playback state; the set is never modified and may be shared between any
// number of players.
//
// Player is driven by Update, called once per host frame with the elapsed
// time. Elapsed time accumulates across calls so every frame is shown for its
// full duration regardless of the host frame rate, and a long stall catches
// up through all the frames it skipped.
type Player struct {
	set   *AnimationSet
	name  string
	anim  *Animation
	frame int

	elapsed float64 // seconds since the current frame was entered
	playing bool
	forward bool // runtime travel direction; flips on PingPong boundaries

	speedScale float64
	speedTween *speedTween

	// Loop restarts the animation when a pass ends. AnimationFinished still
	// fires at the end of every pass.
	Loop bool

	// Drawing properties, consumed by Sprite.
	Centered bool
	FlipH    bool
	FlipV    bool
	Offset   Vec2

	// EntityID is copied into every AnimationEvent sent to the EventSink.
	EntityID uint32

	// Per-player callbacks (nil by default; zero cost when unused).
	OnFrameChanged      func()
	OnAnimationFinished func()
	// OnFrameDrawn is called directly from Sprite.Draw, without going
	// through the EventSink, for callers that need exact draw timing.
	OnFrameDrawn func()

	sink EventSink
}

// NewPlayer creates a stopped, non-looping player bound to set. If the set
// has animations, the first one is selected.
func NewPlayer(set *AnimationSet) *Player {
	p := &Player{
		speedScale: 1,
		forward:    true,
		Centered:   true,
	}
	p.SetAnimationSet(set)
	return p
}

// SetAnimationSet binds the player to a different set. The current animation
// is kept if the new set has one of the same name; otherwise the set's first
// animation is selected. Binding a nil or empty set clears the selection.
func (p *Player) SetAnimationSet(set *AnimationSet) {
	p.set = set
	if anim, ok := set.Get(p.name); ok {
		p.anim = anim
		if p.frame >= len(anim.Frames) {
			p.frame = anim.StartFrame()
			p.elapsed = 0
		}
		return
	}
	names := set.Names()
	if len(names) == 0 {
		p.name = ""
		p.anim = nil
		p.frame = 0
		p.elapsed = 0
		return
	}
	_ = p.SelectAnimation(names[0])
}

// AnimationSet returns the bound set.
func (p *Player) AnimationSet() *AnimationSet {
	return p.set
}

// SetEventSink sets the optional ECS bridge.
func (p *Player) SetEventSink(sink EventSink) {
	p.sink = sink
}

// SelectAnimation switches to the named animation and rewinds it to its start
// frame (the last frame for Reverse and PingPongReverse). The playing state
// is unchanged. Returns ErrUnknownAnimation, leaving the player untouched, if
// the bound set has no such animation.
func (p *Player) SelectAnimation(name string) error {
	anim, ok := p.set.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	p.name = name
	p.anim = anim
	p.frame = anim.StartFrame()
	p.elapsed = 0
	p.forward = anim.Direction.startsForward()
	return nil
}

// Play starts playback. With an empty name the current animation resumes
// where it stopped; otherwise the named animation is selected (rewinding it)
// and played. On error the player is left unchanged.
func (p *Player) Play(name string) error {
	if name != "" {
		if err := p.SelectAnimation(name); err != nil {
			return err
		}
	}
	if p.anim == nil {
		return ErrNoAnimation
	}
	p.playing = true
	return nil
}

// PlayIfNotCurrent plays the named animation, rewinding only if it is not
// already the current one. Convenient to call every frame from game logic.
func (p *Player) PlayIfNotCurrent(name string) error {
	if name == p.name && p.anim != nil {
		p.playing = true
		return nil
	}
	return p.Play(name)
}

// Stop pauses playback. The frame and elapsed time are kept so Play("")
// resumes exactly where playback stopped.
func (p *Player) Stop() {
	p.playing = false
}

// SetFrame jumps to the given frame of the current animation and restarts its
// timer. FrameChanged fires only if the index actually changed, which is also
// what changed reports.
func (p *Player) SetFrame(index int) (changed bool, err error) {
	if p.anim == nil {
		return false, ErrNoAnimation
	}
	if index < 0 || index >= len(p.anim.Frames) {
		return false, fmt.Errorf("%w: %d (animation %q has %d frames)",
			ErrFrameOutOfRange, index, p.name, len(p.anim.Frames))
	}
	p.elapsed = 0
	if p.frame == index {
		return false, nil
	}
	p.frame = index
	p.emit(EventFrameChanged)
	return true, nil
}

// SpeedScale returns the playback speed multiplier.
func (p *Player) SpeedScale() float64 {
	return p.speedScale
}

// SetSpeedScale sets the playback speed multiplier. Negative values clamp to
// zero. Cancels any speed tween in progress.
func (p *Player) SetSpeedScale(scale float64) {
	p.speedTween = nil
	p.setSpeedScale(scale)
}

func (p *Player) setSpeedScale(scale float64) {
	if scale > 0 && !math.IsInf(scale, 1) {
		p.speedScale = scale
	} else {
		p.speedScale = 0
	}
}

// Update advances playback by dt seconds (scaled by the speed scale). It never
// fails: with no animation, an empty animation or playback stopped, it does
// nothing.
func (p *Player) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	if p.speedTween != nil {
		p.updateSpeedTween(dt)
	}
	if !p.playing || p.anim == nil || len(p.anim.Frames) == 0 {
		return
	}
	if p.frame < 0 || p.frame >= len(p.anim.Frames) {
		// The animation's frames were replaced under us.
		p.frame = 0
	}

	p.elapsed += dt * p.speedScale
	if math.IsNaN(p.elapsed) || math.IsInf(p.elapsed, 0) {
		// Overflowed; subtracting durations would never bring it back down.
		p.elapsed = 0
	}

	// Every frame of a looping cycle is visited within 2*len steps. Going that
	// long without paying for any time means all frames last 0s and the loop
	// would never run out of elapsed time.
	idle := 0
	for p.playing {
		// Callbacks may switch animations mid-loop, so re-read each step.
		anim := p.anim
		if anim == nil || p.frame < 0 || p.frame >= len(anim.Frames) {
			return
		}
		d := anim.Frames[p.frame].Duration
		if p.elapsed < d {
			return
		}
		if d == 0 {
			if idle++; idle > 2*len(anim.Frames) {
				return
			}
		} else {
			idle = 0
		}
		p.elapsed -= d

		last := len(anim.Frames) - 1
		if p.forward && p.frame < last {
			p.frame++
			p.emit(EventFrameChanged)
			continue
		}
		if !p.forward && p.frame > 0 {
			p.frame--
			p.emit(EventFrameChanged)
			continue
		}

		p.finishPass(anim)
	}
}

// finishPass handles reaching the end of the animation in the current travel
// direction.
func (p *Player) finishPass(anim *Animation) {
	if !p.Loop {
		p.playing = false
		p.emit(EventAnimationFinished)
		return
	}

	last := len(anim.Frames) - 1
	switch anim.Direction {
	case Forward:
		p.frame = 0
	case Reverse:
		p.frame = max(0, last)
	case PingPong, PingPongReverse:
		// The end frame's duration was just paid; continue from its neighbor
		// so it isn't shown twice in a row.
		p.forward = !p.forward
		if p.forward {
			p.frame = min(1, last)
		} else {
			p.frame = max(0, last-1)
		}
	}
	p.emit(EventAnimationFinished)
}

func (p *Player) emit(t EventType) {
	switch t {
	case EventFrameChanged:
		if p.OnFrameChanged != nil {
			p.OnFrameChanged()
		}
	case EventAnimationFinished:
		if p.OnAnimationFinished != nil {
			p.OnAnimationFinished()
		}
	}
	if p.sink != nil {
		p.sink.EmitAnimationEvent(AnimationEvent{
			Type:      t,
			EntityID:  p.EntityID,
			Animation: p.name,
			Frame:     p.frame,
		})
	}
}

// frameDrawn notifies OnFrameDrawn. It skips the EventSink.
func (p *Player) frameDrawn() {
	if p.OnFrameDrawn != nil {
		p.OnFrameDrawn()
	}
}

// --- Accessors ---

// Animation returns the name of the current animation, or "" if none.
func (p *Player) Animation() string {
	return p.name
}

// CurrentAnimation returns the current animation, or nil if none.
func (p *Player) CurrentAnimation() *Animation {
	return p.anim
}

// Frame returns the index of the displayed frame.
func (p *Player) Frame() int {
	return p.frame
}

// TotalFrames returns the number of frames in the current animation, or 0.
func (p *Player) TotalFrames() int {
	if p.anim == nil {
		return 0
	}
	return len(p.anim.Frames)
}

// IsPlaying reports whether playback is running.
func (p *Player) IsPlaying() bool {
	return p.playing
}

// Elapsed returns the seconds spent on the current frame so far.
func (p *Player) Elapsed() float64 {
	return p.elapsed
}

// Forward reports whether playback is currently travelling toward the last
// frame. Only changes over time for PingPong animations.
func (p *Player) Forward() bool {
	return p.forward
}

// CurrentFrame returns the frame to draw. If the stored index no longer fits
// the animation (its frames were replaced), the first frame is returned so
// the sprite doesn't vanish. ok is false when there is nothing to draw.
func (p *Player) CurrentFrame() (f Frame, ok bool) {
	if p.anim == nil || len(p.anim.Frames) == 0 {
		return Frame{}, false
	}
	i := p.frame
	if i < 0 || i >= len(p.anim.Frames) {
		i = 0
	}
	return p.anim.Frames[i], true
}
