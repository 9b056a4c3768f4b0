package aseanim

// Frame is one visible frame of an animation: the region of the sprite sheet
// to draw, where to draw it relative to the untrimmed frame, and for how long.
// Value type, never mutated after import.
type Frame struct {
	Region   Rect    // source rectangle in the sprite sheet
	Offset   Vec2    // trim offset inside the untrimmed frame (spriteSourceSize.x/y)
	Duration float64 // seconds; 0 means the frame is skipped as fast as ticks allow
}

// Animation is an ordered list of frames plus the direction they play in.
type Animation struct {
	Frames []Frame

	// FrameSize is the untrimmed size of the frames, used to center and flip.
	FrameSize Vec2

	Direction Direction
}

// Duration returns the total length of one pass through the animation in
// seconds.
func (a *Animation) Duration() float64 {
	var total float64
	for i := range a.Frames {
		total += a.Frames[i].Duration
	}
	return total
}

// StartFrame returns the frame a fresh playback of this animation begins on:
// the first frame for Forward and PingPong, the last for Reverse and
// PingPongReverse.
func (a *Animation) StartFrame() int {
	if a.Direction.startsForward() || len(a.Frames) == 0 {
		return 0
	}
	return len(a.Frames) - 1
}

// AnimationSet maps animation names to animations. It is built once by the
// importer and is read-only afterwards, so any number of Players may share it.
type AnimationSet struct {
	animations map[string]*Animation
	names      []string // insertion order
}

// NewAnimationSet creates an empty set.
func NewAnimationSet() *AnimationSet {
	return &AnimationSet{animations: make(map[string]*Animation)}
}

// Add inserts a named animation. Names must be non-empty and unique.
func (s *AnimationSet) Add(name string, anim *Animation) error {
	if name == "" {
		return ErrEmptyAnimationName
	}
	if _, ok := s.animations[name]; ok {
		return ErrDuplicateAnimation
	}
	s.animations[name] = anim
	s.names = append(s.names, name)
	return nil
}

// Has reports whether the set contains an animation with the given name.
func (s *AnimationSet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.animations[name]
	return ok
}

// Get returns the named animation, or nil and false if it doesn't exist.
func (s *AnimationSet) Get(name string) (*Animation, bool) {
	if s == nil {
		return nil, false
	}
	a, ok := s.animations[name]
	return a, ok
}

// Names returns the animation names in the order they were added.
// The returned slice MUST NOT be mutated.
func (s *AnimationSet) Names() []string {
	if s == nil {
		return nil
	}
	return s.names
}

// Len returns the number of animations in the set.
func (s *AnimationSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
