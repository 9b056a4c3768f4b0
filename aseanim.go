package aseanim

import "strings"

// Vec2 is a 2D vector used for offsets and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in sprite-sheet pixels. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Size returns the rectangle's width and height as a Vec2.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Width, Y: r.Height}
}

// Direction is the play order declared on an Aseprite frame tag.
type Direction uint8

const (
	Forward         Direction = iota // first frame to last, then restart
	Reverse                          // last frame to first, then restart
	PingPong                         // first to last and back again
	PingPongReverse                  // last to first and back again
)

var directionNames = [...]string{
	Forward:         "forward",
	Reverse:         "reverse",
	PingPong:        "pingpong",
	PingPongReverse: "pingpong_reverse",
}

// String returns the direction name as Aseprite writes it.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// startsForward reports whether playback of this direction begins by
// advancing through the frame list.
func (d Direction) startsForward() bool {
	return d == Forward || d == PingPong
}

// ParseDirection parses a direction name case-insensitively. Both the
// Aseprite spelling ("pingpong_reverse") and the enum spelling
// ("PingPongReverse") are accepted.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "forward":
		return Forward, true
	case "reverse":
		return Reverse, true
	case "pingpong":
		return PingPong, true
	case "pingpong_reverse", "pingpongreverse":
		return PingPongReverse, true
	}
	return Forward, false
}

// debugEnabled turns on warning logs from the importer. The library is
// single-threaded; set it once at startup.
var debugEnabled bool

// SetDebug enables or disables debug logging. When enabled, import warnings
// (skipped tags, defaulted directions) are logged to stderr as they occur.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}
