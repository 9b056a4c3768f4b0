package aseanim

import (
	"errors"
	"fmt"
)

// Import errors.
var (
	// ErrSchemaViolation is returned when the JSON document is malformed or a
	// required field is missing. Fatal to the whole import.
	ErrSchemaViolation = errors.New("aseanim: schema violation")

	// ErrInvalidTagRange marks a frame tag whose from/to range is out of
	// bounds or inverted. The tag is skipped.
	ErrInvalidTagRange = errors.New("aseanim: invalid tag range")

	// ErrUnrecognizedDirection marks a frame tag whose direction could not be
	// parsed. The tag plays forward.
	ErrUnrecognizedDirection = errors.New("aseanim: unrecognized direction")

	// ErrNoAnimations is returned when no tag produced a valid animation.
	ErrNoAnimations = errors.New("aseanim: no animations")
)

// Animation set errors.
var (
	ErrDuplicateAnimation = errors.New("aseanim: duplicate animation name")
	ErrEmptyAnimationName = errors.New("aseanim: empty animation name")
)

// Playback errors.
var (
	ErrUnknownAnimation = errors.New("aseanim: unknown animation")
	ErrFrameOutOfRange  = errors.New("aseanim: frame index out of range")
	ErrNoAnimation      = errors.New("aseanim: no animation selected")
)

// Sprite setup errors, reported by Sprite.Validate.
var (
	ErrNoRenderer    = errors.New("aseanim: no renderer")
	ErrNoSpriteSheet = errors.New("aseanim: no sprite sheet")
	ErrNoPlayer      = errors.New("aseanim: no player")
)

// SchemaError describes where in the document a schema violation occurred.
// It matches ErrSchemaViolation with errors.Is.
type SchemaError struct {
	Path   string // dotted path to the offending field, e.g. "frames.2.frame.w"
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("aseanim: schema violation at %s: %s", e.Path, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaViolation
}

func schemaErrorf(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// TagError is a non-fatal problem with a single frame tag. Err is one of the
// per-tag sentinels (ErrInvalidTagRange, ErrUnrecognizedDirection,
// ErrDuplicateAnimation, ErrEmptyAnimationName).
type TagError struct {
	Tag    string
	Err    error
	Detail string
}

func (e *TagError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v (tag %q)", e.Err, e.Tag)
	}
	return fmt.Sprintf("%v (tag %q): %s", e.Err, e.Tag, e.Detail)
}

func (e *TagError) Unwrap() error {
	return e.Err
}
