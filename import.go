package aseanim

import (
	"fmt"
	"io/fs"
	"log"
	"strings"
)

// defaultTagName names the implicit animation synthesized when an export has
// no frame tags.
const defaultTagName = "default"

// ImportResult is the output of a successful import.
type ImportResult struct {
	Set *AnimationSet

	// Warnings holds the non-fatal per-tag problems (each a *TagError).
	// Tags with a range or name problem were skipped; tags with an
	// unrecognized direction were imported as Forward.
	Warnings []error

	Meta SheetMeta
}

// Import parses an Aseprite JSON export and converts it to an AnimationSet.
// The returned error is fatal: ErrSchemaViolation (as a *SchemaError) or
// ErrNoAnimations. Per-tag problems are returned as warnings.
func Import(data []byte) (*ImportResult, error) {
	sheet, err := ParseSheet(data)
	if err != nil {
		return nil, err
	}
	set, warnings, err := sheet.Animations()
	if err != nil {
		return nil, err
	}
	return &ImportResult{Set: set, Warnings: warnings, Meta: sheet.Meta}, nil
}

// ImportFS reads the export at path from fsys and imports it.
func ImportFS(fsys fs.FS, path string) (*ImportResult, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("aseanim: read %s: %w", path, err)
	}
	res, err := Import(data)
	if err != nil {
		return nil, fmt.Errorf("aseanim: import %s: %w", path, err)
	}
	return res, nil
}

// Animations converts the sheet into an AnimationSet, one animation per frame
// tag. A sheet without tags yields a single forward animation named "default"
// spanning every frame. Tags with an invalid range, an empty name or a
// duplicate name are skipped and reported in warnings; if nothing survives,
// err is ErrNoAnimations.
func (s *Sheet) Animations() (set *AnimationSet, warnings []error, err error) {
	set = NewAnimationSet()

	tags := s.Meta.FrameTags
	if len(tags) == 0 && len(s.Frames) > 0 {
		tags = []SheetTag{{
			Name:      defaultTagName,
			From:      0,
			To:        len(s.Frames) - 1,
			Direction: Forward.String(),
		}}
	}

	warn := func(w *TagError) {
		warnings = append(warnings, w)
		if debugEnabled {
			log.Printf("aseanim: import warning: %v", w)
		}
	}

	for _, tag := range tags {
		last := len(s.Frames) - 1
		if tag.From < 0 || tag.From > last || tag.To < 0 || tag.To > last || tag.From > tag.To {
			warn(&TagError{
				Tag:    tag.Name,
				Err:    ErrInvalidTagRange,
				Detail: fmt.Sprintf("frames %d -> %d, sheet has %d frames", tag.From, tag.To, len(s.Frames)),
			})
			continue
		}

		dir, ok := ParseDirection(tag.Direction)
		if !ok {
			warn(&TagError{
				Tag:    tag.Name,
				Err:    ErrUnrecognizedDirection,
				Detail: fmt.Sprintf("%q, defaulting to forward", tag.Direction),
			})
		}

		anim := &Animation{
			Frames:    make([]Frame, 0, tag.To-tag.From+1),
			Direction: dir,
		}
		for i := tag.From; i <= tag.To; i++ {
			anim.Frames = append(anim.Frames, s.Frames[i].toFrame())
		}
		// Frames in one tag share the untrimmed size of the first.
		first := s.Frames[tag.From].SourceSize
		anim.FrameSize = Vec2{X: float64(first.W), Y: float64(first.H)}

		name := sanitizeName(tag.Name)
		if err := set.Add(name, anim); err != nil {
			warn(&TagError{Tag: tag.Name, Err: err})
		}
	}

	if set.Len() == 0 {
		return nil, warnings, ErrNoAnimations
	}
	return set, warnings, nil
}

func (f SheetFrame) toFrame() Frame {
	return Frame{
		Region: Rect{
			X:      float64(f.Frame.X),
			Y:      float64(f.Frame.Y),
			Width:  float64(f.Frame.W),
			Height: float64(f.Frame.H),
		},
		Offset:   Vec2{X: float64(f.SpriteSourceSize.X), Y: float64(f.SpriteSourceSize.Y)},
		Duration: float64(f.Duration) / 1000,
	}
}

// sanitizeName strips commas, which hosts use to separate animation names in
// serialized lists.
func sanitizeName(name string) string {
	return strings.ReplaceAll(name, ",", "")
}
