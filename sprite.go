package aseanim

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawRect is a destination rectangle in the sprite's local space. It always
// covers X..X+|Width| and Y..Y+|Height|; a negative Width mirrors the region
// horizontally inside that area and a negative Height mirrors it vertically.
type DrawRect struct {
	X, Y, Width, Height float64
}

// Renderer draws a region of the bound sprite sheet into a destination
// rectangle. Hosts implement it for their render target; EbitenRenderer is
// the Ebitengine implementation.
type Renderer interface {
	DrawRegion(region Rect, dst DrawRect)
}

// DrawParams are the per-sprite drawing properties that affect where a frame
// lands.
type DrawParams struct {
	Centered     bool // center on the animation's untrimmed frame size
	FlipH, FlipV bool
	Offset       Vec2 // extra offset applied after centering
}

// DestinationRect computes where a frame of anim is drawn. Trim offsets are
// mirrored inside the untrimmed frame when flipping, so a flipped sprite
// stays in place.
func DestinationRect(anim *Animation, f Frame, params DrawParams) DrawRect {
	size := f.Region.Size()
	x, y := f.Offset.X, f.Offset.Y
	w, h := size.X, size.Y
	if params.FlipH {
		x = (anim.FrameSize.X - size.X) - f.Offset.X
		w = -w
	}
	if params.FlipV {
		y = (anim.FrameSize.Y - size.Y) - f.Offset.Y
		h = -h
	}
	if params.Centered {
		x -= anim.FrameSize.X / 2
		y -= anim.FrameSize.Y / 2
	}
	return DrawRect{
		X:      x + params.Offset.X,
		Y:      y + params.Offset.Y,
		Width:  w,
		Height: h,
	}
}

// Sprite pairs a Player with the Renderer that draws its frames.
type Sprite struct {
	Player   *Player
	Renderer Renderer
}

// NewSprite creates a sprite drawing player's frames with r.
func NewSprite(player *Player, r Renderer) *Sprite {
	return &Sprite{Player: player, Renderer: r}
}

// Update advances the player by dt seconds.
func (s *Sprite) Update(dt float64) {
	s.Player.Update(dt)
}

// Draw renders the current frame. Nothing is drawn, and OnFrameDrawn does not
// fire, when the player has no frame to show. Returns whether a frame was
// drawn.
func (s *Sprite) Draw() bool {
	p := s.Player
	f, ok := p.CurrentFrame()
	if !ok || s.Renderer == nil {
		return false
	}
	dst := DestinationRect(p.CurrentAnimation(), f, DrawParams{
		Centered: p.Centered,
		FlipH:    p.FlipH,
		FlipV:    p.FlipV,
		Offset:   p.Offset,
	})
	s.Renderer.DrawRegion(f.Region, dst)
	p.frameDrawn()
	return true
}

// Validate reports setup mistakes that make Draw silently draw nothing: a
// missing renderer or sprite sheet, a player without animations, and a
// selected animation the player's set does not contain. All problems found
// are joined into the returned error; it is nil when the sprite can draw.
func (s *Sprite) Validate() error {
	var errs []error
	switch r := s.Renderer.(type) {
	case nil:
		errs = append(errs, ErrNoRenderer)
	case *EbitenRenderer:
		if r == nil || r.Sheet == nil {
			errs = append(errs, ErrNoSpriteSheet)
		}
	}

	p := s.Player
	switch {
	case p == nil:
		errs = append(errs, ErrNoPlayer)
	case p.AnimationSet().Len() == 0:
		errs = append(errs, ErrNoAnimations)
	case p.CurrentAnimation() == nil:
		errs = append(errs, ErrNoAnimation)
	default:
		if anim, ok := p.AnimationSet().Get(p.Animation()); !ok || anim != p.CurrentAnimation() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAnimation, p.Animation()))
		}
	}
	return errors.Join(errs...)
}

// EbitenRenderer draws regions of Sheet onto Target. GeoM is applied after
// the local destination transform, so it places the sprite in the world
// (position, scale, rotation, camera).
type EbitenRenderer struct {
	Sheet  *ebiten.Image
	Target *ebiten.Image
	GeoM   ebiten.GeoM

	// Options is reused across draws; set ColorScale or Blend here.
	Options ebiten.DrawImageOptions
}

// DrawRegion implements Renderer.
func (r *EbitenRenderer) DrawRegion(region Rect, dst DrawRect) {
	if r.Sheet == nil || r.Target == nil || region.Width <= 0 || region.Height <= 0 {
		return
	}
	sub := r.Sheet.SubImage(regionBounds(region)).(*ebiten.Image)

	op := &r.Options
	op.GeoM = destinationGeoM(region, dst)
	op.GeoM.Concat(r.GeoM)
	r.Target.DrawImage(sub, op)
}

func regionBounds(region Rect) image.Rectangle {
	x, y := int(region.X), int(region.Y)
	return image.Rect(x, y, x+int(region.Width), y+int(region.Height))
}

// destinationGeoM maps the region's pixels onto dst, mirroring for negative
// destination sizes.
func destinationGeoM(region Rect, dst DrawRect) ebiten.GeoM {
	tx, ty := dst.X, dst.Y
	if dst.Width < 0 {
		tx -= dst.Width
	}
	if dst.Height < 0 {
		ty -= dst.Height
	}
	var m ebiten.GeoM
	m.Scale(dst.Width/region.Width, dst.Height/region.Height)
	m.Translate(tx, ty)
	return m
}
