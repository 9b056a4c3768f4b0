package aseanim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// speedTween eases a Player's speed scale toward a target value.
type speedTween struct {
	tween *gween.Tween
	Done  bool
}

// TweenSpeed ramps the speed scale from its current value to `to` over
// duration seconds of wall time using the easing function, e.g. for a
// slow-motion effect. The tween advances in Update even while playback is
// stopped. Calling SetSpeedScale cancels it.
func (p *Player) TweenSpeed(to, duration float64, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	p.speedTween = &speedTween{
		tween: gween.New(float32(p.speedScale), float32(to), float32(duration), fn),
	}
}

// SpeedTweening reports whether a speed tween is in progress.
func (p *Player) SpeedTweening() bool {
	return p.speedTween != nil
}

func (p *Player) updateSpeedTween(dt float64) {
	t := p.speedTween
	val, finished := t.tween.Update(float32(dt))
	p.setSpeedScale(float64(val))
	if finished {
		t.Done = true
		p.speedTween = nil
	}
}
