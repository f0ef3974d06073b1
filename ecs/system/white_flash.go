package system

import (
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
)

// WhiteFlashSystem blinks damaged entities and drops the flash when it runs
// out.
type WhiteFlashSystem struct{}

func NewWhiteFlashSystem() *WhiteFlashSystem { return &WhiteFlashSystem{} }

func (s *WhiteFlashSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil {
		return
	}
	w := ctx.World
	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, wf *component.WhiteFlash) {
		wf.Frames--
		wf.On = !wf.On
		if wf.Frames <= 0 {
			ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
		}
	})
}
