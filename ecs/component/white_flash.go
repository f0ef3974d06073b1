package component

// WhiteFlash makes a damaged entity render white for a few ticks. The core
// only counts it down; the renderer reads On.
type WhiteFlash struct {
	Frames int
	On     bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
