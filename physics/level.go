package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/levels"
)

// BuildLevel fills the space with the level's ground and building tiles plus
// walls along the world edge. It returns the number of shapes added.
func (s *Space) BuildLevel(lvl *levels.Level) int {
	if s == nil || lvl == nil {
		return 0
	}
	n := 0
	for _, bb := range mergeTiles(lvl.Ground, lvl.Width, lvl.Height, lvl.TileSize) {
		s.AddGround(bb)
		n++
	}
	for _, bb := range mergeTiles(lvl.Buildings, lvl.Width, lvl.Height, lvl.TileSize) {
		s.AddBuilding(bb)
		n++
	}
	w, h := lvl.Size()
	s.AddBounds(w, h)
	return n + 4
}

// mergeTiles greedily merges contiguous present tiles into as few boxes as
// possible, extending each run along the row first, then downward.
func mergeTiles(layer []int, width, height int, tileSize float64) []cp.BB {
	if len(layer) != width*height || width <= 0 {
		return nil
	}
	processed := make([]bool, len(layer))
	solid := func(idx int) bool { return !processed[idx] && layer[idx] != 0 }

	var out []cp.BB
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(y*width + x) {
				continue
			}
			w := 1
			for x+w < width && solid(y*width+x+w) {
				w++
			}
			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !solid((y+h)*width + xi) {
						break heightLoop
					}
				}
				h++
			}
			x0 := float64(x) * tileSize
			y0 := float64(y) * tileSize
			out = append(out, cp.BB{L: x0, B: y0, R: x0 + float64(w)*tileSize, T: y0 + float64(h)*tileSize})
			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
	return out
}
