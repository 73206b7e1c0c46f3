package postprocess

import "github.com/chewxy/math32"

// FXAA implements a luma-based edge detect with a directional 4-tap
// blur across the detected edge (blending with the neighbors on either
// side of it), per spec.md §4.I step 5.
func FXAA(src *Image) *Image {
	out := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			r, g, b := src.at(x, y)
			lC := luma(r, g, b)
			lN := lumaAt(src, x, y-1)
			lS := lumaAt(src, x, y+1)
			lE := lumaAt(src, x+1, y)
			lW := lumaAt(src, x-1, y)

			lMax := maxf(lC, maxf(maxf(lN, lS), maxf(lE, lW)))
			lMin := minf(lC, minf(minf(lN, lS), minf(lE, lW)))
			contrast := lMax - lMin

			const edgeThreshold = 0.0625
			if contrast < edgeThreshold {
				out.set(x, y, r, g, b)
				continue
			}

			horizontal := math32.Abs(lN+lS-2*lC) >= math32.Abs(lE+lW-2*lC)

			var r1, g1, b1, r2, g2, b2 float32
			if horizontal {
				r1, g1, b1 = src.at(x, y-1)
				r2, g2, b2 = src.at(x, y+1)
			} else {
				r1, g1, b1 = src.at(x-1, y)
				r2, g2, b2 = src.at(x+1, y)
			}
			blendR := (r1 + r2 + 2*r) / 4
			blendG := (g1 + g2 + 2*g) / 4
			blendB := (b1 + b2 + 2*b) / 4
			out.set(x, y, blendR, blendG, blendB)
		}
	}
	return out
}

func lumaAt(im *Image, x, y int) float32 {
	r, g, b := im.at(x, y)
	return luma(r, g, b)
}
