package postprocess

import (
	"github.com/chewxy/math32"

	"goquake2/cvars"
)

// HistoryWeight is the confidence-weighted mix toward history spec.md
// §4.I step 4 calls "history weight ~0.9".
const HistoryWeight = 0.9

// MotionVector is a per-pixel screen-space displacement in pixels
// from the current frame back to where this surface point was last
// frame, the reprojection offset a real renderer derives from
// current/previous clip-space positions (render.UniformData's
// View/PrevView pair).
type MotionVector struct {
	DX, DY float32
}

// History holds the previous frame's resolved color and the depth it
// was resolved at, for disocclusion testing.
type History struct {
	Color *Image
	Depth *DepthBuffer
}

// rgbToYCoCg / ycocgToRGB implement the reversible color transform
// FSR2's neighborhood clamp operates in, since luma-separated clamping
// rejects ghosting better than clamping RGB directly.
func rgbToYCoCg(r, g, b float32) (y, co, cg float32) {
	y = 0.25*r + 0.5*g + 0.25*b
	co = 0.5*r - 0.5*b
	cg = -0.25*r + 0.5*g - 0.25*b
	return
}

func ycocgToRGB(y, co, cg float32) (r, g, b float32) {
	r = y + co - cg
	g = y + cg
	b = y - co - cg
	return
}

// TemporalAccumulate reprojects history via motion, clamps it to the
// current frame's 3x3 neighborhood AABB in YCoCg, and confidence-mixes
// it with the current resolve, rejecting on depth disocclusion and
// off-screen history UV, per spec.md §4.I step 4.
func TemporalAccumulate(current *Image, currentDepth *DepthBuffer, motion func(x, y int) MotionVector, hist *History) *Image {
	out := NewImage(current.Width, current.Height)
	for y := 0; y < current.Height; y++ {
		for x := 0; x < current.Width; x++ {
			cr, cg2, cb := current.at(x, y)

			mv := motion(x, y)
			hx := float32(x) - mv.DX
			hy := float32(y) - mv.DY

			if hx < 0 || hy < 0 || hx >= float32(current.Width) || hy >= float32(current.Height) ||
				hist == nil || hist.Color == nil {
				out.set(x, y, cr, cg2, cb)
				continue
			}

			hr, hg, hb := bilinearSample(hist.Color, hx, hy)

			curDepth := currentDepth.at(x, y)
			histDepth := hist.Depth.at(int(hx), int(hy))
			if disoccluded(curDepth, histDepth) {
				out.set(x, y, cr, cg2, cb)
				continue
			}

			minY, minCo, minCg, maxY, maxCo, maxCg := neighborhoodAABBYCoCg(current, x, y)
			hy2, hco, hcg := rgbToYCoCg(hr, hg, hb)
			hy2 = clampf(hy2, minY, maxY)
			hco = clampf(hco, minCo, maxCo)
			hcg = clampf(hcg, minCg, maxCg)
			hr2, hg2, hb2 := ycocgToRGB(hy2, hco, hcg)

			confidence := float32(HistoryWeight)
			rr := cr*(1-confidence) + hr2*confidence
			gg := cg2*(1-confidence) + hg2*confidence
			bb := cb*(1-confidence) + hb2*confidence
			out.set(x, y, rr, gg, bb)
		}
	}
	return out
}

func bilinearSample(im *Image, fx, fy float32) (float32, float32, float32) {
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)
	r00, g00, b00 := im.at(x0, y0)
	r10, g10, b10 := im.at(x0+1, y0)
	r01, g01, b01 := im.at(x0, y0+1)
	r11, g11, b11 := im.at(x0+1, y0+1)
	r := lerp2(lerp2(r00, r10, tx), lerp2(r01, r11, tx), ty)
	g := lerp2(lerp2(g00, g10, tx), lerp2(g01, g11, tx), ty)
	b := lerp2(lerp2(b00, b10, tx), lerp2(b01, b11, tx), ty)
	return r, g, b
}

func lerp2(a, b, t float32) float32 { return a + (b-a)*t }

// neighborhoodAABBYCoCg computes the raw 3x3 clamp box, then widens
// (or narrows) it around its center by r_fsr_colorbox_scale: a larger
// box lets more of the reprojected history through (less clamping,
// more ghosting risk); a smaller one clamps harder (less ghosting,
// more flicker). Default 1.25 per spec.md's open-question decision.
func neighborhoodAABBYCoCg(im *Image, cx, cy int) (minY, minCo, minCg, maxY, maxCo, maxCg float32) {
	first := true
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			r, g, b := im.at(cx+dx, cy+dy)
			y, co, cg := rgbToYCoCg(r, g, b)
			if first {
				minY, maxY = y, y
				minCo, maxCo = co, co
				minCg, maxCg = cg, cg
				first = false
				continue
			}
			minY, maxY = minf(minY, y), maxf(maxY, y)
			minCo, maxCo = minf(minCo, co), maxf(maxCo, co)
			minCg, maxCg = minf(minCg, cg), maxf(maxCg, cg)
		}
	}
	scale := cvars.RFSRColorBoxScale.Value()
	if scale <= 0 {
		scale = 1
	}
	minY, maxY = scaleAroundCenter(minY, maxY, scale)
	minCo, maxCo = scaleAroundCenter(minCo, maxCo, scale)
	minCg, maxCg = scaleAroundCenter(minCg, maxCg, scale)
	return
}

func scaleAroundCenter(lo, hi, scale float32) (float32, float32) {
	center := (lo + hi) / 2
	half := (hi - lo) / 2 * scale
	return center - half, center + half
}

// disoccluded rejects history when the reprojected depth disagrees
// with the current depth by more than a relative tolerance, per
// spec.md §4.I step 4's "rejecting on depth disocclusion".
func disoccluded(curDepth, histDepth float32) bool {
	const tolerance = 0.02
	denom := maxf(curDepth, 1e-4)
	return math32.Abs(curDepth-histDepth)/denom > tolerance
}
