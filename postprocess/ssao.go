package postprocess

import "github.com/chewxy/math32"

// SSAOKernelSize is the hemisphere sample count, per spec.md §4.I
// step 1's "64-sample hemisphere".
const SSAOKernelSize = 64

// ssaoKernel holds precomputed hemisphere sample offsets in tangent
// space, biased toward the origin the way a real SSAO kernel weights
// more samples near the surface.
var ssaoKernel = buildSSAOKernel()

// noiseTile is a 4x4 tile of per-pixel rotation vectors (xy, unit
// circle), tiled across the screen the way a real noise texture is,
// built deterministically instead of sampled so results are
// reproducible across runs.
var noiseTile = buildNoiseTile()

func buildSSAOKernel() [SSAOKernelSize][3]float32 {
	var k [SSAOKernelSize][3]float32
	golden := math32.Pi * (3 - math32.Sqrt(5))
	for i := 0; i < SSAOKernelSize; i++ {
		// hemisphere: z in [0,1], spiral around it.
		z := float32(i) / float32(SSAOKernelSize-1)
		r := math32.Sqrt(1 - z*z)
		theta := golden * float32(i)
		x := math32.Cos(theta) * r
		y := math32.Sin(theta) * r
		scale := float32(i) / float32(SSAOKernelSize)
		scale = 0.1 + 0.9*scale*scale // bias samples toward the origin
		k[i] = [3]float32{x * scale, y * scale, z*scale + 0.05}
	}
	return k
}

func buildNoiseTile() [4][4][2]float32 {
	var n [4][4][2]float32
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			angle := float32((x*4+y)%16) / 16 * 2 * math32.Pi
			n[y][x] = [2]float32{math32.Cos(angle), math32.Sin(angle)}
		}
	}
	return n
}

// ViewNormalFromDepth reconstructs the view-space normal at (x,y) via
// the cross product of depth derivatives along each screen axis, per
// spec.md §4.I step 1.
func ViewNormalFromDepth(depth *DepthBuffer, x, y int, toView func(x, y int, d float32) [3]float32) [3]float32 {
	d := depth.at(x, y)
	pc := toView(x, y, d)
	px := toView(x+1, y, depth.at(x+1, y))
	py := toView(x, y+1, depth.at(x, y+1))
	dx := sub3(px, pc)
	dy := sub3(py, pc)
	n := cross3(dx, dy)
	return normalize3(n)
}

// DepthBuffer is a linear view-space depth buffer, one float32 per
// pixel.
type DepthBuffer struct {
	Width, Height int
	Depth         []float32
}

func (d *DepthBuffer) at(x, y int) float32 {
	x = clampInt(x, 0, d.Width-1)
	y = clampInt(y, 0, d.Height-1)
	return d.Depth[y*d.Width+x]
}

// SSAORaw computes the occlusion factor in [0,1] at each pixel before
// the box blur, per spec.md §4.I step 1's range-check and smooth
// falloff.
func SSAORaw(depth *DepthBuffer, toView func(x, y int, d float32) [3]float32, radius, intensity float32) *Image {
	out := NewImage(depth.Width, depth.Height)
	for y := 0; y < depth.Height; y++ {
		for x := 0; x < depth.Width; x++ {
			origin := toView(x, y, depth.at(x, y))
			normal := ViewNormalFromDepth(depth, x, y, toView)
			rot := noiseTile[y%4][x%4]

			occlusion := float32(0)
			for _, s := range ssaoKernel {
				// rotate the kernel sample around Z by the noise vector.
				sx := s[0]*rot[0] - s[1]*rot[1]
				sy := s[0]*rot[1] + s[1]*rot[0]
				samplePos := [3]float32{
					origin[0] + (sx*normal[2]+s[2]*normal[0])*radius,
					origin[1] + (sy*normal[2]+s[2]*normal[1])*radius,
					origin[2] + s[2]*normal[2]*radius,
				}
				sampleDepth := toView(x, y, depth.at(x, y))[2]
				rangeCheck := smoothFalloff(samplePos[2], sampleDepth, radius)
				if samplePos[2] <= sampleDepth-0.02 {
					occlusion += rangeCheck
				}
			}
			occlusion = 1 - (occlusion/float32(SSAOKernelSize))*intensity
			out.set(x, y, clampf(occlusion, 0, 1), 0, 0)
		}
	}
	return out
}

// smoothFalloff attenuates the occlusion contribution as the compared
// sample drifts outside radius, per spec.md §4.I step 1.
func smoothFalloff(sampleZ, refZ, radius float32) float32 {
	d := math32.Abs(refZ - sampleZ)
	if d >= radius {
		return 0
	}
	t := 1 - d/radius
	return t * t
}

// BoxBlur5 applies the 5x5 box blur spec.md §4.I step 1 calls for,
// smoothing SSAORaw's occlusion channel (stored in .R).
func BoxBlur5(ao *Image) *Image {
	out := NewImage(ao.Width, ao.Height)
	const half = 2
	for y := 0; y < ao.Height; y++ {
		for x := 0; x < ao.Width; x++ {
			sum := float32(0)
			n := 0
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					r, _, _ := ao.at(x+dx, y+dy)
					sum += r
					n++
				}
			}
			out.set(x, y, sum/float32(n), 0, 0)
		}
	}
	return out
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize3(a [3]float32) [3]float32 {
	l := math32.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	if l < 1e-6 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{a[0] / l, a[1] / l, a[2] / l}
}
