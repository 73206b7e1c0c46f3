// Package reflection implements component G: the mirrored-viewpoint
// controller. Grounded on the teacher's bsp surface-flag idiom
// (SurfWarp/SurfTrans33/SurfTrans66 classification, carried over from
// bsp/types.go) for detecting reflector candidates, and on
// glh/matrix.go's row-major matrix convention for why this package
// reaches for mathvec.Frustum (a Mesa-equivalent frustum, per
// spec.md §4.G) instead of the teacher's own fixed-function helpers,
// which predate mirrored/skewed view support.
package reflection

import (
	"sort"

	"github.com/chewxy/math32"

	"goquake2/bsp"
	"goquake2/mathvec"
)

// MaxReflectors caps the number of distinct mirror planes rendered
// per frame, per spec.md §4.G step 1.
const MaxReflectors = 2

// DefaultResolution is the offscreen reflection image's square size.
const DefaultResolution = 512

// Reflector is one detected mirror plane awaiting its offscreen pass.
type Reflector struct {
	Z          float32
	Resolution int32
}

// FindReflectors walks every surface in model, collecting the Z value
// of each one flagged translucent-and-turbulent-and-horizontal
// (SurfWarp set, either translucency flag set, and a near-vertical
// plane normal), dedupes by Z, and caps the result at MaxReflectors.
// Grounded on R_RecursiveFindRefl's description in spec.md §4.G;
// rebuilt from scratch since the teacher's cgo-bound warp.go doesn't
// carry this traversal in Go.
func FindReflectors(model *bsp.Model) []Reflector {
	seen := map[int32]bool{}
	var zs []float32
	for i := range model.Surfaces {
		s := &model.Surfaces[i]
		if !isReflectorCandidate(s) {
			continue
		}
		key := int32(s.Mins.Z * 8) // 1/8 unit quantization for dedupe
		if seen[key] {
			continue
		}
		seen[key] = true
		zs = append(zs, s.Mins.Z)
	}
	sort.Slice(zs, func(i, j int) bool { return zs[i] < zs[j] })
	if len(zs) > MaxReflectors {
		zs = zs[:MaxReflectors]
	}
	out := make([]Reflector, len(zs))
	for i, z := range zs {
		out[i] = Reflector{Z: z, Resolution: DefaultResolution}
	}
	return out
}

func isReflectorCandidate(s *bsp.Surface) bool {
	if s.Flags&bsp.SurfWarp == 0 {
		return false
	}
	if s.Flags&(bsp.SurfTrans33|bsp.SurfTrans66) == 0 {
		return false
	}
	if s.Plane == nil {
		return false
	}
	// horizontal: the plane's normal is dominantly vertical.
	const horizontalThreshold = 0.9
	return s.Plane.Normal.Z > horizontalThreshold || s.Plane.Normal.Z < -horizontalThreshold
}

// MirroredView is the reflected camera per spec.md §4.G step 2:
// `origin.z = 2Z - origin.z`, pitch negated.
type MirroredView struct {
	Origin mathvec.Vec3
	Pitch, Yaw, Roll float32
}

func Mirror(origin mathvec.Vec3, pitch, yaw, roll, z float32) MirroredView {
	return MirroredView{
		Origin: mathvec.Vec3{X: origin.X, Y: origin.Y, Z: 2*z - origin.Z},
		Pitch:  -pitch,
		Yaw:    yaw,
		Roll:   roll,
	}
}

// FrustumMatrix builds the mirrored view's projection via the
// Mesa-equivalent frustum (mathvec.Frustum) rather than a standard
// perspective, since mirrored/skewed viewers hit sign-degenerate
// cases in the usual formula, per spec.md §4.G's numerical-subtlety
// note.
func FrustumMatrix(fovy, aspect, near, far float32) mathvec.Mat4 {
	halfRad := fovy / 2 / 180 * math32.Pi
	top := near * math32.Tan(halfRad)
	bottom := -top
	right := top * aspect
	left := -right
	return mathvec.Frustum(left, right, bottom, top, near, far)
}
