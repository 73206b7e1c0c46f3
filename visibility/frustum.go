// Package visibility implements component E: PVS/PHS leaf marking and
// the frustum-culled front-to-back world walk. Grounded on the
// teacher's quakelib/renderer.go (fPlane, CullBox, TurnVector,
// SetFrustum carried over near-verbatim) and generalized from a
// package-level qRenderer to an owned, testable Frustum/Walker pair.
package visibility

import (
	"github.com/chewxy/math32"

	"goquake2/mathvec"
)

// Plane is one frustum side plane with its cached sign bits, exactly
// the teacher's fPlane shape.
type Plane struct {
	SignBits uint8
	Normal   mathvec.Vec3
	Dist     float32
}

func (p *Plane) updateSignBits() {
	p.SignBits = 0
	if p.Normal.X < 0 {
		p.SignBits |= 1 << 0
	}
	if p.Normal.Y < 0 {
		p.SignBits |= 1 << 1
	}
	if p.Normal.Z < 0 {
		p.SignBits |= 1 << 2
	}
}

func deg2rad(a float32) float32 {
	return a / 180 * math32.Pi
}

// turnVector rotates forward by angle (degrees) toward side, the same
// parametrization the teacher's TurnVector uses to derive each
// frustum plane's normal from the view axes.
func (p *Plane) turnVector(forward, side, viewOrg mathvec.Vec3, angle float32) {
	ar := deg2rad(angle)
	scaleSide, scaleForward := math32.Sincos(ar)
	p.Normal = mathvec.Add(mathvec.Scale(scaleForward, forward), mathvec.Scale(scaleSide, side))
	p.Dist = mathvec.Dot(viewOrg, p.Normal)
	p.updateSignBits()
}

// Frustum is the four side planes test surfaces against.
type Frustum [4]Plane

// SetFrustum derives the frustum from fovx/fovy and the view basis,
// per spec.md §4.E: "rotating the forward vector by 90-fovx/2 etc.
// around up/right."
func SetFrustum(fovx, fovy float32, viewOrg, forward, right, up mathvec.Vec3) Frustum {
	var f Frustum
	f[0].turnVector(forward, right, viewOrg, fovx/2-90) // left
	f[1].turnVector(forward, right, viewOrg, 90-fovx/2) // right
	f[2].turnVector(forward, up, viewOrg, 90-fovy/2)    // bottom
	f[3].turnVector(forward, up, viewOrg, fovy/2-90)    // top
	return f
}

// CullBox returns true if the box is entirely outside the frustum,
// using the teacher's sign-bits dispatch to pick the box's positive
// vertex per plane without a branch per axis.
func (f Frustum) CullBox(mins, maxs mathvec.Vec3) bool {
	for i := range f {
		p := &f[i]
		var x, y, z float32
		if p.SignBits&1 != 0 {
			x = mins.X
		} else {
			x = maxs.X
		}
		if p.SignBits&2 != 0 {
			y = mins.Y
		} else {
			y = maxs.Y
		}
		if p.SignBits&4 != 0 {
			z = mins.Z
		} else {
			z = maxs.Z
		}
		if p.Normal.X*x+p.Normal.Y*y+p.Normal.Z*z < p.Dist {
			return true
		}
	}
	return false
}
