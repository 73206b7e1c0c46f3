// Package mathvec provides the vector/quaternion/matrix primitives the
// rendering pipeline shares. Vec3 mirrors the teacher's math/vec
// package; matrix and quaternion work is delegated to
// github.com/go-gl/mathgl rather than hand-rolled, since the teacher's
// own fixed-function matrix helpers (glh/matrix.go) predate the
// quaternion blending and frustum-matrix needs of this spec.
package mathvec

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Vec3 struct {
	X, Y, Z float32
}

func FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func (v Vec3) Idx(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scale(s float32, v Vec3) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Scale(1/l, v)
}

func Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Lerp interpolates linearly between a and b, t usually in [0,1] but
// not clamped (extrapolation callers rely on that).
func Lerp(a, b Vec3, t float32) Vec3 {
	return Add(a, Scale(t, Sub(b, a)))
}

func (v Vec3) mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// CatmullRom evaluates the Catmull-Rom spline through p0..p3 at t in
// [0,1], used by component D when cl_cubic_interp substitutes a cubic
// for the default linear blend across four snapshots.
func CatmullRom(p0, p1, p2, p3 Vec3, t float32) Vec3 {
	t2 := t * t
	t3 := t2 * t
	c0 := -0.5*t3 + t2 - 0.5*t
	c1 := 1.5*t3 - 2.5*t2 + 1
	c2 := -1.5*t3 + 2*t2 + 0.5*t
	c3 := 0.5*t3 - 0.5*t2
	return Add(Add(Scale(c0, p0), Scale(c1, p1)), Add(Scale(c2, p2), Scale(c3, p3)))
}

// Quat wraps mgl32.Quat for the shortest-arc angle blend component D
// needs; angles in degrees around each axis, matching the rest of the
// engine's convention (pitch, yaw, roll).
type Quat struct {
	q mgl32.Quat
}

func QuatFromEuler(pitch, yaw, roll float32) Quat {
	p := mgl32.QuatRotate(mgl32.DegToRad(pitch), mgl32.Vec3{0, 1, 0})
	y := mgl32.QuatRotate(mgl32.DegToRad(yaw), mgl32.Vec3{0, 0, 1})
	r := mgl32.QuatRotate(mgl32.DegToRad(roll), mgl32.Vec3{1, 0, 0})
	return Quat{q: y.Mul(p).Mul(r)}
}

// Euler returns pitch, yaw, roll in degrees.
func (q Quat) Euler() (pitch, yaw, roll float32) {
	m := q.q.Mat4()
	yaw = mgl32.RadToDeg(math32.Atan2(m.At(1, 0), m.At(0, 0)))
	pitch = mgl32.RadToDeg(math32.Atan2(-m.At(2, 0), math32.Sqrt(m.At(2, 1)*m.At(2, 1)+m.At(2, 2)*m.At(2, 2))))
	roll = mgl32.RadToDeg(math32.Atan2(m.At(2, 1), m.At(2, 2)))
	return
}

// ShortestArcBlend blends from a to b by t in [0,1] via the shortest
// arc, used for per-channel angle interpolation in component D.
func ShortestArcBlend(a, b Quat, t float32) Quat {
	return Quat{q: mgl32.QuatSlerp(a.q, b.q, t)}
}

// WrapAngle180 wraps a degree value into (-180, 180], matching the
// independent per-channel wrap spec.md §4.D requires when not using
// quaternion blending.
func WrapAngle180(a float32) float32 {
	for a > 180 {
		a -= 360
	}
	for a <= -180 {
		a += 360
	}
	return a
}

// Mat4 is the projection/view matrix type shared by render, reflection
// and postprocess.
type Mat4 = mgl32.Mat4

// Frustum builds the Mesa-equivalent frustum matrix spec.md §4.G calls
// for, used instead of mgl32.Perspective for the reflection pass
// because the standard formula hits degenerate signs for the mirrored,
// skewed viewer the reflection controller constructs.
func Frustum(left, right, bottom, top, near, far float32) Mat4 {
	return mgl32.Frustum(left, right, bottom, top, near, far)
}
