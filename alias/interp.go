package alias

import "goquake2/mathvec"

// Blend holds the front/back lerp weights (front = frontlerp in [0,1],
// back = 1 - front) and both frames' scale/translate, derived once per
// draw call by NewBlend; Vertex then computes
// `pos = old*back + curr*front` for each vertex.
type Blend struct {
	Front, Back float32
	OldScale    mathvec.Vec3
	OldTrans    mathvec.Vec3
	CurScale    mathvec.Vec3
	CurTrans    mathvec.Vec3
}

// NewBlend derives the per-vertex lerp coefficients for one draw.
func NewBlend(old, curr *Frame, frontlerp float32) Blend {
	if frontlerp < 0 {
		frontlerp = 0
	}
	if frontlerp > 1 {
		frontlerp = 1
	}
	return Blend{
		Front: frontlerp, Back: 1 - frontlerp,
		OldScale: old.Scale, OldTrans: old.Translate,
		CurScale: curr.Scale, CurTrans: curr.Translate,
	}
}

// Vertex decodes vertex i from old/curr under b, optionally expanding
// along its normal by shellScale (shell mode, spec.md §4.C); pass 0
// to disable.
func (b Blend) Vertex(old, curr *Frame, i int, shellScale float32) mathvec.Vec3 {
	ov := old.Verts[i]
	cv := curr.Verts[i]

	oldPos := mathvec.Vec3{
		X: float32(ov.PackedPosition[0])*b.OldScale.X + b.OldTrans.X,
		Y: float32(ov.PackedPosition[1])*b.OldScale.Y + b.OldTrans.Y,
		Z: float32(ov.PackedPosition[2])*b.OldScale.Z + b.OldTrans.Z,
	}
	curPos := mathvec.Vec3{
		X: float32(cv.PackedPosition[0])*b.CurScale.X + b.CurTrans.X,
		Y: float32(cv.PackedPosition[1])*b.CurScale.Y + b.CurTrans.Y,
		Z: float32(cv.PackedPosition[2])*b.CurScale.Z + b.CurTrans.Z,
	}

	pos := mathvec.Add(mathvec.Scale(b.Back, oldPos), mathvec.Scale(b.Front, curPos))
	if shellScale != 0 {
		n := Normal(cv.NormalIndex)
		pos = mathvec.Add(pos, mathvec.Scale(shellScale, n))
	}
	return pos
}

// BlendedNormal interpolates the shading normal the same way the
// position lerps, used when the dot table needs a smoothly-varying
// normal instead of snapping between the two frames' discrete indices.
func (b Blend) BlendedNormal(old, curr *Frame, i int) mathvec.Vec3 {
	n0 := Normal(old.Verts[i].NormalIndex)
	n1 := Normal(curr.Verts[i].NormalIndex)
	return mathvec.Add(mathvec.Scale(b.Back, n0), mathvec.Scale(b.Front, n1)).Normalize()
}
