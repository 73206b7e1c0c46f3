package sprite

import "goquake2/mathvec"

// Quad is the four corners of a billboarded sprite, counter-clockwise
// starting at bottom-left, ready for the render driver to submit.
type Quad [4]mathvec.Vec3

// Billboard orients frame f to face the viewer: the quad always lies
// in the plane spanned by right/up (the camera's own axes), centered
// on origin and offset by the frame's own origin so sprites with an
// off-center hotspot (muzzle flashes, etc.) sit correctly.
func Billboard(f *Frame, origin, right, up mathvec.Vec3) Quad {
	w := float32(f.Width)
	h := float32(f.Height)
	left := float32(f.OriginX)
	down := h - float32(f.OriginY)

	l := mathvec.Scale(-left, right)
	r := mathvec.Scale(w-left, right)
	b := mathvec.Scale(-down, up)
	t := mathvec.Scale(h-down, up)

	return Quad{
		mathvec.Add(origin, mathvec.Add(l, b)),
		mathvec.Add(origin, mathvec.Add(r, b)),
		mathvec.Add(origin, mathvec.Add(r, t)),
		mathvec.Add(origin, mathvec.Add(l, t)),
	}
}
