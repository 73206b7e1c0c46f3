// Package alias implements component C's model half: the MD2
// ("IDP2") skeletal-frame cache. Grounded on the teacher's mdl
// package shape (header field layout, packed frame vertex, bounds
// accumulation loop) and retargeted from Quake's MDL/IDPO format to
// Quake II's MD2/IDP2 per spec.md §6.
package alias

import "goquake2/mathvec"

const (
	// Magic is the little-endian "IDP2" tag.
	Magic   = 'I' | 'D'<<8 | 'P'<<16 | '2'<<24
	Version = 8

	NumNormals = 162
)

// rawHeader mirrors the on-disk MD2 header: 17 little-endian int32s.
type rawHeader struct {
	Ident, Version                                int32
	SkinWidth, SkinHeight                         int32
	FrameSize                                     int32
	NumSkins, NumVerts, NumST, NumTris, NumGLCmds  int32
	NumFrames                                     int32
	OffSkins, OffST, OffTris, OffFrames, OffGLCmds int32
	OffEnd                                        int32
}

const rawHeaderSize = 17 * 4

// rawSkin is a texture path referenced by index from triangles.
type rawSkin struct {
	Name [64]byte
}

type rawST struct {
	S, T int16
}

type rawTriangle struct {
	VertexIndex [3]int16
	STIndex     [3]int16
}

// rawFrameVertex is the packed {pos_q, normal_idx} tuple from
// spec.md §4.C.
type rawFrameVertex struct {
	PackedPosition [3]uint8
	NormalIndex    uint8
}

const rawFrameVertexSize = 4

// Frame is one decoded keyframe: the per-frame scale/translate plus
// the raw packed vertices, kept packed so interpolation happens at
// render time against whichever two frames are live.
type Frame struct {
	Name      string
	Scale     mathvec.Vec3
	Translate mathvec.Vec3
	Verts     []rawFrameVertex
}

// Triangle indexes Verts/ST by vertex.
type Triangle struct {
	VertexIndex [3]int
	STIndex     [3]int
}

// TexCoord is a texel-space UV, normalized against SkinWidth/Height
// by the caller at upload time.
type TexCoord struct {
	S, T int
}

// Model is a fully decoded MD2: frames, skins, and the shared
// triangle/texcoord topology (constant across frames).
type Model struct {
	Name       string
	SkinWidth  int
	SkinHeight int
	Skins      []string
	TexCoords  []TexCoord
	Tris       []Triangle
	Frames     []Frame
	Mins, Maxs mathvec.Vec3
}
