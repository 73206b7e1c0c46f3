package bsp

import "goquake2/mathvec"

// Plane is one splitting plane, shared by nodes and surfaces.
type Plane struct {
	Normal mathvec.Vec3
	Dist   float32
	Type   int32
}

// TexInfo carries the texture id, flow, and content/surface flags for
// every surface referencing it, per spec.md §3.
type TexInfo struct {
	VectorS, VectorT [3]float32
	DistS, DistT     float32
	Flags            uint32
	TextureName      string
	TextureID        int32
}

// Surface is a BSP polygon: plane, world-space vertices, texinfo, and
// the lightmap page/rect it owns. VisFrame and DLightFrame are the
// transient per-frame marks spec.md §3 calls out.
type Surface struct {
	PlaneIndex int32
	Plane      *Plane
	Side       int32 // 0: surface faces plane normal, 1: faces away

	Vertices []mathvec.Vec3
	TexInfo  int32

	LightmapPage int32
	LightS, LightT,
	LightW, LightH int32

	Mins, Maxs mathvec.Vec3

	VisFrame    int32
	DLightFrame int32

	Flags uint32

	// LightSamples is the baked static luxel grid for this surface,
	// LightW*LightH*3 bytes per active style, concatenated in Styles
	// order; LightStyles lists up to 4 style indices (255 = unused).
	LightSamples []byte
	LightStyles  [4]uint8

	// Stain is the per-luxel damage-stain alpha mask, same dimensions
	// as the lightmap rectangle, lazily allocated on first stain.
	Stain []uint8
}

// Node is an internal BSP node: one splitting plane and two children,
// each either a node index (>=0) or a leaf index encoded as a
// negative number.
type Node struct {
	PlaneIndex int32
	Children   [2]int32 // index into Nodes if >=0, -(leaf+1) if leaf
	Mins, Maxs mathvec.Vec3
	FirstFace  int32
	NumFaces   int32
}

// Leaf is a terminal convex subspace: cluster id, area id, and the
// surfaces it owns via indices into Model.MarkSurfaces.
type Leaf struct {
	Contents        uint32
	Cluster         int32 // -1 means "outside"
	Area            int32
	Mins, Maxs      mathvec.Vec3
	FirstMarkSurface int32
	NumMarkSurfaces  int32

	// VisFrame is the transient per-frame mark MarkLeaves sets; the
	// world walk's leaf case checks it the same way Surface.VisFrame
	// gates a surface.
	VisFrame int32
}

// Vis holds the RLE-compressed PVS/PHS rows, one pair of offsets per
// cluster, decompressed on demand by ClusterPVS/ClusterPHS.
type Vis struct {
	NumClusters int32
	PVSOffset   []int32
	PHSOffset   []int32
	Data        []byte
}

// Model is the in-memory world: parallel arrays indexed by int32 so
// the node/leaf/surface graph has no pointer cycles and copies
// trivially, per the design notes.
type Model struct {
	Name string

	Planes       []Plane
	Vertices     []mathvec.Vec3
	Edges        []rawEdge
	SurfEdges    []int32
	TexInfos     []TexInfo
	Nodes        []Node
	Leafs        []Leaf
	MarkSurfaces []int32 // indices into Surfaces
	Surfaces     []Surface
	Vis          Vis

	NumClusters int32

	HullMins, HullMaxs mathvec.Vec3
}

// Node0 returns the root node, used by PointInLeaf.
func (m *Model) Node0() int32 {
	return 0
}
