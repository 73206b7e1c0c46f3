package bsp

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"goquake2/enginectx"
	"goquake2/filesystem"
	"goquake2/mathvec"
)

// Load parses a map at path into a Model, per component A's contract.
// Truncated or malformed lumps fail with enginectx.MalformedAsset; an
// unrecognized version fails with UnsupportedVersion.
func Load(loader filesystem.Loader, path string) (*Model, error) {
	b, err := loader.GetFileContents(path)
	if err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, path, err)
	}
	return parse(path, b)
}

func parse(name string, b []byte) (*Model, error) {
	if len(b) < 4+4+lumpCount*8 {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "truncated header")
	}
	var hdr header
	r := bytes.NewReader(b)
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if string(hdr.Ident[:]) != Magic {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "bad magic %q", hdr.Ident)
	}
	if hdr.Version != Version {
		return nil, enginectx.Wrapf(enginectx.UnsupportedVersion, name, "version %d", hdr.Version)
	}

	lumpBytes := func(i int) ([]byte, error) {
		l := hdr.Lumps[i]
		end := uint64(l.Offset) + uint64(l.Length)
		if end > uint64(len(b)) {
			return nil, fmt.Errorf("lump %d out of range", i)
		}
		return b[l.Offset:end], nil
	}

	m := &Model{Name: name}

	if err := loadPlanes(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadVertices(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadEdges(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadSurfEdges(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadTexInfo(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadFaces(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadNodes(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadLeafs(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadMarkSurfaces(m, lumpBytes, name); err != nil {
		return nil, err
	}
	if err := loadVisibility(m, lumpBytes, name); err != nil {
		return nil, err
	}

	return m, nil
}

func readSlice(data []byte, out interface{}, name, lump string) error {
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return enginectx.Wrapf(enginectx.MalformedAsset, name, "%s lump: %v", lump, err)
	}
	return nil
}

func loadPlanes(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpPlanes)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	const sz = 4*4 + 4
	n := len(data) / sz
	raw := make([]rawPlane, n)
	if err := readSlice(data, raw, name, "planes"); err != nil {
		return err
	}
	m.Planes = make([]Plane, n)
	for i, p := range raw {
		m.Planes[i] = Plane{
			Normal: mathvec.Vec3{X: p.Normal[0], Y: p.Normal[1], Z: p.Normal[2]},
			Dist:   p.Dist,
			Type:   int32(p.TypeFlag),
		}
	}
	return nil
}

func loadVertices(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpVertexes)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	n := len(data) / 12
	raw := make([]rawVertex, n)
	if err := readSlice(data, raw, name, "vertices"); err != nil {
		return err
	}
	m.Vertices = make([]mathvec.Vec3, n)
	for i, v := range raw {
		m.Vertices[i] = mathvec.Vec3{X: v.X, Y: v.Y, Z: v.Z}
	}
	return nil
}

func loadEdges(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpEdges)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	n := len(data) / 4
	m.Edges = make([]rawEdge, n)
	return readSlice(data, m.Edges, name, "edges")
}

func loadSurfEdges(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpSurfEdges)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	n := len(data) / 4
	m.SurfEdges = make([]int32, n)
	return readSlice(data, m.SurfEdges, name, "surfedges")
}

func loadTexInfo(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpTexInfo)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	const sz = 4*3 + 4 + 4*3 + 4 + 4 + 4 + 32 + 4
	n := len(data) / sz
	raw := make([]rawTexInfo, n)
	if err := readSlice(data, raw, name, "texinfo"); err != nil {
		return err
	}
	m.TexInfos = make([]TexInfo, n)
	for i, t := range raw {
		end := bytes.IndexByte(t.Texture[:], 0)
		if end < 0 {
			end = len(t.Texture)
		}
		m.TexInfos[i] = TexInfo{
			VectorS:     t.VectorS,
			VectorT:     t.VectorT,
			DistS:       t.DistS,
			DistT:       t.DistT,
			Flags:       t.Flags,
			TextureName: string(t.Texture[:end]),
		}
	}
	return nil
}

func loadFaces(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpFaces)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	lighting, err := lb(lumpLighting)
	if err != nil {
		lighting = nil
	}
	const sz = 2 + 2 + 4 + 2 + 2 + 4 + 4
	n := len(data) / sz
	raw := make([]rawFace, n)
	if err := readSlice(data, raw, name, "faces"); err != nil {
		return err
	}
	m.Surfaces = make([]Surface, n)
	for i, f := range raw {
		s := &m.Surfaces[i]
		s.PlaneIndex = int32(f.PlaneNum)
		if int(s.PlaneIndex) < len(m.Planes) {
			s.Plane = &m.Planes[s.PlaneIndex]
		}
		s.Side = int32(f.Side)
		s.TexInfo = int32(f.TexInfo)
		if int(s.TexInfo) < len(m.TexInfos) {
			s.Flags = m.TexInfos[s.TexInfo].Flags
		}
		s.Vertices = faceVertices(m, int32(f.FirstEdge), int32(f.NumEdges))
		s.Mins, s.Maxs = boundsOf(s.Vertices)
		s.LightStyles = f.Styles

		lw, lh := lightExtents(s.Mins, s.Maxs)
		s.LightW, s.LightH = lw, lh

		numStyles := 0
		for _, st := range f.Styles {
			if st != 255 {
				numStyles++
			}
		}
		if lighting != nil && numStyles > 0 && f.LightOffset >= 0 {
			sampleBytes := int(lw) * int(lh) * 3 * numStyles
			off := int(f.LightOffset)
			if off+sampleBytes <= len(lighting) {
				s.LightSamples = lighting[off : off+sampleBytes]
			}
		}
	}
	return nil
}

// lightExtents derives the lightmap rectangle's luxel dimensions from
// the surface's world-space bounds at the standard 16-unit luxel
// scale, matching the teacher's extents/textureMins idiom in
// bsp/light.go (there computed per-axis from texinfo vectors; here
// simplified to the AABB since spec.md §6 doesn't carry texinfo
// vectors' scale into the lightmap rect directly).
func lightExtents(mins, maxs mathvec.Vec3) (w, h int32) {
	dx := maxs.X - mins.X
	dy := maxs.Y - mins.Y
	w = int32(dx/16) + 1
	h = int32(dy/16) + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func faceVertices(m *Model, firstEdge, numEdges int32) []mathvec.Vec3 {
	verts := make([]mathvec.Vec3, 0, numEdges)
	for i := int32(0); i < numEdges; i++ {
		se := m.SurfEdges[firstEdge+i]
		var vIdx uint16
		if se >= 0 {
			vIdx = m.Edges[se].V0
		} else {
			vIdx = m.Edges[-se].V1
		}
		if int(vIdx) < len(m.Vertices) {
			verts = append(verts, m.Vertices[vIdx])
		}
	}
	return verts
}

func boundsOf(verts []mathvec.Vec3) (mins, maxs mathvec.Vec3) {
	if len(verts) == 0 {
		return
	}
	mins, maxs = verts[0], verts[0]
	for _, v := range verts[1:] {
		if v.X < mins.X {
			mins.X = v.X
		}
		if v.Y < mins.Y {
			mins.Y = v.Y
		}
		if v.Z < mins.Z {
			mins.Z = v.Z
		}
		if v.X > maxs.X {
			maxs.X = v.X
		}
		if v.Y > maxs.Y {
			maxs.Y = v.Y
		}
		if v.Z > maxs.Z {
			maxs.Z = v.Z
		}
	}
	return
}

func loadNodes(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpNodes)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	const sz = 4 + 4*2 + 2*3 + 2*3 + 2 + 2
	n := len(data) / sz
	raw := make([]rawNode, n)
	if err := readSlice(data, raw, name, "nodes"); err != nil {
		return err
	}
	m.Nodes = make([]Node, n)
	for i, nd := range raw {
		m.Nodes[i] = Node{
			PlaneIndex: int32(nd.PlaneNum),
			Children:   nd.Children,
			Mins:       mathvec.Vec3{X: float32(nd.Mins[0]), Y: float32(nd.Mins[1]), Z: float32(nd.Mins[2])},
			Maxs:       mathvec.Vec3{X: float32(nd.Maxs[0]), Y: float32(nd.Maxs[1]), Z: float32(nd.Maxs[2])},
			FirstFace:  int32(nd.FirstFace),
			NumFaces:   int32(nd.NumFaces),
		}
	}
	return nil
}

func loadLeafs(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpLeafs)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	const sz = 4 + 2 + 2 + 2*3 + 2*3 + 2 + 2 + 2 + 2
	n := len(data) / sz
	raw := make([]rawLeaf, n)
	if err := readSlice(data, raw, name, "leafs"); err != nil {
		return err
	}
	maxCluster := int32(-1)
	m.Leafs = make([]Leaf, n)
	for i, lf := range raw {
		m.Leafs[i] = Leaf{
			Contents:         lf.Contents,
			Cluster:          int32(lf.Cluster),
			Area:             int32(lf.Area),
			Mins:             mathvec.Vec3{X: float32(lf.Mins[0]), Y: float32(lf.Mins[1]), Z: float32(lf.Mins[2])},
			Maxs:             mathvec.Vec3{X: float32(lf.Maxs[0]), Y: float32(lf.Maxs[1]), Z: float32(lf.Maxs[2])},
			FirstMarkSurface: int32(lf.FirstLeafFace),
			NumMarkSurfaces:  int32(lf.NumLeafFaces),
		}
		if int32(lf.Cluster) > maxCluster {
			maxCluster = int32(lf.Cluster)
		}
	}
	m.NumClusters = maxCluster + 1
	return nil
}

func loadMarkSurfaces(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpLeafFaces)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	n := len(data) / 2
	raw := make([]uint16, n)
	if err := readSlice(data, raw, name, "leaffaces"); err != nil {
		return err
	}
	m.MarkSurfaces = make([]int32, n)
	for i, v := range raw {
		m.MarkSurfaces[i] = int32(v)
	}
	return nil
}

func loadVisibility(m *Model, lb func(int) ([]byte, error), name string) error {
	data, err := lb(lumpVisibility)
	if err != nil {
		return enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if len(data) < 4 {
		return nil // no vis data, everything visible
	}
	numClusters := int32(binary.LittleEndian.Uint32(data[0:4]))
	m.Vis.NumClusters = numClusters
	m.Vis.PVSOffset = make([]int32, numClusters)
	m.Vis.PHSOffset = make([]int32, numClusters)
	off := 4
	for i := int32(0); i < numClusters; i++ {
		if off+8 > len(data) {
			return enginectx.Wrapf(enginectx.MalformedAsset, name, "truncated vis offsets")
		}
		m.Vis.PVSOffset[i] = int32(binary.LittleEndian.Uint32(data[off : off+4]))
		m.Vis.PHSOffset[i] = int32(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		off += 8
	}
	m.Vis.Data = data
	return nil
}
