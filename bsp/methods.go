package bsp

import (
	"fmt"

	"goquake2/mathvec"
)

// PointInLeaf walks the tree from the root, choosing sides by the
// sign of dot(normal,p)-dist, per spec.md §4.A.
func (m *Model) PointInLeaf(p mathvec.Vec3) (int32, error) {
	if len(m.Nodes) == 0 {
		return 0, fmt.Errorf("bsp: empty model")
	}
	node := m.Node0()
	for {
		n := &m.Nodes[node]
		plane := &m.Planes[n.PlaneIndex]
		d := mathvec.Dot(p, plane.Normal) - plane.Dist
		var child int32
		if d > 0 {
			child = n.Children[0]
		} else {
			child = n.Children[1]
		}
		if child < 0 {
			return -child - 1, nil
		}
		node = child
	}
}

// LeafRef is returned by PointInLeaf-adjacent callers that want the
// resolved struct rather than a bare index.
func (m *Model) LeafRef(idx int32) *Leaf {
	if idx < 0 || int(idx) >= len(m.Leafs) {
		return nil
	}
	return &m.Leafs[idx]
}

// decompressRow RLE-decompresses one visibility row: a zero byte is
// followed by a count of zero bytes (8 clusters each) to skip; any
// other byte is a literal bitset byte, per spec.md §6.
func decompressRow(data []byte, rowBytes int) []byte {
	out := make([]byte, rowBytes)
	if len(data) == 0 {
		for i := range out {
			out[i] = 0xff
		}
		return out
	}
	j, i := 0, 0
	for j < rowBytes && i < len(data) {
		if data[i] != 0 {
			out[j] = data[i]
			j++
			i++
			continue
		}
		i++
		if i >= len(data) {
			break
		}
		count := int(data[i])
		i++
		for c := 0; c < count && j < rowBytes; c++ {
			out[j] = 0
			j++
		}
	}
	return out
}

func (m *Model) rowBytes() int {
	return int(m.NumClusters+7) / 8
}

// ClusterPVS decompresses the potentially-visible-set bitset for
// cluster c. Invariant: bit c itself is always set (spec.md §8).
func (m *Model) ClusterPVS(c int32) []byte {
	if c < 0 || int(c) >= len(m.Vis.PVSOffset) {
		row := make([]byte, m.rowBytes())
		for i := range row {
			row[i] = 0xff
		}
		return row
	}
	off := m.Vis.PVSOffset[c]
	row := decompressRow(m.Vis.Data[off:], m.rowBytes())
	row[c/8] |= 1 << uint(c%8)
	return row
}

// ClusterPHS is the hearable-set analogue of ClusterPVS; component E
// ORs this in only when hearing (not graphics) is required.
func (m *Model) ClusterPHS(c int32) []byte {
	if c < 0 || int(c) >= len(m.Vis.PHSOffset) {
		row := make([]byte, m.rowBytes())
		for i := range row {
			row[i] = 0xff
		}
		return row
	}
	off := m.Vis.PHSOffset[c]
	return decompressRow(m.Vis.Data[off:], m.rowBytes())
}

func BitSet(bits []byte, i int32) bool {
	if i < 0 || int(i/8) >= len(bits) {
		return false
	}
	return bits[i/8]&(1<<uint(i%8)) != 0
}

// AreaVisible reports whether area's bit is set in the door/portal
// area bitmask. It does not look at cluster visibility; the caller
// (visibility.Walker.MarkLeaves) checks the cluster's PVS bit
// separately, so a leaf is marked only when both bits are set.
func AreaVisible(area int32, areaMask []byte) bool {
	return BitSet(areaMask, area)
}

// Unload releases the world model. Parallel-array storage with no
// pointer cycles means this is just letting the GC reclaim it; Unload
// exists to match component A's contract and to give a hook for
// callers that also need to release GPU-side lightmap pages.
func (m *Model) Unload() {
	*m = Model{}
}
