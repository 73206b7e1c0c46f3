package visibility

import (
	"bytes"

	"goquake2/bsp"
	"goquake2/cvars"
	"goquake2/mathvec"
)

// Walker owns the visframe/curframe bookkeeping and the last-viewer
// cache that lets MarkLeaves skip redundant work, per spec.md §4.E:
// "If cluster unchanged and area bits unchanged from last frame,
// reuse mark set."
type Walker struct {
	CurFrame int32

	lastCluster int32
	lastArea    []byte
	haveLast    bool

	pvsLocked     bool
	lockedCluster int32
	lockedArea    []byte
}

// MarkLeaves decompresses PVS for the viewer's cluster (ORing in PHS
// when hearing is required), then marks every leaf whose cluster bit
// and area bit are both set with VisFrame = curframe. Returns false
// (no new marking performed) when the cached viewer state is
// unchanged, matching the teacher-idiom early-out.
//
// When vk_lockpvs is set, the cluster/area used below is frozen at
// whatever the viewer occupied the frame the lock was engaged, per
// spec.md's "PVS lock" scenario: moving the viewer afterward must not
// change the marked set until the lock is cleared.
func (w *Walker) MarkLeaves(model *bsp.Model, viewerCluster int32, areaMask []byte, needHearing bool) bool {
	lock := cvars.VkLockPVS.Value() != 0
	if lock && !w.pvsLocked {
		w.lockedCluster = viewerCluster
		w.lockedArea = append(w.lockedArea[:0], areaMask...)
	}
	w.pvsLocked = lock
	if lock {
		viewerCluster = w.lockedCluster
		areaMask = w.lockedArea
	}

	if w.haveLast && w.lastCluster == viewerCluster && bytes.Equal(w.lastArea, areaMask) {
		return false
	}
	w.CurFrame++
	w.lastCluster = viewerCluster
	w.lastArea = append(w.lastArea[:0], areaMask...)
	w.haveLast = true

	vis := model.ClusterPVS(viewerCluster)
	if needHearing {
		phs := model.ClusterPHS(viewerCluster)
		for i := range vis {
			if i < len(phs) {
				vis[i] |= phs[i]
			}
		}
	}

	for i := range model.Leafs {
		leaf := &model.Leafs[i]
		if leaf.Cluster < 0 {
			continue
		}
		if !bsp.BitSet(vis, leaf.Cluster) {
			continue
		}
		if areaMask != nil && !bsp.AreaVisible(leaf.Area, areaMask) {
			continue
		}
		leaf.VisFrame = w.CurFrame
	}
	return true
}

// RecursiveWorldNode walks node, front-to-back relative to viewOrg,
// invoking visitSurface for every surface whose side matches the
// viewer and invoking enterLeaf once a leaf is reached. The
// back-to-front ordering requirement in spec.md §4.E ("front child,
// own surfaces, back child") is preserved exactly: sky/translucent
// queues downstream rely on visit order, not just the depth buffer.
func RecursiveWorldNode(model *bsp.Model, node int32, curFrame int32, frustum Frustum,
	viewOrg mathvec.Vec3, visitSurface func(surfIndex int32), enterLeaf func(leafIndex int32)) {
	if node < 0 {
		leafIdx := -node - 1
		leaf := &model.Leafs[leafIdx]
		if leaf.VisFrame != curFrame {
			return
		}
		for i := int32(0); i < leaf.NumMarkSurfaces; i++ {
			surfIdx := model.MarkSurfaces[leaf.FirstMarkSurface+i]
			model.Surfaces[surfIdx].VisFrame = curFrame
		}
		if enterLeaf != nil {
			enterLeaf(leafIdx)
		}
		return
	}

	n := &model.Nodes[node]
	if frustum.CullBox(n.Mins, n.Maxs) {
		return
	}

	plane := &model.Planes[n.PlaneIndex]
	dist := mathvec.Dot(viewOrg, plane.Normal) - plane.Dist

	var front, back int32
	var side int32
	if dist >= 0 {
		front, back = n.Children[0], n.Children[1]
		side = 0
	} else {
		front, back = n.Children[1], n.Children[0]
		side = 1
	}

	RecursiveWorldNode(model, front, curFrame, frustum, viewOrg, visitSurface, enterLeaf)

	for i := int32(0); i < n.NumFaces; i++ {
		surfIdx := n.FirstFace + i
		surf := &model.Surfaces[surfIdx]
		if surf.Side != side {
			continue
		}
		if surf.VisFrame != curFrame {
			continue
		}
		if visitSurface != nil {
			visitSurface(surfIdx)
		}
	}

	RecursiveWorldNode(model, back, curFrame, frustum, viewOrg, visitSurface, enterLeaf)
}
