// Scene sequencing: the fixed per-frame pass order of spec.md §4.H,
// consuming visibility's world walk and reflection's mirror detection
// to build a CommandList a backend can submit. Grounded on the
// teacher's quakelib/draw.go pass-ordering idiom (opaque world before
// entities, sky deferred until its marked surfaces are known,
// translucent/particles last).
package render

import (
	"sort"

	"goquake2/bsp"
	"goquake2/mathvec"
	"goquake2/reflection"
	"goquake2/visibility"
)

// EntityDraw is one alias/sprite/brush entity queued for this frame,
// already resolved to a world transform by the entity package.
type EntityDraw struct {
	TextureID   uint32
	Origin      mathvec.Vec3
	Translucent bool
	VertexCount uint32
}

// RefDefFlags mirrors the legacy refdef_t.rdflags bitfield: per-frame
// view conditions that affect pass sequencing but aren't part of the
// camera transform itself.
type RefDefFlags uint32

const (
	// RDFUnderwater marks the viewer as submerged, per spec.md's
	// open-question decision to suppress reflection passes when set
	// (gl_rmain.c's DO_REFLECTIVE_WATER branch skips R_RecursiveFindRefl
	// while the camera is underwater).
	RDFUnderwater RefDefFlags = 1 << 0
)

// SceneInputs bundles everything BuildFrame needs to record a frame's
// passes; callers assemble this from the world model, the visibility
// walker's just-completed pass, and the frame's entity list.
type SceneInputs struct {
	Model      *bsp.Model
	Frustum    visibility.Frustum
	ViewOrg    mathvec.Vec3
	CurFrame   int32
	Flags      RefDefFlags
	Entities   []EntityDraw
	Reflectors []reflection.Reflector
}

// worldBatch groups a run of surfaces sharing a texture and lightmap
// page, the draw-call granularity spec.md §4.H's world pass uses to
// avoid a state change per polygon.
type worldBatch struct {
	texInfo int32
	page    int32
	surfs   []int32
}

// BuildFrame walks the visible world once, classifying every surface
// into sky, opaque, or translucent/warp, batches opaque surfaces by
// texture+lightmap page, and records the full pass sequence: optional
// reflection passes first (each reflector gets its own offscreen
// pass, recursed with a depth guard the caller enforces by only
// passing already-deduped reflectors), then world-opaque,
// entity-opaque, sky, world-translucent, entity-translucent,
// particles, post-process, UI.
func BuildFrame(in SceneInputs) CommandList {
	rec := NewRecorder()

	if in.Flags&RDFUnderwater == 0 {
		for _, refl := range in.Reflectors {
			rec.BeginPass(PassReflection, reflectionTarget(refl), true)
			// The mirrored sub-scene's own world/entity draws are recorded
			// by a recursive BuildFrame call from the caller (render driver),
			// which owns the mirrored camera transform; this pass only
			// reserves the offscreen target in sequence order.
		}
	}

	var skySurfs, opaque, translucent []int32
	visibility.RecursiveWorldNode(in.Model, 0, in.CurFrame, in.Frustum, in.ViewOrg,
		func(surfIdx int32) {
			s := &in.Model.Surfaces[surfIdx]
			switch {
			case s.Flags&bsp.SurfSky != 0:
				skySurfs = append(skySurfs, surfIdx)
			case s.Flags&(bsp.SurfWarp|bsp.SurfTrans33|bsp.SurfTrans66) != 0:
				translucent = append(translucent, surfIdx)
			default:
				opaque = append(opaque, surfIdx)
			}
		}, nil)

	rec.BeginPass(PassWorldOpaque, "", true)
	for _, batch := range batchSurfaces(in.Model, opaque) {
		rec.Draw(DrawCall{
			PipelineKey:  "world",
			TextureID:    uint32(in.Model.TexInfos[batch.texInfo].TextureID),
			LightmapPage: batch.page,
			VertexCount:  uint32(len(batch.surfs)) * 4,
		})
	}

	rec.BeginPass(PassEntityOpaque, "", false)
	for _, e := range in.Entities {
		if e.Translucent {
			continue
		}
		rec.Draw(DrawCall{PipelineKey: "alias", TextureID: e.TextureID, VertexCount: e.VertexCount})
	}

	if len(skySurfs) > 0 {
		rec.BeginPass(PassSky, "", false)
		rec.Draw(DrawCall{PipelineKey: "sky", VertexCount: uint32(len(skySurfs)) * 4})
	}

	if len(translucent) > 0 {
		rec.BeginPass(PassWorldTranslucent, "", false)
		for _, batch := range batchSurfaces(in.Model, translucent) {
			rec.Draw(DrawCall{
				PipelineKey:  "warp",
				TextureID:    uint32(in.Model.TexInfos[batch.texInfo].TextureID),
				LightmapPage: batch.page,
				VertexCount:  uint32(len(batch.surfs)) * 4,
			})
		}
	}

	rec.BeginPass(PassEntityTranslucent, "", false)
	for _, e := range in.Entities {
		if !e.Translucent {
			continue
		}
		rec.Draw(DrawCall{PipelineKey: "alias_trans", TextureID: e.TextureID, VertexCount: e.VertexCount})
	}

	rec.BeginPass(PassParticles, "", false)

	rec.BeginPass(PassPostProcess, "", false)
	rec.Draw(DrawCall{PipelineKey: "postprocess"})

	rec.BeginPass(PassUI, "", false)
	rec.Draw(DrawCall{PipelineKey: "ui"})

	return rec.Finish()
}

func reflectionTarget(r reflection.Reflector) string {
	return "reflection"
}

// batchSurfaces groups surfs by (texinfo, lightmap page), preserving
// the front-to-back order RecursiveWorldNode produced within each
// group so overdraw still favors the nearer batch first.
func batchSurfaces(model *bsp.Model, surfs []int32) []worldBatch {
	byKey := map[[2]int32]*worldBatch{}
	var order [][2]int32
	for _, idx := range surfs {
		s := &model.Surfaces[idx]
		key := [2]int32{s.TexInfo, s.LightmapPage}
		b, ok := byKey[key]
		if !ok {
			b = &worldBatch{texInfo: s.TexInfo, page: s.LightmapPage}
			byKey[key] = b
			order = append(order, key)
		}
		b.surfs = append(b.surfs, idx)
	}
	out := make([]worldBatch, len(order))
	for i, k := range order {
		out[i] = *byKey[k]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].texInfo < out[j].texInfo })
	return out
}
