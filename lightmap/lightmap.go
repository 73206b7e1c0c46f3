// Package lightmap implements component F: static lightmap atlas
// pages, the per-frame dynamic-light recomposite restricted to
// touched rectangles, the stainmap fade accumulator, and the
// overbright scalar. Grounded on the teacher's bsp/light.go (lightmap
// sample layout, per-style scale-and-accumulate loop) and
// quakelib/dynamic_light.go (DynamicLight field shape, decay-by-time).
package lightmap

import (
	"goquake2/bsp"
	"goquake2/mathvec"
)

const MaxDynamicLights = 32

// DynamicLight mirrors the teacher's DynamicLight struct, minus the
// cgo sync hook: origin/radius/decay/key/color plus a death time.
type DynamicLight struct {
	Origin   mathvec.Vec3
	Color    mathvec.Vec3
	Radius   float32
	DieTime  float64
	Decay    float32
	MinLight float32
	Key      int
}

// Pool owns the fixed-size dynamic light array and the allocation
// scheme (reuse by key, else the first dead slot, else slot 0), per
// GetDynamicLightByKey/GetFreeDynamicLight.
type Pool struct {
	Lights [MaxDynamicLights]DynamicLight
}

func (p *Pool) ByKey(key int) *DynamicLight {
	for i := range p.Lights {
		if p.Lights[i].Key == key {
			return &p.Lights[i]
		}
	}
	dl := p.free(0)
	dl.Key = key
	return dl
}

func (p *Pool) free(now float64) *DynamicLight {
	for i := range p.Lights {
		if p.Lights[i].DieTime < now {
			return &p.Lights[i]
		}
	}
	return &p.Lights[0]
}

// Decay ages every live light by dt seconds, matching DecayLights'
// linear radius falloff.
func (p *Pool) Decay(dt float64, now float64) {
	for i := range p.Lights {
		dl := &p.Lights[i]
		if dl.DieTime < now || dl.Radius == 0 {
			continue
		}
		dl.Radius -= float32(dt) * dl.Decay
		if dl.Radius < 0 {
			dl.Radius = 0
		}
	}
}

// Handle is this package's own opaque GPU texture reference, the same
// bindless-index idiom texture.Handle uses.
type Handle uint32

// Uploader is the narrow surface the atlas needs from the GPU device,
// mirroring texture.Uploader's shape for the same reason: upload a
// sub-rectangle without the caller needing gpucontext's full API.
type Uploader interface {
	CreatePage(width, height uint32) (Handle, error)
	UploadRect(h Handle, x, y, w, hgt int32, rgb []byte) error
}

const (
	PageSize  = 512
	Overbright1 = 1
	Overbright2 = 2
	Overbright4 = 4
)

// Page is one static lightmap atlas page; dynamic recomposites write
// back into the same page at the surface's allocated rectangle.
type Page struct {
	Handle        Handle
	Width, Height int32
}

// Engine owns the lightmap pages, the dynamic light pool, and the
// overbright scalar; it never allocates rectangles itself — surfaces
// carry their atlas placement from the bake step (component A's
// concern), this package only recomposites and reuploads.
type Engine struct {
	dev        Uploader
	Pages      []*Page
	Overbright int
	Lights     Pool
}

func NewEngine(dev Uploader, overbright int) *Engine {
	return &Engine{dev: dev, Overbright: overbright}
}

// UploadStatic pushes a surface's baked lightmap rectangle to its
// atlas page for the first time (map load).
func (e *Engine) UploadStatic(page int32, x, y int32, surf *bsp.Surface, styles [64]int) error {
	rgb := e.composite(surf, styles, nil)
	return e.dev.UploadRect(e.Pages[page].Handle, x, y, surf.LightW, surf.LightH, rgb)
}

// Recomposite implements spec.md §4.F's per-frame dynamic pass: for
// every marked surface, test each live dlight against its plane and
// bounds, and only if at least one touches it, recompute the
// rectangle from the static base plus every touching dlight's
// falloff contribution, then reupload just that rectangle.
func (e *Engine) Recomposite(page int32, x, y int32, surf *bsp.Surface, styles [64]int, now float64) error {
	var touching []*DynamicLight
	for i := range e.Lights.Lights {
		dl := &e.Lights.Lights[i]
		if dl.DieTime < now || dl.Radius == 0 {
			continue
		}
		if !affects(surf, dl) {
			continue
		}
		touching = append(touching, dl)
	}
	if len(touching) == 0 {
		return nil
	}
	rgb := e.composite(surf, styles, touching)
	return e.dev.UploadRect(e.Pages[page].Handle, x, y, surf.LightW, surf.LightH, rgb)
}

// DlightCutoff is the distance a dlight's sphere must clear a
// surface's plane by before it's considered touching it, matching the
// original r_mark_lights's DLIGHT_CUTOFF.
const DlightCutoff = 16

// affects reports whether dl's sphere reaches surf's plane and its
// projected center falls inside the surface's bounds, per spec.md
// §4.F step 1: the signed distance must be within
// radius - DlightCutoff of the plane, not just within radius.
func affects(surf *bsp.Surface, dl *DynamicLight) bool {
	if surf.Plane == nil {
		return false
	}
	dist := mathvec.Dot(dl.Origin, surf.Plane.Normal) - surf.Plane.Dist
	if dist > dl.Radius-DlightCutoff || dist < -dl.Radius+DlightCutoff {
		return false
	}
	proj := mathvec.Sub(dl.Origin, mathvec.Scale(dist, surf.Plane.Normal))
	const pad = 1
	return proj.X >= surf.Mins.X-pad && proj.X <= surf.Maxs.X+pad &&
		proj.Y >= surf.Mins.Y-pad && proj.Y <= surf.Maxs.Y+pad &&
		proj.Z >= surf.Mins.Z-pad && proj.Z <= surf.Maxs.Z+pad
}

// composite builds the full RGB rectangle: static per-style samples
// scaled by the current lightstyle value, plus every touching
// dlight's `intensity * max(0, 1-(dist/radius))` per luxel
// contribution, per spec.md §4.F step 2, and blends in the stainmap.
func (e *Engine) composite(surf *bsp.Surface, styles [64]int, lights []*DynamicLight) []byte {
	w, h := int(surf.LightW), int(surf.LightH)
	out := make([]byte, w*h*3)

	if len(surf.LightSamples) > 0 {
		numStyles := 0
		for _, st := range surf.LightStyles {
			if st != 255 {
				numStyles++
			}
		}
		planeBytes := w * h * 3
		for si := 0; si < numStyles; si++ {
			styleIdx := surf.LightStyles[si]
			scale := float32(styles[styleIdx]) / 256
			base := si * planeBytes
			if base+planeBytes > len(surf.LightSamples) {
				break
			}
			plane := surf.LightSamples[base : base+planeBytes]
			for i := 0; i < planeBytes; i++ {
				v := int(out[i]) + int(float32(plane[i])*scale)
				if v > 255 {
					v = 255
				}
				out[i] = byte(v)
			}
		}
	}

	for _, dl := range lights {
		addDynamic(out, w, h, surf, dl)
	}

	if len(surf.Stain) == w*h {
		applyStain(out, surf.Stain)
	}

	return out
}

func addDynamic(out []byte, w, h int, surf *bsp.Surface, dl *DynamicLight) {
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			luxelWorld := mathvec.Vec3{
				X: surf.Mins.X + float32(tx)/float32(w)*(surf.Maxs.X-surf.Mins.X),
				Y: surf.Mins.Y + float32(ty)/float32(h)*(surf.Maxs.Y-surf.Mins.Y),
				Z: surf.Mins.Z,
			}
			dist := mathvec.Sub(dl.Origin, luxelWorld).Length()
			if dist >= dl.Radius {
				continue
			}
			intensity := 1 - dist/dl.Radius
			if intensity <= 0 {
				continue
			}
			i := (ty*w + tx) * 3
			addClamped(out, i+0, dl.Color.X*intensity)
			addClamped(out, i+1, dl.Color.Y*intensity)
			addClamped(out, i+2, dl.Color.Z*intensity)
		}
	}
}

func addClamped(out []byte, i int, v float32) {
	nv := int(out[i]) + int(v)
	if nv > 255 {
		nv = 255
	}
	out[i] = byte(nv)
}

// applyStain modulates the stain alpha mask into the composited
// color, per spec.md §4.F step 3.
func applyStain(out []byte, stain []byte) {
	for i, a := range stain {
		scale := float32(255-a) / 255
		out[i*3+0] = byte(float32(out[i*3+0]) * scale)
		out[i*3+1] = byte(float32(out[i*3+1]) * scale)
		out[i*3+2] = byte(float32(out[i*3+2]) * scale)
	}
}

// FadeStain linearly fades every stain alpha toward zero over
// fadeSeconds, called once per frame with dt in seconds.
func FadeStain(stain []byte, dt float32, fadeSeconds float32) {
	if fadeSeconds <= 0 {
		return
	}
	drop := dt / fadeSeconds * 255
	for i, a := range stain {
		v := float32(a) - drop
		if v < 0 {
			v = 0
		}
		stain[i] = byte(v)
	}
}

// Overbrighten applies the overbright scalar and saturates at 1.0 of
// the diffuse product, per spec.md §4.F's final paragraph.
func Overbrighten(diffuse, lightmap float32, overbright int) float32 {
	v := diffuse * lightmap * float32(overbright)
	if v > 1 {
		v = 1
	}
	return v
}
