package lightmap

import (
	"testing"

	"goquake2/bsp"
	"goquake2/mathvec"
)

type fakeUploader struct {
	next    uint32
	uploads int
}

func (f *fakeUploader) CreatePage(width, height uint32) (Handle, error) {
	f.next++
	return Handle(f.next), nil
}

func (f *fakeUploader) UploadRect(h Handle, x, y, w, hgt int32, rgb []byte) error {
	f.uploads++
	return nil
}

func TestPoolByKeyReusesSameSlot(t *testing.T) {
	p := &Pool{}
	a := p.ByKey(5)
	a.Radius = 100
	b := p.ByKey(5)
	if a != b {
		t.Errorf("expected ByKey to return the same slot for the same key")
	}
}

func TestPoolDecayClampsAtZero(t *testing.T) {
	p := &Pool{}
	dl := p.ByKey(1)
	dl.Radius = 10
	dl.Decay = 100
	dl.DieTime = 1000
	p.Decay(1, 0)
	if dl.Radius != 0 {
		t.Errorf("expected radius clamped to 0, got %v", dl.Radius)
	}
}

func TestPoolDecaySkipsDeadLights(t *testing.T) {
	p := &Pool{}
	dl := p.ByKey(2)
	dl.Radius = 10
	dl.Decay = 5
	dl.DieTime = -1
	p.Decay(1, 0)
	if dl.Radius != 10 {
		t.Errorf("expected dead light to be skipped, got radius %v", dl.Radius)
	}
}

func flatSurface() *bsp.Surface {
	return &bsp.Surface{
		Plane: &bsp.Plane{Normal: mathvec.Vec3{Z: 1}, Dist: 0},
		Mins:  mathvec.Vec3{X: -10, Y: -10, Z: 0},
		Maxs:  mathvec.Vec3{X: 10, Y: 10, Z: 0},
	}
}

func TestAffectsWithinRadiusAndBounds(t *testing.T) {
	surf := flatSurface()
	dl := &DynamicLight{Origin: mathvec.Vec3{X: 0, Y: 0, Z: 5}, Radius: 50}
	if !affects(surf, dl) {
		t.Errorf("expected light above the surface within radius to affect it")
	}
}

func TestAffectsOutsideRadius(t *testing.T) {
	surf := flatSurface()
	dl := &DynamicLight{Origin: mathvec.Vec3{X: 0, Y: 0, Z: 50}, Radius: 5}
	if affects(surf, dl) {
		t.Errorf("expected far light not to affect surface")
	}
}

func TestAffectsWithinCutoffOfRadiusDoesNotAffect(t *testing.T) {
	surf := flatSurface()
	// dist=5, radius=20: radius-DlightCutoff=4, so a plane 5 units
	// away is just past the cutoff even though it's well inside radius.
	dl := &DynamicLight{Origin: mathvec.Vec3{X: 0, Y: 0, Z: 5}, Radius: 20}
	if affects(surf, dl) {
		t.Errorf("expected a light within DlightCutoff of its radius boundary not to affect the surface")
	}
}

func TestAffectsOutsideBounds(t *testing.T) {
	surf := flatSurface()
	dl := &DynamicLight{Origin: mathvec.Vec3{X: 1000, Y: 1000, Z: 5}, Radius: 50}
	if affects(surf, dl) {
		t.Errorf("expected light projected outside bounds not to affect surface")
	}
}

func TestAffectsNilPlane(t *testing.T) {
	surf := &bsp.Surface{}
	dl := &DynamicLight{Radius: 50}
	if affects(surf, dl) {
		t.Errorf("expected nil-plane surface never to be affected")
	}
}

func TestUploadStaticCallsUploader(t *testing.T) {
	dev := &fakeUploader{}
	e := NewEngine(dev, Overbright1)
	page, _ := dev.CreatePage(512, 512)
	e.Pages = append(e.Pages, &Page{Handle: page, Width: 512, Height: 512})

	surf := flatSurface()
	surf.LightW, surf.LightH = 4, 4

	if err := e.UploadStatic(0, 0, 0, surf, [64]int{}); err != nil {
		t.Fatalf("UploadStatic: %v", err)
	}
	if dev.uploads != 1 {
		t.Errorf("expected one upload, got %d", dev.uploads)
	}
}

func TestRecompositeSkipsWhenNoLightsTouch(t *testing.T) {
	dev := &fakeUploader{}
	e := NewEngine(dev, Overbright1)
	page, _ := dev.CreatePage(512, 512)
	e.Pages = append(e.Pages, &Page{Handle: page})

	surf := flatSurface()
	surf.LightW, surf.LightH = 4, 4

	if err := e.Recomposite(0, 0, 0, surf, [64]int{}, 0); err != nil {
		t.Fatalf("Recomposite: %v", err)
	}
	if dev.uploads != 0 {
		t.Errorf("expected no upload when no lights touch the surface, got %d", dev.uploads)
	}
}

func TestRecompositeUploadsWhenLightTouches(t *testing.T) {
	dev := &fakeUploader{}
	e := NewEngine(dev, Overbright1)
	page, _ := dev.CreatePage(512, 512)
	e.Pages = append(e.Pages, &Page{Handle: page})

	surf := flatSurface()
	surf.LightW, surf.LightH = 4, 4

	dl := e.Lights.ByKey(1)
	dl.Origin = mathvec.Vec3{X: 0, Y: 0, Z: 5}
	dl.Radius = 50
	dl.DieTime = 1000
	dl.Color = mathvec.Vec3{X: 255, Y: 255, Z: 255}

	if err := e.Recomposite(0, 0, 0, surf, [64]int{}, 0); err != nil {
		t.Fatalf("Recomposite: %v", err)
	}
	if dev.uploads != 1 {
		t.Errorf("expected one upload when a light touches the surface, got %d", dev.uploads)
	}
}

func TestApplyStainDarkensOutput(t *testing.T) {
	out := []byte{200, 200, 200}
	stain := []byte{255}
	applyStain(out, stain)
	if out[0] != 0 || out[1] != 0 || out[2] != 0 {
		t.Errorf("expected full stain alpha to zero the color, got %v", out)
	}
}

func TestFadeStainDecaysTowardZero(t *testing.T) {
	stain := []byte{255}
	FadeStain(stain, 1, 1)
	if stain[0] != 0 {
		t.Errorf("expected stain fully faded after one full fadeSeconds, got %d", stain[0])
	}
}

func TestFadeStainNoopWhenDurationZero(t *testing.T) {
	stain := []byte{100}
	FadeStain(stain, 1, 0)
	if stain[0] != 100 {
		t.Errorf("expected no-op fade when fadeSeconds<=0, got %d", stain[0])
	}
}

func TestOverbrightenSaturatesAtOne(t *testing.T) {
	v := Overbrighten(1, 1, 4)
	if v != 1 {
		t.Errorf("expected overbright product to saturate at 1.0, got %v", v)
	}
}

func TestOverbrightenBelowSaturation(t *testing.T) {
	v := Overbrighten(0.5, 0.5, 1)
	if v != 0.25 {
		t.Errorf("expected 0.25, got %v", v)
	}
}
