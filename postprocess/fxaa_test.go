package postprocess

import "testing"

func TestFXAALeavesLowContrastUnchanged(t *testing.T) {
	src := solidImage(4, 4, 0.5, 0.5, 0.5)
	out := FXAA(src)
	r, g, b := out.at(2, 2)
	if r != 0.5 || g != 0.5 || b != 0.5 {
		t.Errorf("expected a flat-color field below the edge threshold to pass through unchanged, got %v %v %v", r, g, b)
	}
}

func TestFXAASmoothsHighContrastEdge(t *testing.T) {
	src := NewImage(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				src.set(x, y, 0, 0, 0)
			} else {
				src.set(x, y, 1, 1, 1)
			}
		}
	}
	out := FXAA(src)
	r, _, _ := out.at(2, 1)
	if r <= 0 || r >= 1 {
		t.Errorf("expected the edge pixel to blend between 0 and 1, got %v", r)
	}
}

func TestLumaAtMatchesLuma(t *testing.T) {
	im := NewImage(1, 1)
	im.set(0, 0, 0.2, 0.4, 0.6)
	if lumaAt(im, 0, 0) != luma(0.2, 0.4, 0.6) {
		t.Errorf("expected lumaAt to match luma at the same coords")
	}
}
