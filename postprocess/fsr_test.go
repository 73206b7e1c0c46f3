package postprocess

import "testing"

func TestCatmullRom1DPassesThroughP1AtZero(t *testing.T) {
	got := catmullRom1D(0, 1, 2, 3, 0)
	if got < 0.99 || got > 1.01 {
		t.Errorf("expected CatmullRom1D(t=0)=p1=1, got %v", got)
	}
}

func TestCatmullRom1DPassesThroughP2AtOne(t *testing.T) {
	got := catmullRom1D(0, 1, 2, 3, 1)
	if got < 1.99 || got > 2.01 {
		t.Errorf("expected CatmullRom1D(t=1)=p2=2, got %v", got)
	}
}

func TestEASUUpsamplesDimensions(t *testing.T) {
	src := solidImage(4, 4, 0.3, 0.3, 0.3)
	out := EASU(src, 8, 8)
	if out.Width != 8 || out.Height != 8 {
		t.Fatalf("expected 8x8 output, got %dx%d", out.Width, out.Height)
	}
	r, _, _ := out.at(4, 4)
	if r < 0.29 || r > 0.31 {
		t.Errorf("expected a constant-color upsample to preserve the color, got %v", r)
	}
}

func TestRCASZeroSharpnessLeavesFlatImageUnchanged(t *testing.T) {
	src := solidImage(4, 4, 0.4, 0.4, 0.4)
	out := RCAS(src, 0)
	r, g, b := out.at(2, 2)
	if r < 0.39 || r > 0.41 || g < 0.39 || g > 0.41 || b < 0.39 || b > 0.41 {
		t.Errorf("expected a flat field to be unaffected by RCAS, got %v %v %v", r, g, b)
	}
}

func TestRCASStaysWithinLocalMinMax(t *testing.T) {
	src := NewImage(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			src.set(x, y, 0, 0, 0)
		}
	}
	src.set(1, 1, 1, 1, 1)
	out := RCAS(src, 1)
	r, _, _ := out.at(1, 1)
	if r < 0 || r > 1 {
		t.Errorf("expected RCAS to stay within the local 0..1 min/max clamp, got %v", r)
	}
}

func TestMinfMaxf(t *testing.T) {
	if minf(1, 2) != 1 || minf(2, 1) != 1 {
		t.Errorf("minf mismatch")
	}
	if maxf(1, 2) != 2 || maxf(2, 1) != 2 {
		t.Errorf("maxf mismatch")
	}
}
