package postprocess

import "testing"

func solidImage(w, h int, r, g, b float32) *Image {
	im := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.set(x, y, r, g, b)
		}
	}
	return im
}

func TestGaussian9SumsToOne(t *testing.T) {
	sum := float32(0)
	for _, w := range gaussian9 {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("expected renormalized kernel to sum to 1, got %v", sum)
	}
}

func TestThresholdExtractZerosBelowThreshold(t *testing.T) {
	src := solidImage(2, 2, 0.1, 0.1, 0.1)
	out := ThresholdExtract(src, 0.5)
	r, g, b := out.at(0, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("expected dim pixels below threshold to extract to zero, got %v %v %v", r, g, b)
	}
}

func TestThresholdExtractPassesAboveThreshold(t *testing.T) {
	src := solidImage(2, 2, 1, 1, 1)
	out := ThresholdExtract(src, 0.1)
	r, _, _ := out.at(0, 0)
	if r <= 0 {
		t.Errorf("expected bright pixels above threshold to extract a non-zero value, got %v", r)
	}
}

func TestDownsampleHalfAveragesFourTexels(t *testing.T) {
	src := NewImage(2, 2)
	src.set(0, 0, 0, 0, 0)
	src.set(1, 0, 1, 1, 1)
	src.set(0, 1, 1, 1, 1)
	src.set(1, 1, 0, 0, 0)
	out := downsampleHalf(src)
	if out.Width != 1 || out.Height != 1 {
		t.Fatalf("expected 1x1 output, got %dx%d", out.Width, out.Height)
	}
	r, _, _ := out.at(0, 0)
	if r != 0.5 {
		t.Errorf("expected average of 0,1,1,0 = 0.5, got %v", r)
	}
}

func TestDownsampleHalfMinimumOnePixel(t *testing.T) {
	src := NewImage(1, 1)
	out := downsampleHalf(src)
	if out.Width != 1 || out.Height != 1 {
		t.Errorf("expected minimum 1x1 output for a 1x1 input, got %dx%d", out.Width, out.Height)
	}
}

func TestGaussianBlur9PreservesSolidColor(t *testing.T) {
	src := solidImage(8, 8, 0.5, 0.5, 0.5)
	out := gaussianBlur9(src)
	r, g, b := out.at(4, 4)
	if r < 0.49 || r > 0.51 || g < 0.49 || g > 0.51 || b < 0.49 || b > 0.51 {
		t.Errorf("expected a constant field to survive blurring unchanged, got %v %v %v", r, g, b)
	}
}

func TestBloomAddsNonNegativeContribution(t *testing.T) {
	src := solidImage(8, 8, 1, 1, 1)
	out := Bloom(src, 0.5, 1)
	for _, v := range out.Pix {
		if v < 0 {
			t.Fatalf("expected non-negative bloom contribution, got %v", v)
		}
	}
}

func TestCompositeAddsInPlace(t *testing.T) {
	base := solidImage(1, 1, 0.2, 0.2, 0.2)
	bloom := solidImage(1, 1, 0.1, 0.1, 0.1)
	Composite(base, bloom)
	r, g, b := base.at(0, 0)
	if r < 0.29 || r > 0.31 {
		t.Errorf("expected additive composite 0.2+0.1=0.3, got %v %v %v", r, g, b)
	}
}
