package postprocess

import "testing"

func TestPolyblendNoopWhenAlphaZero(t *testing.T) {
	im := NewImage(1, 1)
	im.set(0, 0, 0.5, 0.5, 0.5)
	Polyblend(im, Blend{R: 1, G: 0, B: 0, A: 0})
	r, g, b := im.at(0, 0)
	if r != 0.5 || g != 0.5 || b != 0.5 {
		t.Errorf("expected no change at alpha=0, got %v %v %v", r, g, b)
	}
}

func TestPolyblendFullAlphaReplacesColor(t *testing.T) {
	im := NewImage(1, 1)
	im.set(0, 0, 0.5, 0.5, 0.5)
	Polyblend(im, Blend{R: 1, G: 0, B: 0, A: 1})
	r, g, b := im.at(0, 0)
	if r != 1 || g != 0 || b != 0 {
		t.Errorf("expected full replacement at alpha=1, got %v %v %v", r, g, b)
	}
}

func TestGammaIdentityAtOne(t *testing.T) {
	im := NewImage(1, 1)
	im.set(0, 0, 0.25, 0.5, 0.75)
	Gamma(im, 1)
	r, g, b := im.at(0, 0)
	if r != 0.25 || g != 0.5 || b != 0.75 {
		t.Errorf("expected identity at gamma=1, got %v %v %v", r, g, b)
	}
}

func TestGammaBrightensMidtones(t *testing.T) {
	im := NewImage(1, 1)
	im.set(0, 0, 0.25, 0.25, 0.25)
	Gamma(im, 2.2)
	r, _, _ := im.at(0, 0)
	if r <= 0.25 {
		t.Errorf("expected gamma>1 to brighten a midtone value, got %v", r)
	}
}

func TestGammaClampsNegativeToZero(t *testing.T) {
	im := NewImage(1, 1)
	im.set(0, 0, -1, -1, -1)
	Gamma(im, 2.2)
	r, _, _ := im.at(0, 0)
	if r != 0 {
		t.Errorf("expected negative input clamped to 0 before pow, got %v", r)
	}
}
