package postprocess

import "testing"

func TestRunAllStagesDisabledStillAppliesPolyblendAndGamma(t *testing.T) {
	color := solidImage(4, 4, 0.5, 0.5, 0.5)
	depth := flatDepth(4, 4, 1)
	out, hist := Run(Inputs{Color: color, Depth: depth, ToView: planarToView, Motion: zeroMotion}, Options{
		Gamma: 1,
		Blend: Blend{A: 0},
	})
	if out == nil || hist == nil {
		t.Fatalf("expected non-nil output and history")
	}
	r, _, _ := out.at(2, 2)
	if r != 0.5 {
		t.Errorf("expected gamma=1 and alpha=0 blend to leave color unchanged, got %v", r)
	}
}

func TestRunReturnsHistoryForNextFrame(t *testing.T) {
	color := solidImage(2, 2, 0.3, 0.3, 0.3)
	depth := flatDepth(2, 2, 5)
	_, hist := Run(Inputs{Color: color, Depth: depth, ToView: planarToView, Motion: zeroMotion}, Options{Gamma: 1})
	if hist.Color == nil || hist.Depth == nil {
		t.Errorf("expected Run to populate a full History for the next frame")
	}
	if hist.Depth != depth {
		t.Errorf("expected the next history's depth to be this frame's depth buffer")
	}
}

func TestRunSSAODarkensOccludedRegions(t *testing.T) {
	color := solidImage(8, 8, 1, 1, 1)
	depth := flatDepth(8, 8, -10)
	out, _ := Run(Inputs{Color: color, Depth: depth, ToView: planarToView, Motion: zeroMotion}, Options{
		SSAOEnabled:   true,
		SSAOIntensity: 1,
		SSAORadius:    1,
		Gamma:         1,
	})
	r, _, _ := out.at(4, 4)
	if r > 1.0001 {
		t.Errorf("expected SSAO to never brighten the scene, got %v", r)
	}
}

func TestRunBloomIncreasesBrightness(t *testing.T) {
	depth := flatDepth(8, 8, 1)

	withBloom, _ := Run(Inputs{Color: solidImage(8, 8, 0.5, 0.5, 0.5), Depth: depth, ToView: planarToView, Motion: zeroMotion}, Options{
		BloomEnabled:   true,
		BloomThreshold: 0.1,
		BloomIntensity: 1,
		Gamma:          1,
	})
	withoutBloom, _ := Run(Inputs{Color: solidImage(8, 8, 0.5, 0.5, 0.5), Depth: depth, ToView: planarToView, Motion: zeroMotion}, Options{
		Gamma: 1,
	})

	rWith, _, _ := withBloom.at(4, 4)
	rWithout, _, _ := withoutBloom.at(4, 4)
	if rWith <= rWithout {
		t.Errorf("expected bloom to additively brighten the scene relative to no bloom: with=%v without=%v", rWith, rWithout)
	}
}
