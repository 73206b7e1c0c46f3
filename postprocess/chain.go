// Chain sequences the fixed pass order of spec.md §4.I, each stage
// gated by its own enable cvar, matching the teacher's
// postProcessGammaContrast's single-entry-point idiom scaled up to
// the full pipeline.
package postprocess

// Options mirrors the r_* cvars this chain reads; the caller
// resolves cvar.Value() once per frame into this struct. The one
// exception is r_fsr_colorbox_scale, which the temporal stage's
// neighborhood clamp reads directly from the cvars package.
type Options struct {
	SSAOEnabled     bool
	SSAOIntensity   float32
	SSAORadius      float32
	BloomEnabled    bool
	BloomIntensity  float32
	BloomThreshold  float32
	FSREnabled      bool
	FSRScale        float32
	FSRSharpness    float32
	TemporalEnabled bool
	FXAAEnabled     bool
	Gamma           float32
	Blend           Blend
}

// Inputs bundles the GPU-resolved buffers a frame hands the chain:
// the shaded scene color, its depth, a motion-vector sampler for
// reprojection, and last frame's resolved history (nil on the first
// frame or after a swapchain recreate).
type Inputs struct {
	Color   *Image
	Depth   *DepthBuffer
	ToView  func(x, y int, d float32) [3]float32
	Motion  func(x, y int) MotionVector
	History *History
}

// Run executes every enabled stage in spec.md §4.I's fixed order and
// returns the final color buffer plus the history to feed next
// frame's TemporalAccumulate.
func Run(in Inputs, opt Options) (out *Image, nextHistory *History) {
	color := in.Color

	if opt.SSAOEnabled {
		ao := BoxBlur5(SSAORaw(in.Depth, in.ToView, opt.SSAORadius, opt.SSAOIntensity))
		for i := 0; i < len(color.Pix); i += 3 {
			p := i / 3
			occ := ao.Pix[p*3]
			color.Pix[i+0] *= occ
			color.Pix[i+1] *= occ
			color.Pix[i+2] *= occ
		}
	}

	if opt.BloomEnabled {
		bloom := Bloom(color, opt.BloomThreshold, opt.BloomIntensity)
		Composite(color, bloom)
	}

	if opt.FSREnabled && opt.FSRScale < 1 && opt.FSRScale > 0 {
		fullW := int(float32(color.Width) / opt.FSRScale)
		fullH := int(float32(color.Height) / opt.FSRScale)
		color = RCAS(EASU(color, fullW, fullH), opt.FSRSharpness)
	}

	if opt.TemporalEnabled {
		color = TemporalAccumulate(color, in.Depth, in.Motion, in.History)
	}

	if opt.FXAAEnabled {
		color = FXAA(color)
	}

	Polyblend(color, opt.Blend)
	Gamma(color, opt.Gamma)

	return color, &History{Color: color, Depth: in.Depth}
}
