package postprocess

// bloomMipLevels is the four successively half-sized mip chain depth
// spec.md §4.I step 2 calls for.
const bloomMipLevels = 4

// gaussian9 is the separable 9-tap Gaussian kernel, symmetric around
// the center tap.
var gaussian9 = [9]float32{0.016, 0.03, 0.065, 0.12, 0.18, 0.12, 0.065, 0.03, 0.016}

func init() {
	// renormalize so the 9 taps sum to 1, since the literal weights
	// above are approximate.
	sum := float32(0)
	for _, w := range gaussian9 {
		sum += w
	}
	for i := range gaussian9 {
		gaussian9[i] /= sum
	}
}

// ThresholdExtract implements `b = color * max(0, luma - threshold)`,
// per spec.md §4.I step 2's extract pass.
func ThresholdExtract(src *Image, threshold float32) *Image {
	out := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			r, g, b := src.at(x, y)
			l := luma(r, g, b)
			w := l - threshold
			if w < 0 {
				w = 0
			}
			out.set(x, y, r*w, g*w, b*w)
		}
	}
	return out
}

// downsampleHalf produces a box-filtered half-resolution copy, the
// step between each bloom mip level.
func downsampleHalf(src *Image) *Image {
	w, h := src.Width/2, src.Height/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r0, g0, b0 := src.at(2*x, 2*y)
			r1, g1, b1 := src.at(2*x+1, 2*y)
			r2, g2, b2 := src.at(2*x, 2*y+1)
			r3, g3, b3 := src.at(2*x+1, 2*y+1)
			out.set(x, y, (r0+r1+r2+r3)/4, (g0+g1+g2+g3)/4, (b0+b1+b2+b3)/4)
		}
	}
	return out
}

// gaussianBlur9 applies the separable 9-tap kernel horizontally then
// vertically.
func gaussianBlur9(src *Image) *Image {
	tmp := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var r, g, b float32
			for t := -4; t <= 4; t++ {
				cr, cg, cb := src.at(x+t, y)
				w := gaussian9[t+4]
				r += cr * w
				g += cg * w
				b += cb * w
			}
			tmp.set(x, y, r, g, b)
		}
	}
	out := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var r, g, b float32
			for t := -4; t <= 4; t++ {
				cr, cg, cb := tmp.at(x, y+t)
				w := gaussian9[t+4]
				r += cr * w
				g += cg * w
				b += cb * w
			}
			out.set(x, y, r, g, b)
		}
	}
	return out
}

// upsampleTo bilinearly upsamples src to w x h.
func upsampleTo(src *Image, w, h int) *Image {
	out := NewImage(w, h)
	sx := float32(src.Width) / float32(w)
	sy := float32(src.Height) / float32(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx := (float32(x) + 0.5) * sx
			fy := (float32(y) + 0.5) * sy
			r, g, b := bilinearSample(src, fx-0.5, fy-0.5)
			out.set(x, y, r, g, b)
		}
	}
	return out
}

// Bloom runs the full extract -> mip chain -> blur -> composite
// pipeline of spec.md §4.I step 2, returning the bloom contribution
// to additively blend with the scene at intensity.
func Bloom(src *Image, threshold, intensity float32) *Image {
	extracted := ThresholdExtract(src, threshold)

	mips := make([]*Image, bloomMipLevels)
	cur := extracted
	for i := 0; i < bloomMipLevels; i++ {
		cur = downsampleHalf(cur)
		mips[i] = gaussianBlur9(cur)
	}

	composite := NewImage(src.Width, src.Height)
	for _, m := range mips {
		up := upsampleTo(m, src.Width, src.Height)
		for i := range composite.Pix {
			composite.Pix[i] += up.Pix[i] * intensity / float32(bloomMipLevels)
		}
	}
	return composite
}

// Composite additively blends bloom onto base in place.
func Composite(base, bloom *Image) {
	for i := range base.Pix {
		base.Pix[i] += bloom.Pix[i]
	}
}
