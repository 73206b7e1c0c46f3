package postprocess

import "github.com/chewxy/math32"

// Blend is the polyblend overlay, mirroring the teacher's v_blend:
// damage flashes and underwater tint both drive this same RGBA, the
// fade itself owned by whatever sets it (component D's prediction
// layer or a liquid-contents check), not this package.
type Blend struct {
	R, G, B, A float32
}

// Polyblend mixes dst toward blend.RGB by blend.A, per spec.md §4.I
// step 6.
func Polyblend(img *Image, blend Blend) {
	if blend.A <= 0 {
		return
	}
	a := clampf(blend.A, 0, 1)
	for i := 0; i < len(img.Pix); i += 3 {
		img.Pix[i+0] = lerp2(img.Pix[i+0], blend.R, a)
		img.Pix[i+1] = lerp2(img.Pix[i+1], blend.G, a)
		img.Pix[i+2] = lerp2(img.Pix[i+2], blend.B, a)
	}
}

// Gamma applies `pow(color, 1/gamma)` in place, per spec.md §4.I
// step 6's final pass.
func Gamma(img *Image, gamma float32) {
	if gamma <= 0 {
		gamma = 1
	}
	inv := 1 / gamma
	for i, v := range img.Pix {
		img.Pix[i] = math32.Pow(clampf(v, 0, 1), inv)
	}
}
