package entity

import (
	"goquake2/cvars"
	"goquake2/mathvec"
)

// Transform is the fully resolved per-entity pose a render submission
// consumes: world position, blended angles, and the alias frontlerp
// fraction for whichever two frames are currently playing.
type Transform struct {
	Origin    mathvec.Vec3
	Angles    mathvec.Vec3
	FrontLerp float32
}

// Resolve runs the full six-step contract of spec.md §4.D for ent at
// render time t, given the two bracketing snapshot times tprev/tcurr.
//
// Determinism requirement: for identical (Store, ent, t, tprev,
// tcurr, cvars) this always returns the same Transform.
func (s *Store) Resolve(ent int, t, tprev, tcurr float64) Transform {
	slot := &s.Slots[ent]

	extrapMaxRatio := extrapolateMaxRatio(tcurr, tprev)
	alpha := clamp01Plus((t-tprev)/(tcurr-tprev), extrapMaxRatio)

	var pos mathvec.Vec3
	if alpha <= 1 {
		if cvars.ClientCubicInterp.Bool() && slot.Prev2.Valid {
			pos = mathvec.CatmullRom(slot.Prev2.Origin, slot.Prev.Origin, slot.Curr.Origin,
				extrapolatedNext(slot), float32(alpha))
		} else {
			pos = mathvec.Lerp(slot.Prev.Origin, slot.Curr.Origin, float32(alpha))
		}
	} else if cvars.ClientExtrapolate.Bool() {
		dt := t - tcurr
		maxMS := float64(cvars.ClientExtrapolateMax.Value())
		if dt*1000 > maxMS {
			dt = maxMS / 1000
		}
		pos = mathvec.Add(slot.Curr.Origin, mathvec.Scale(float32(dt), slot.Curr.Velocity))
	} else {
		pos = slot.Curr.Origin
	}

	pos = mathvec.Add(pos, s.predictionErrorOffset(ent, t))

	angles := blendAngles(slot.Prev.Angles, slot.Curr.Angles, float32(alpha))

	frontlerp := float32(0)
	if slot.Curr.FrameDur > 0 {
		frontlerp = clamp01(float32((t - slot.Curr.FrameReceivedT) / slot.Curr.FrameDur))
	}

	return Transform{Origin: pos, Angles: angles, FrontLerp: frontlerp}
}

// blendAngles blends a->b at alpha via the quaternion shortest-arc,
// then independently wraps each resulting channel to (-180,180] per
// spec.md §4.D step 4, so a 350°->10° yaw spin takes the short way
// round in the slerp itself, and the Euler readback never reports an
// out-of-range value even at the blend's extremes.
func blendAngles(a, b mathvec.Vec3, alpha float32) mathvec.Vec3 {
	qa := mathvec.QuatFromEuler(a.X, a.Y, a.Z)
	qb := mathvec.QuatFromEuler(b.X, b.Y, b.Z)
	blended := mathvec.ShortestArcBlend(qa, qb, alpha)
	p, y, r := blended.Euler()
	return mathvec.Vec3{
		X: mathvec.WrapAngle180(p),
		Y: mathvec.WrapAngle180(y),
		Z: mathvec.WrapAngle180(r),
	}
}

func extrapolatedNext(slot *Slot) mathvec.Vec3 {
	return mathvec.Add(slot.Curr.Origin, slot.Curr.Velocity)
}

func extrapolateMaxRatio(tcurr, tprev float64) float64 {
	dur := tcurr - tprev
	if dur <= 0 {
		return 1
	}
	maxMS := float64(cvars.ClientExtrapolateMax.Value())
	return 1 + (maxMS/1000)/dur
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp01Plus(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
