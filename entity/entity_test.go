package entity

import (
	"testing"

	"goquake2/cvars"
	"goquake2/mathvec"
)

func TestNewSnapshotShiftsHistory(t *testing.T) {
	var s Store
	s.NewSnapshot(0, State{Origin: mathvec.Vec3{X: 1}})
	s.NewSnapshot(0, State{Origin: mathvec.Vec3{X: 2}})
	s.NewSnapshot(0, State{Origin: mathvec.Vec3{X: 3}})

	slot := s.Slots[0]
	if slot.Prev2.Origin.X != 1 || slot.Prev.Origin.X != 2 || slot.Curr.Origin.X != 3 {
		t.Errorf("unexpected history: prev2=%v prev=%v curr=%v", slot.Prev2.Origin, slot.Prev.Origin, slot.Curr.Origin)
	}
}

func TestResolveLerpsBetweenPrevAndCurr(t *testing.T) {
	var s Store
	s.Slots[0].Prev = State{Origin: mathvec.Vec3{X: 0}}
	s.Slots[0].Curr = State{Origin: mathvec.Vec3{X: 10}}

	tr := s.Resolve(0, 0.5, 0, 1)
	if tr.Origin.X != 5 {
		t.Errorf("expected the midpoint x=5, got %v", tr.Origin.X)
	}
	if tr.FrontLerp != 0 {
		t.Errorf("expected FrontLerp 0 when Curr.FrameDur is unset, got %v", tr.FrontLerp)
	}
}

func TestResolveExtrapolatesPastCurrent(t *testing.T) {
	var s Store
	s.Slots[0].Curr = State{Origin: mathvec.Vec3{X: 0}, Velocity: mathvec.Vec3{X: 100}}

	tr := s.Resolve(0, 1.1, 0, 1)
	if tr.Origin.X != 10 {
		t.Errorf("expected extrapolated x=10 (0.1s * 100 units/s), got %v", tr.Origin.X)
	}
}

func TestResolveClampsExtrapolationDuration(t *testing.T) {
	var s Store
	s.Slots[0].Curr = State{Origin: mathvec.Vec3{X: 0}, Velocity: mathvec.Vec3{X: 100}}

	// far beyond tcurr: the 200ms extrapolate-max cvar should cap dt.
	tr := s.Resolve(0, 2, 0, 1)
	if tr.Origin.X != 20 {
		t.Errorf("expected extrapolation capped at 0.2s * 100 units/s = 20, got %v", tr.Origin.X)
	}
}

func TestResolveFallsBackToCurrOriginWhenExtrapolateDisabled(t *testing.T) {
	cvars.ClientExtrapolate.SetByString("0")
	defer cvars.ClientExtrapolate.SetByString("1")

	var s Store
	s.Slots[0].Curr = State{Origin: mathvec.Vec3{X: 7}, Velocity: mathvec.Vec3{X: 100}}

	tr := s.Resolve(0, 5, 0, 1)
	if tr.Origin.X != 7 {
		t.Errorf("expected the raw Curr.Origin with extrapolation disabled, got %v", tr.Origin.X)
	}
}

func TestResolveFrontLerpTracksFramePhase(t *testing.T) {
	var s Store
	s.Slots[0].Curr = State{FrameReceivedT: 10, FrameDur: 2}

	tr := s.Resolve(0, 11, 0, 1)
	if tr.FrontLerp != 0.5 {
		t.Errorf("expected FrontLerp 0.5 one second into a two-second frame, got %v", tr.FrontLerp)
	}
}

func TestRecordPredictionErrorFadesToZero(t *testing.T) {
	var s Store
	s.RecordPredictionError(0, mathvec.Vec3{X: 10}, mathvec.Vec3{X: 0}, 0)

	if off := s.predictionErrorOffset(0, 0); off.X != 10 {
		t.Errorf("expected the full error immediately after recording, got %v", off.X)
	}
	if off := s.predictionErrorOffset(0, 0.05); off.X != 5 {
		t.Errorf("expected a half-faded error at 50ms, got %v", off.X)
	}
	if off := s.predictionErrorOffset(0, 0.1); off.X != 0 {
		t.Errorf("expected the error fully faded at 100ms, got %v", off.X)
	}
}

func TestLerpFractionZeroGapReturnsOne(t *testing.T) {
	var s Store
	s.MessageTime, s.MessageTimeOld = 5, 5
	if f := s.LerpFraction(5); f != 1 {
		t.Errorf("expected a zero message gap to report fraction 1, got %v", f)
	}
}

func TestLerpFractionClampsDroppedPacketGap(t *testing.T) {
	var s Store
	s.MessageTime, s.MessageTimeOld = 10, 0 // 10s gap, far beyond the 0.1s clamp
	f := s.LerpFraction(10)
	if f != 1 {
		t.Errorf("expected the clamped window to put 'now' at its end, fraction 1, got %v", f)
	}
	if s.MessageTimeOld != 9.9 {
		t.Errorf("expected MessageTimeOld to be pulled forward to MessageTime-0.1, got %v", s.MessageTimeOld)
	}
}

func TestLerpFractionNoLerpOverridesToOne(t *testing.T) {
	cvars.ClientNoLerp.SetByString("1")
	defer cvars.ClientNoLerp.SetByString("0")

	var s Store
	s.MessageTime, s.MessageTimeOld = 1, 0
	if f := s.LerpFraction(0.5); f != 1 {
		t.Errorf("expected cl_nolerp to force fraction 1, got %v", f)
	}
}
