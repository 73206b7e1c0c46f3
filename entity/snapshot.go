// Package entity implements component D: the double-buffered entity
// snapshot store and the per-entity interpolation/extrapolation
// contract of spec.md §4.D. Grounded on the teacher's
// quakelib/client.go LerpPoint (the fraction/clamp/dropped-packet
// idiom carried over directly) generalized from a single global
// fraction to a per-entity state struct, and on cvars for the knobs
// LerpPoint itself reads.
package entity

import (
	"goquake2/cvars"
	"goquake2/mathvec"
)

const MaxEntities = 1024

// State is one entity's pose at a received snapshot time.
type State struct {
	Origin   mathvec.Vec3
	Velocity mathvec.Vec3
	Angles   mathvec.Vec3 // pitch, yaw, roll in degrees
	Frame    int
	FrameReceivedT float64
	FrameDur       float64
	AnimTime       float64
	Valid    bool
}

// Slot is the double (plus history-of-two for cubic) buffer for one
// entity index, and the live prediction-error state.
type Slot struct {
	Prev2, Prev, Curr State

	predictedAt  float64
	errVec       mathvec.Vec3
	errStartTime float64
	haveErr      bool
}

// Store owns every entity slot plus the two global snapshot
// timestamps LerpPoint's fraction is computed from.
type Store struct {
	Slots [MaxEntities]Slot

	MessageTime    float64
	MessageTimeOld float64
}

// NewSnapshot shifts history and installs a freshly received state
// for ent, mirroring the teacher's "most recent two messages" buffer
// but keyed per entity instead of globally.
func (s *Store) NewSnapshot(ent int, st State) {
	slot := &s.Slots[ent]
	slot.Prev2 = slot.Prev
	slot.Prev = slot.Curr
	slot.Curr = st
}

// RecordPredictionError stashes the authoritative-minus-predicted
// vector for the 100ms fade component D's reconciliation step
// describes.
func (s *Store) RecordPredictionError(ent int, authoritative, predicted mathvec.Vec3, now float64) {
	slot := &s.Slots[ent]
	slot.errVec = mathvec.Sub(authoritative, predicted)
	slot.errStartTime = now
	slot.haveErr = true
}

const predictionErrorFadeMS = 100

// predictionErrorOffset returns the still-fading correction for ent
// at time now, zero once the 100ms window has elapsed.
func (s *Store) predictionErrorOffset(ent int, now float64) mathvec.Vec3 {
	slot := &s.Slots[ent]
	if !slot.haveErr {
		return mathvec.Vec3{}
	}
	ageMS := (now - slot.errStartTime) * 1000
	if ageMS >= predictionErrorFadeMS {
		slot.haveErr = false
		return mathvec.Vec3{}
	}
	frac := 1 - float32(ageMS/predictionErrorFadeMS)
	return mathvec.Scale(frac, slot.errVec)
}

// LerpFraction reproduces LerpPoint's fraction/clamp/dropped-packet
// logic verbatim, generalized to take the caller's current time
// instead of reading a package-level Client.
func (s *Store) LerpFraction(now float64) float32 {
	f := s.MessageTime - s.MessageTimeOld
	if f == 0 {
		return 1
	}
	if f > 0.1 {
		s.MessageTimeOld = s.MessageTime - 0.1
		f = 0.1
	}
	frac := (now - s.MessageTimeOld) / f
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	if cvars.ClientNoLerp.Bool() {
		return 1
	}
	return float32(frac)
}
