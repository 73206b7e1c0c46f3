// Package sprite implements component C's SP2 ("IDSP") half:
// orientation-billboarded textured quads. Grounded on the teacher's
// spr package shape (frame list + per-frame origin offset),
// retargeted from Quake's SPR/IDSP format to Quake II's SP2 per
// spec.md §6.
package sprite

import (
	"bytes"
	"encoding/binary"

	"goquake2/enginectx"
)

const (
	Magic   = 'I' | 'D'<<8 | 'S'<<16 | 'P'<<24
	Version = 2
)

type rawHeader struct {
	Ident, Version int32
	NumFrames      int32
}

const rawHeaderSize = 12

type rawFrame struct {
	Width, Height   int32
	OriginX, OriginY int32
}

const rawFrameSize = 16

// Frame is one decoded sprite frame: a skin name plus the billboard's
// origin offset from its center, matching the teacher's per-frame
// origin convention.
type Frame struct {
	Width, Height int
	OriginX, OriginY int
	SkinName      string
}

// Model is a fully decoded SP2: an ordered list of frames selected by
// the entity's current animation index.
type Model struct {
	Name   string
	Frames []Frame
}

// Load parses a complete SP2 file.
func Load(name string, b []byte) (*Model, error) {
	if len(b) < rawHeaderSize {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "sp2 file too short")
	}
	r := bytes.NewReader(b)
	var hdr rawHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if hdr.Ident != Magic {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "bad sp2 magic %x", hdr.Ident)
	}
	if hdr.Version != Version {
		return nil, enginectx.Wrapf(enginectx.UnsupportedVersion, name, "sp2 version %d", hdr.Version)
	}
	if hdr.NumFrames <= 0 {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "empty sp2 frame list")
	}

	m := &Model{Name: name, Frames: make([]Frame, hdr.NumFrames)}
	for i := 0; i < int(hdr.NumFrames); i++ {
		var rf rawFrame
		if err := binary.Read(r, binary.LittleEndian, &rf); err != nil {
			return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
		}
		var skinName [64]byte
		if err := binary.Read(r, binary.LittleEndian, &skinName); err != nil {
			return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
		}
		end := bytes.IndexByte(skinName[:], 0)
		if end < 0 {
			end = len(skinName)
		}
		m.Frames[i] = Frame{
			Width: int(rf.Width), Height: int(rf.Height),
			OriginX: int(rf.OriginX), OriginY: int(rf.OriginY),
			SkinName: string(skinName[:end]),
		}
	}
	return m, nil
}
