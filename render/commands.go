// CPU-side command recording, grounded on the gogpu-gg native backend's
// CommandEncoder/RenderPass split (backend/native/commands.go): a pass
// groups draw calls under one pipeline/target, and the encoder orders
// passes. This package records descriptors instead of calling
// gpucontext's RenderPass methods directly, so pass sequencing (this
// file) stays decoupled from the exact bind-group/buffer plumbing a
// real backend supplies.
package render

// PassKind names one of the fixed sequence's stages, per spec.md
// §4.H's pass list.
type PassKind int

const (
	PassReflection PassKind = iota
	PassWorldOpaque
	PassEntityOpaque
	PassEntityTranslucent
	PassSky
	PassWorldTranslucent
	PassParticles
	PassPostProcess
	PassUI
)

func (k PassKind) String() string {
	switch k {
	case PassReflection:
		return "Reflection"
	case PassWorldOpaque:
		return "WorldOpaque"
	case PassEntityOpaque:
		return "EntityOpaque"
	case PassEntityTranslucent:
		return "EntityTranslucent"
	case PassSky:
		return "Sky"
	case PassWorldTranslucent:
		return "WorldTranslucent"
	case PassParticles:
		return "Particles"
	case PassPostProcess:
		return "PostProcess"
	case PassUI:
		return "UI"
	default:
		return "Unknown"
	}
}

// DrawCall is one recorded draw: a pipeline key (resolved to an actual
// gpucontext pipeline by the backend at submit time), the texture and
// lightmap page bound for this batch, and the vertex range.
type DrawCall struct {
	PipelineKey  string
	TextureID    uint32
	LightmapPage int32
	FirstVertex  uint32
	VertexCount  uint32
	Indexed      bool
	FirstIndex   uint32
	IndexCount   uint32
}

// Pass is one recorded render pass: a target (offscreen image name, or
// "" for the swapchain's current frame) and its ordered draw calls.
type Pass struct {
	Kind    PassKind
	Target  string
	Clear   bool
	Draws   []DrawCall
}

// CommandList is a frame's fully recorded pass sequence, built up by
// Recorder and handed to the backend at EndFrame/submit time.
type CommandList struct {
	Passes []Pass
}

// Recorder accumulates passes/draws in sequence order; BeginFrame
// hands each frame a fresh Recorder via NewRecorder.
type Recorder struct {
	list CommandList
	cur  *Pass
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// BeginPass starts a new pass, closing any pass already open.
func (r *Recorder) BeginPass(kind PassKind, target string, clear bool) {
	r.EndPass()
	r.list.Passes = append(r.list.Passes, Pass{Kind: kind, Target: target, Clear: clear})
	r.cur = &r.list.Passes[len(r.list.Passes)-1]
}

// Draw appends a draw call to the currently open pass; a no-op if no
// pass is open (a programmer error upstream, not a runtime condition
// worth erroring on here).
func (r *Recorder) Draw(dc DrawCall) {
	if r.cur == nil {
		return
	}
	r.cur.Draws = append(r.cur.Draws, dc)
}

func (r *Recorder) EndPass() {
	r.cur = nil
}

// Finish closes any open pass and returns the recorded list.
func (r *Recorder) Finish() CommandList {
	r.EndPass()
	return r.list
}
