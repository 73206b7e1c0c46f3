// Package render implements component H: the renderer driver that
// owns the GPU device, the swapchain state machine, the per-frame
// uniform buffer, and the fixed pass sequence. Grounded on the
// teacher's quakelib/renderer.go (frustum/CullBox ownership carried
// into visibility, reused here) and quakelib/draw.go's pass-ordering
// idiom, retargeted from direct gl.* calls to
// github.com/gogpu/gpucontext + github.com/gogpu/gputypes. Each
// frame's command buffer is tagged with github.com/google/uuid (passes
// carry no id of their own), the
// teacher's own dependency, previously used for session ids.
package render

import (
	"goquake2/enginectx"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/google/uuid"
)

// SwapchainState is the state machine of spec.md §4.H: "Uninitialized
// → Ready → (AcquireFail? → Recreate → Ready) → Presenting → Ready."
type SwapchainState int

const (
	Uninitialized SwapchainState = iota
	Ready
	Recreate
	Presenting
)

func (s SwapchainState) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Recreate:
		return "Recreate"
	case Presenting:
		return "Presenting"
	default:
		return "Unknown"
	}
}

// FramesInFlight bounds the command-buffer ring; the driver never
// lets more than this many frames outrun the GPU before blocking.
const FramesInFlight = 2

// UniformData is the per-frame uniform buffer contents, per
// spec.md §4.H step 2.
type UniformData struct {
	View, Projection         [16]float32
	PrevView, PrevProjection [16]float32
	JitterX, JitterY         float32
	Time                     float32
}

// Frame is one in-flight frame's bookkeeping: its tagged command
// buffer id and the uniform snapshot it was built from.
type Frame struct {
	ID       uuid.UUID
	Uniforms UniformData
	Commands CommandList
}

// Driver owns the device/queue handles (opaque beyond their
// lifecycle) and sequences passes per frame.
type Driver struct {
	provider gpucontext.DeviceProvider
	device   gpucontext.Device
	queue    gpucontext.Queue

	state      SwapchainState
	ring       [FramesInFlight]Frame
	frameIndex int

	prevView, prevProjection [16]float32
}

// NewDriver takes ownership of provider's device/queue, matching
// component H's "owns the GPU device" contract.
func NewDriver(provider gpucontext.DeviceProvider) *Driver {
	d := &Driver{
		provider: provider,
		device:   provider.Device(),
		queue:    provider.Queue(),
		state:    Uninitialized,
	}
	d.state = Ready
	return d
}

// NullDeviceProvider satisfies gpucontext.DeviceProvider with nil
// device/queue/adapter handles, grounded on gogpu-gg's
// render.NullDeviceHandle (its own "CPU-only rendering where no GPU
// is available" null object). cmd/q2core drives the swapchain state
// machine with this instead of a real backend so BuildFrame's caller
// exercises BeginFrame/EndFrame without needing an actual device.
type NullDeviceProvider struct{}

func (NullDeviceProvider) Device() gpucontext.Device { return nil }
func (NullDeviceProvider) Queue() gpucontext.Queue   { return nil }
func (NullDeviceProvider) Adapter() gpucontext.Adapter { return nil }
func (NullDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ gpucontext.DeviceProvider = NullDeviceProvider{}

// State reports the swapchain state machine's current phase.
func (d *Driver) State() SwapchainState { return d.state }

// RequestRecreate transitions Ready -> Recreate, for resize,
// mode-change cvars, or an out-of-date surface; the driver drains
// in-flight frames before the next BeginFrame proceeds.
func (d *Driver) RequestRecreate() {
	if d.state == Presenting {
		d.drainInFlight()
	}
	d.state = Recreate
}

func (d *Driver) drainInFlight() {
	for i := range d.ring {
		d.ring[i] = Frame{}
	}
}

// AcquireFailed transitions Presenting -> Recreate on a swapchain
// acquire failure (out-of-date surface, device lost).
func (d *Driver) AcquireFailed() {
	d.drainInFlight()
	d.state = Recreate
}

// FinishRecreate transitions Recreate -> Ready once the swapchain has
// been rebuilt by the caller (resize handling lives outside this
// package, the gpucontext-provided swapchain's concern).
func (d *Driver) FinishRecreate() {
	d.state = Ready
}

// BeginFrame acquires the next ring slot and starts a tagged command
// buffer, per spec.md §4.H step 1.
func (d *Driver) BeginFrame(uniforms UniformData) (*Frame, error) {
	if d.state != Ready {
		return nil, enginectx.Wrapf(enginectx.InitializationFailure, "render",
			"BeginFrame called in state %s", d.state)
	}
	uniforms.PrevView = d.prevView
	uniforms.PrevProjection = d.prevProjection

	slot := &d.ring[d.frameIndex%FramesInFlight]
	*slot = Frame{ID: uuid.New(), Uniforms: uniforms}
	d.frameIndex++
	d.state = Presenting
	return slot, nil
}

// EndFrame records this frame's view/projection as next frame's
// "previous", for motion-vector reconstruction, and returns to Ready.
func (d *Driver) EndFrame(f *Frame) {
	d.prevView = f.Uniforms.View
	d.prevProjection = f.Uniforms.Projection
	d.state = Ready
}
