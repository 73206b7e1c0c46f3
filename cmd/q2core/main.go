// Command q2core is the minimal driver wiring every component
// together: cvar/cmd registration, the console overlay as conlog's
// backing writer, texture/lightmap caches over a no-op software
// uploader, a loaded (or empty) world model, an optional MD2/SP2
// resolved through entity.Store into the frame's entity list, a
// reflection scan, one render.Driver BeginFrame/EndFrame cycle around
// BuildFrame, the post-process chain and console compositing over a
// placeholder framebuffer, and a screenshot capture of whatever the
// software uploader last received. It exists to exercise the wiring,
// not to open a window — a real build swaps the no-op uploader and
// NullDeviceProvider for a gpucontext-backed device, reads back the
// real framebuffer instead of a placeholder Image, and drives
// BeginFrame/EndFrame from an actual input/timing loop instead of
// running once and exiting.
package main

import (
	"flag"
	"fmt"
	"os"

	"goquake2/alias"
	"goquake2/bsp"
	"goquake2/cmd"
	"goquake2/conlog"
	"goquake2/console"
	"goquake2/cvar"
	"goquake2/cvars"
	"goquake2/entity"
	"goquake2/filesystem"
	"goquake2/lightmap"
	"goquake2/mathvec"
	"goquake2/postprocess"
	"goquake2/reflection"
	"goquake2/render"
	"goquake2/screenshot"
	"goquake2/sprite"
	"goquake2/texture"
	"goquake2/visibility"
)

// softwareUploader is a no-op texture.Uploader + lightmap.Uploader
// backing used when no real gpucontext device is available, the same
// role a recording fake plays in this repo's package tests.
type softwareUploader struct {
	next   uint32
	maxTex int32
}

func newSoftwareUploader() *softwareUploader {
	return &softwareUploader{maxTex: 4096}
}

func (u *softwareUploader) CreateTexture(desc texture.TextureDescriptor) (texture.Handle, error) {
	u.next++
	return texture.Handle(u.next), nil
}
func (u *softwareUploader) Upload(h texture.Handle, x, y, w, h2 int32, rgba []byte) error { return nil }
func (u *softwareUploader) Destroy(h texture.Handle)                                     {}
func (u *softwareUploader) MaxTextureSize() int32                                        { return u.maxTex }
func (u *softwareUploader) MaxAnisotropy() float32                                       { return 16 }

func (u *softwareUploader) CreatePage(width, height uint32) (lightmap.Handle, error) {
	u.next++
	return lightmap.Handle(u.next), nil
}
func (u *softwareUploader) UploadRect(h lightmap.Handle, x, y, w, hgt int32, rgb []byte) error {
	return nil
}

func main() {
	mapPath := flag.String("map", "", "virtual path of a .bsp to load; empty starts with an empty world")
	modelPath := flag.String("model", "", "virtual path of an MD2 alias model to resolve into the opaque entity pass; empty skips it")
	spritePath := flag.String("sprite", "", "virtual path of an SP2 sprite to resolve into the translucent entity pass; empty skips it")
	gameDir := flag.String("gamedir", ".", "game directory, for scrnshot/")
	takeShot := flag.Bool("screenshot", false, "capture a placeholder screenshot after building one frame")
	underwater := flag.Bool("underwater", false, "set RDFUnderwater on the built frame, suppressing reflection passes")
	flag.Parse()

	con := console.New()
	conlog.SetPrintf(func(format string, v ...interface{}) {
		con.Printf(format, v...)
		fmt.Printf(format, v...)
	})
	conlog.SetSavePrintf(func(format string, v ...interface{}) {
		con.Printf(format, v...)
		fmt.Printf(format, v...)
	})

	registerCommands(con)

	conlog.Printf("q2core starting, gamedir=%s\n", *gameDir)

	dev := newSoftwareUploader()
	texMgr := texture.NewManager(dev)
	texMgr.SetGamma(1)
	texMgr.SetIntensity(1)
	texMgr.SetAnisotropy(cvars.RAnisotropy.Value())
	texMgr.SetRoundDown(cvars.GLRoundDown.Bool())
	texMgr.BeginRegistration()

	lmEngine := lightmap.NewEngine(dev, 1<<uint(cvars.ROverbrightBits.Value()))
	lmEngine.Lights.Decay(0, 0)

	var model *bsp.Model
	if *mapPath != "" {
		loader := filesystem.NewMapLoader()
		data, err := os.ReadFile(*mapPath)
		if err != nil {
			conlog.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
		loader.Put(*mapPath, data)
		model, err = bsp.Load(loader, *mapPath)
		if err != nil {
			conlog.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
		conlog.Printf("loaded %s: %d surfaces, %d leafs\n", *mapPath, len(model.Surfaces), len(model.Leafs))
	} else {
		model = &bsp.Model{}
		conlog.Printf("starting with an empty world model\n")
	}

	viewOrg := mathvec.Vec3{}
	frustum := visibility.SetFrustum(90, 73.7, viewOrg,
		mathvec.Vec3{X: 1}, mathvec.Vec3{Y: -1}, mathvec.Vec3{Z: 1})

	walker := &visibility.Walker{}
	if len(model.Leafs) > 0 {
		cluster, _ := model.PointInLeaf(viewOrg)
		walker.MarkLeaves(model, cluster, nil, false)
	}

	entStore := &entity.Store{}
	var entities []render.EntityDraw

	if *modelPath != "" {
		data, err := os.ReadFile(*modelPath)
		if err != nil {
			conlog.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
		aliasModel, err := alias.Load(*modelPath, data)
		if err != nil {
			conlog.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
		entStore.NewSnapshot(0, entity.State{Origin: viewOrg})
		xf := entStore.Resolve(0, 0.5, 0, 1)
		entities = append(entities, render.EntityDraw{
			Origin:      xf.Origin,
			VertexCount: uint32(len(aliasModel.Tris) * 3),
		})
		conlog.Printf("loaded alias model %s: %d frames, %d triangles\n",
			*modelPath, len(aliasModel.Frames), len(aliasModel.Tris))
	}

	if *spritePath != "" {
		data, err := os.ReadFile(*spritePath)
		if err != nil {
			conlog.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
		spriteModel, err := sprite.Load(*spritePath, data)
		if err != nil {
			conlog.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
		entStore.NewSnapshot(1, entity.State{Origin: viewOrg})
		xf := entStore.Resolve(1, 0.5, 0, 1)
		entities = append(entities, render.EntityDraw{
			Origin:      xf.Origin,
			Translucent: true,
			VertexCount: 4,
		})
		conlog.Printf("loaded sprite %s: %d frames\n", *spritePath, len(spriteModel.Frames))
	}

	if len(model.Nodes) > 0 {
		reflectors := reflection.FindReflectors(model)
		if len(reflectors) > 0 {
			conlog.Printf("found %d reflective water surface(s)\n", len(reflectors))
		}

		var flags render.RefDefFlags
		if *underwater {
			flags = render.RDFUnderwater
		}

		driver := render.NewDriver(render.NullDeviceProvider{})
		frame, err := driver.BeginFrame(render.UniformData{})
		if err != nil {
			conlog.Printf("ERROR: BeginFrame: %v\n", err)
			os.Exit(1)
		}

		frame.Commands = render.BuildFrame(render.SceneInputs{
			Model:      model,
			Frustum:    frustum,
			ViewOrg:    viewOrg,
			CurFrame:   walker.CurFrame,
			Flags:      flags,
			Entities:   entities,
			Reflectors: reflectors,
		})
		driver.EndFrame(frame)

		conlog.Printf("built frame with %d passes\n", len(frame.Commands.Passes))
		for _, p := range frame.Commands.Passes {
			conlog.Printf("  pass %s: %d draws\n", p.Kind, len(p.Draws))
		}

		runPostProcessAndComposite(con)
	} else {
		conlog.Printf("empty world model, skipping frame build\n")
	}

	if *takeShot {
		rb := &screenshot.Readback{Width: 4, Height: 4, RGBA: make([]byte, 4*4*4)}
		format := screenshot.ParseFormat(cvars.VkScreenshotFormat.String())
		name, err := screenshot.Capture(*gameDir, rb, format, int(cvars.VkScreenshotQuality.Value()))
		if err != nil {
			conlog.Printf("ERROR: screenshot: %v\n", err)
		} else {
			conlog.Printf("wrote %s\n", name)
		}
	}
}

// runPostProcessAndComposite drives component I's full chain over a
// placeholder CPU-resident framebuffer (this binary has no real
// gpucontext device to read a rendered image back from) and reports
// how many of component J's visible console lines would composite
// over the result, per spec.md §4's "H submits -> I runs post chain
// -> J composites overlays -> present" data flow.
func runPostProcessAndComposite(con *console.Console) {
	const w, h = 64, 64
	color := postprocess.NewImage(w, h)
	depth := &postprocess.DepthBuffer{Width: w, Height: h, Depth: make([]float32, w*h)}
	toView := func(x, y int, d float32) [3]float32 {
		return [3]float32{float32(x), float32(y), d}
	}

	opt := postprocess.Options{
		SSAOEnabled:     cvars.RSSAO.Bool(),
		SSAOIntensity:   cvars.RSSAOIntensity.Value(),
		SSAORadius:      cvars.RSSAORadius.Value(),
		BloomEnabled:    cvars.RBloom.Bool(),
		BloomIntensity:  cvars.RBloomIntensity.Value(),
		BloomThreshold:  cvars.RBloomThreshold.Value(),
		FSREnabled:      cvars.RFSR.Bool(),
		FSRScale:        cvars.RFSRScale.Value(),
		FSRSharpness:    cvars.RFSRSharpness.Value(),
		TemporalEnabled: false,
		FXAAEnabled:     cvars.RFXAA.Bool(),
		Gamma:           cvars.VidGamma.Value(),
	}

	out, _ := postprocess.Run(postprocess.Inputs{Color: color, Depth: depth, ToView: toView}, opt)

	lines := con.VisibleLines(5)
	conlog.Printf("post chain ran over a %dx%d placeholder frame; %d console line(s) composite over it\n",
		out.Width, out.Height, len(lines))
}

func registerCommands(con *console.Console) {
	cmd.Must(cmd.AddCommand("clear", func(cmd.Arguments) error {
		con.Clear()
		return nil
	}))
	cmd.Must(cmd.AddCommand("cvarlist", func(cmd.Arguments) error {
		for _, cv := range cvar.All() {
			conlog.Printf("%s = %s\n", cv.Name(), cv.String())
		}
		return nil
	}))
}
