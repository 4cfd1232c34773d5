package scene

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"color-scene/internal/colorchange"
	"color-scene/internal/gui"
	"color-scene/internal/storage"
)

// TextureSource fetches an object by key; *storage.Client satisfies it.
type TextureSource interface {
	Get(ctx context.Context, key string, opts storage.GetOptions) (storage.Object, error)
}

// Reporter records a color change without blocking; *colorchange.Reporter satisfies it.
type Reporter interface {
	Submit(c colorchange.Color, done func(*colorchange.ColorChange, error))
}

// Deps are the collaborators a scene talks to.
type Deps struct {
	Textures TextureSource
	Reporter Reporter
	Log      logrus.FieldLogger
}

// Options tune Setup.
type Options struct {
	TextureKey              string
	ValidateObjectExistence bool
	// ShowBox adds the box the frame callback spins.
	ShowBox bool
	RPM     float32
}

type textureResult struct {
	obj storage.Object
	err error
}

// Context is the state of one scene lifecycle. It is owned by the render goroutine: Setup,
// Poll, Frame and the picker callback must all run there. Only the texture fetch and mutation
// submissions run elsewhere, and they never touch the Context directly.
type Context struct {
	Camera Camera
	Light  HemisphericLight
	Env    Environment

	// Sphere and GUI are nil until the texture fetch settles and Poll finishes setup.
	Sphere *Mesh
	GUI    *GUIPlane
	// Box is only created when Options.ShowBox is set.
	Box *Mesh

	deps       Deps
	opts       Options
	pending    chan textureResult
	cancel     context.CancelFunc
	textureErr error
	ready      bool
}

// New returns an empty scene context.
func New() *Context {
	return &Context{}
}

// Setup builds the camera, light and environment, then starts fetching the sphere texture.
// It returns at once; the sphere and GUI panel are created by Poll after the fetch settles.
// A failed fetch never surfaces here.
func (sc *Context) Setup(ctx context.Context, deps Deps, opts Options) {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if opts.RPM == 0 {
		opts.RPM = DefaultRPM
	}
	sc.deps = deps
	sc.opts = opts

	sc.Camera = Camera{
		Name:          "camera1",
		Position:      V3(0, 5, -10),
		Up:            V3(0, 1, 0),
		Fovy:          45,
		AttachControl: true,
	}
	sc.Camera.SetTarget(Vec3{})

	sc.Light = HemisphericLight{
		Name:      "light",
		Direction: V3(0, 1, 0),
		Intensity: 0.7,
		Diffuse:   colorchange.RGB(1, 1, 1),
		Ground:    colorchange.RGB(0, 0, 0),
	}

	sc.Env = Environment{
		GroundSize:  15,
		GroundColor: colorchange.RGB(0.24, 0.26, 0.3),
		SkyColor:    colorchange.RGB(0.2, 0.2, 0.3),
	}

	if opts.ShowBox {
		sc.Box = &Mesh{
			Name:     "box",
			Kind:     MeshBox,
			Size:     1,
			Position: V3(-2, 1, 0),
			Material: &StandardMaterial{Name: "box material", DiffuseColor: colorchange.RGB(0.8, 0.5, 0.2)},
		}
	}

	ctx, sc.cancel = context.WithCancel(ctx)
	sc.pending = make(chan textureResult, 1)
	go sc.fetchTexture(ctx)
}

func (sc *Context) fetchTexture(ctx context.Context) {
	if sc.deps.Textures == nil {
		sc.pending <- textureResult{err: errors.New("scene: no texture source")}
		return
	}
	obj, err := sc.deps.Textures.Get(ctx, sc.opts.TextureKey, storage.GetOptions{
		ValidateObjectExistence: sc.opts.ValidateObjectExistence,
	})
	sc.pending <- textureResult{obj: obj, err: err}
}

// Poll finishes setup once the texture fetch has settled. Call once per frame; it never blocks.
// Returns true on the call that completed setup.
func (sc *Context) Poll() bool {
	if sc.ready || sc.pending == nil {
		return false
	}
	select {
	case res := <-sc.pending:
		sc.finishSetup(res)
		return true
	default:
		return false
	}
}

// Ready reports whether the sphere and GUI exist.
func (sc *Context) Ready() bool {
	return sc.ready
}

// TextureErr is the texture fetch error, if the sphere is using the fallback texture.
func (sc *Context) TextureErr() error {
	return sc.textureErr
}

// Close stops an in-flight texture fetch.
func (sc *Context) Close() {
	if sc.cancel != nil {
		sc.cancel()
	}
}

func (sc *Context) finishSetup(res textureResult) {
	tex := &Texture{Key: sc.opts.TextureKey, Path: res.obj.Path}
	if res.err != nil {
		sc.textureErr = res.err
		tex = &Texture{Key: sc.opts.TextureKey, Fallback: true}
		sc.deps.Log.WithError(res.err).WithField("key", sc.opts.TextureKey).Warn("texture fetch failed, using fallback")
	} else {
		sc.deps.Log.WithFields(logrus.Fields{
			"key":   res.obj.Key,
			"type":  res.obj.ContentType,
			"bytes": res.obj.Size,
		}).Info("texture fetched")
	}

	sc.Sphere = &Mesh{
		Name:     "sphere1",
		Kind:     MeshSphere,
		Segments: 16,
		Size:     2,
		Position: V3(0, 1, 0),
	}

	plane := &Mesh{Name: "plane", Kind: MeshPlane, Size: 1, Position: V3(1.4, 1.5, 0.4)}
	panel := gui.NewStackPanel()

	header := gui.NewTextBlock("header", "Color GUI")
	header.Height = gui.MustLength("200px")
	header.Color, _ = gui.ParseColor("white")
	header.TextHorizontalAlignment = gui.AlignCenter
	header.FontSize = gui.MustLength("200")
	panel.AddControl(header)

	picker := gui.NewColorPicker("picker")
	sc.Sphere.Material = &StandardMaterial{Name: "sphere material", DiffuseColor: colorchange.RGB(1, 1, 1)}
	picker.SetValue(sc.Sphere.Material.DiffuseColor)
	picker.HorizontalAlignment = gui.AlignCenter
	picker.Height = gui.MustLength("800px")
	picker.Width = gui.MustLength("800px")

	sc.Sphere.Material.DiffuseTexture = tex

	picker.OnValueChanged(sc.OnColorChanged)
	panel.AddControl(picker)

	sc.GUI = &GUIPlane{Mesh: plane, Panel: panel, Header: header, Picker: picker}
	sc.ready = true
}

// OnColorChanged applies c to the sphere material and submits one color-change record.
// The material is updated before it returns; the submission completes in the background and
// only its failure is logged.
func (sc *Context) OnColorChanged(c colorchange.Color) {
	if sc.Sphere != nil && sc.Sphere.Material != nil {
		sc.Sphere.Material.DiffuseColor = c
	}
	if sc.deps.Reporter == nil {
		return
	}
	log := sc.deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	sc.deps.Reporter.Submit(c, func(rec *colorchange.ColorChange, err error) {
		if err != nil {
			log.WithError(err).WithField("color", c.Hex()).Error("color change not recorded")
			return
		}
		if rec != nil {
			log.WithFields(logrus.Fields{"id": rec.ID, "color": c.Hex()}).Debug("color change recorded")
		}
	})
}
