package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"color-scene/internal/colorchange"
	"color-scene/internal/logger"
	"color-scene/internal/scene"
)

// Fallback texture used when the sphere texture could not be fetched.
const (
	fallbackTexSize   = 256
	fallbackTexChecks = 8
)

var (
	fallbackDark  = rl.NewColor(60, 60, 60, 255)
	fallbackLight = rl.NewColor(200, 200, 200, 255)
)

// Options toggle the overlays drawn on top of the scene.
type Options struct {
	ShowFPS bool
	ShowLog bool
}

type gpuMesh struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Renderer draws a scene.Context with raylib. GPU resources are created lazily on the first
// Draw after they are needed, so every raylib call happens on the thread that owns the GL context.
type Renderer struct {
	log    *logger.Logger
	shader *hemiShader
	meshes map[*scene.Mesh]*gpuMesh
	ground *scene.Mesh

	// textures is keyed by the scene texture it was loaded for; a new *scene.Texture reloads.
	textures map[*scene.Texture]rl.Texture2D

	camera      rl.Camera3D
	cameraReady bool

	panel *panelView
	hud   *hud
}

// NewRenderer returns a Renderer that reports resource problems to log.
func NewRenderer(log *logger.Logger, opts Options) *Renderer {
	return &Renderer{
		log:      log,
		meshes:   make(map[*scene.Mesh]*gpuMesh),
		textures: make(map[*scene.Texture]rl.Texture2D),
		panel:    newPanelView(),
		hud:      newHUD(log, opts),
	}
}

// ClearColor is the environment sky color, used to clear the frame.
func (r *Renderer) ClearColor(sc *scene.Context) rl.Color {
	return sc.Env.SkyColor.RGBA8()
}

// Update moves the camera. With AttachControl, holding the right mouse button flies a free
// camera so the left button stays free for the GUI.
func (r *Renderer) Update(sc *scene.Context) {
	if !r.cameraReady {
		r.camera = rl.Camera3D{
			Position:   vec(sc.Camera.Position),
			Target:     vec(sc.Camera.Target),
			Up:         vec(sc.Camera.Up),
			Fovy:       sc.Camera.Fovy,
			Projection: rl.CameraPerspective,
		}
		r.cameraReady = true
	}
	if !sc.Camera.AttachControl {
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		rl.DisableCursor()
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		rl.EnableCursor()
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		rl.UpdateCamera(&r.camera, rl.CameraFree)
		sc.Camera.Position = fromVec(r.camera.Position)
		sc.Camera.Target = fromVec(r.camera.Target)
	}
}

// Draw renders the 3D scene, then the GUI panel and HUD as a 2D overlay.
func (r *Renderer) Draw(sc *scene.Context) {
	if r.shader == nil {
		if r.shader = loadHemiShader(); r.shader == nil {
			r.log.Warn("hemispheric shader failed to compile, using default shading")
			r.shader = &hemiShader{}
		}
	}
	if rl.IsShaderValid(r.shader.shader) {
		r.shader.apply(sc.Light, r.camera.Position)
	}

	rl.BeginMode3D(r.camera)
	r.drawGround(sc.Env)
	if sc.Box != nil {
		r.drawMesh(sc.Box)
	}
	if sc.Sphere != nil {
		r.drawMesh(sc.Sphere)
	}
	rl.EndMode3D()

	if sc.GUI != nil {
		anchor := rl.GetWorldToScreen(vec(sc.GUI.Mesh.Position), r.camera)
		r.panel.draw(sc.GUI, anchor)
	} else {
		drawLoading()
	}
	r.hud.draw()
}

// Close releases GPU resources. Call before the window closes.
func (r *Renderer) Close() {
	for _, tex := range r.textures {
		rl.UnloadTexture(tex)
	}
	if r.shader != nil && rl.IsShaderValid(r.shader.shader) {
		r.shader.unload()
	}
}

func (r *Renderer) drawGround(env scene.Environment) {
	if r.ground == nil {
		r.ground = &scene.Mesh{Name: "ground", Kind: scene.MeshPlane, Material: &scene.StandardMaterial{Name: "ground"}}
	}
	r.ground.Size = env.GroundSize
	r.ground.Material.DiffuseColor = env.GroundColor
	r.drawMesh(r.ground)
}

func (r *Renderer) drawMesh(m *scene.Mesh) {
	g := r.ensureMesh(m)
	diffuse := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if m.Material != nil {
		diffuse = m.Material.DiffuseColor.RGBA8()
		if tex, ok := r.texture(m.Material.DiffuseTexture); ok {
			rl.SetMaterialTexture(&g.mtl, rl.MapAlbedo, tex)
		}
	}
	if albedo := g.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = diffuse
	}

	scale := m.Size
	if scale == 0 {
		scale = 1
	}
	transform := rl.MatrixMultiply(
		rl.MatrixMultiply(
			rl.MatrixScale(scale, scale, scale),
			rl.MatrixRotateXYZ(vec(m.Rotation)),
		),
		rl.MatrixTranslate(m.Position.X, m.Position.Y, m.Position.Z),
	)
	rl.DrawMesh(g.mesh, g.mtl, transform)
}

// ensureMesh creates unit-sized geometry for m on first use; Size is applied as a scale.
func (r *Renderer) ensureMesh(m *scene.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	var mesh rl.Mesh
	switch m.Kind {
	case scene.MeshSphere:
		seg := m.Segments
		if seg <= 0 {
			seg = 16
		}
		// Segments is the ring count; slices go all the way around, so twice as many.
		mesh = rl.GenMeshSphere(0.5, seg, seg*2)
	case scene.MeshBox:
		mesh = rl.GenMeshCube(1, 1, 1)
	case scene.MeshPlane:
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	}
	mtl := rl.LoadMaterialDefault()
	if r.shader != nil && rl.IsShaderValid(r.shader.shader) {
		mtl.Shader = r.shader.shader
	}
	g := &gpuMesh{mesh: mesh, mtl: mtl}
	r.meshes[m] = g
	return g
}

// texture returns the GPU texture for t, loading it (or generating the fallback) on first use.
func (r *Renderer) texture(t *scene.Texture) (rl.Texture2D, bool) {
	if t == nil {
		return rl.Texture2D{}, false
	}
	if tex, ok := r.textures[t]; ok {
		return tex, rl.IsTextureValid(tex)
	}
	var tex rl.Texture2D
	if !t.Fallback && t.Path != "" {
		tex = rl.LoadTexture(t.Path)
		if !rl.IsTextureValid(tex) {
			r.log.WithField("path", t.Path).Warn("texture could not be decoded, using fallback")
		}
	}
	if !rl.IsTextureValid(tex) {
		img := rl.GenImageChecked(fallbackTexSize, fallbackTexSize, fallbackTexSize/fallbackTexChecks, fallbackTexSize/fallbackTexChecks, fallbackDark, fallbackLight)
		tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}
	r.textures[t] = tex
	return tex, rl.IsTextureValid(tex)
}

func drawLoading() {
	const text = "Loading texture..."
	const size = 20
	w := rl.MeasureText(text, size)
	rl.DrawText(text, (int32(rl.GetScreenWidth())-w)/2, int32(rl.GetScreenHeight())/2, size, rl.RayWhite)
}

func vec(v scene.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func fromVec(v rl.Vector3) scene.Vec3 {
	return scene.V3(v.X, v.Y, v.Z)
}

func colorOf(c colorchange.Color) rl.Color {
	return c.RGBA8()
}
