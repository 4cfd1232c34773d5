package scene

import (
	"color-scene/internal/colorchange"
	"color-scene/internal/gui"
)

// Vec3 is a position, direction or Euler rotation (radians).
type Vec3 struct {
	X, Y, Z float32
}

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Camera is a free camera. When AttachControl is set the render host lets the user fly it.
type Camera struct {
	Name          string
	Position      Vec3
	Target        Vec3
	Up            Vec3
	Fovy          float32
	AttachControl bool
}

// SetTarget points the camera at t.
func (c *Camera) SetTarget(t Vec3) {
	c.Target = t
}

// HemisphericLight lights surfaces facing Direction with Diffuse and surfaces facing away with
// Ground, blending in between.
type HemisphericLight struct {
	Name      string
	Direction Vec3
	Intensity float32
	Diffuse   colorchange.Color
	Ground    colorchange.Color
}

// Environment is the default backdrop: a ground plane and a sky color.
type Environment struct {
	GroundSize  float32
	GroundColor colorchange.Color
	SkyColor    colorchange.Color
}

// Texture references image data on disk. Fallback textures have no Path and are generated by
// the renderer.
type Texture struct {
	Key      string
	Path     string
	Fallback bool
}

// StandardMaterial is a diffuse color optionally modulated by a diffuse texture.
type StandardMaterial struct {
	Name           string
	DiffuseColor   colorchange.Color
	DiffuseTexture *Texture
}

// MeshKind selects the primitive the renderer generates.
type MeshKind int

const (
	MeshSphere MeshKind = iota
	MeshBox
	MeshPlane
)

// Mesh is a primitive instance. Size is the diameter for spheres and the edge length otherwise.
type Mesh struct {
	Name     string
	Kind     MeshKind
	Segments int
	Size     float32
	Position Vec3
	Rotation Vec3
	Material *StandardMaterial
}

// GUIPlane is a plane in the scene hosting a GUI panel.
type GUIPlane struct {
	Mesh   *Mesh
	Panel  *gui.StackPanel
	Header *gui.TextBlock
	Picker *gui.ColorPicker
}
