package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"color-scene/internal/scene"
)

// Hemispheric lighting: every surface gets a blend of the sky color (facing the light
// direction) and the ground color (facing away), plus a soft Blinn-Phong highlight.
// colDiffuse is the material diffuse color and texture0 its diffuse texture. mvp, matModel and
// matNormal are bound by raylib from their default names.
const (
	hemiVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 1.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	hemiFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 skyColor;
uniform vec3 groundColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float hemi = dot(N, L) * 0.5 + 0.5;
  vec3 light = mix(groundColor, skyColor, hemi) * lightIntensity;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength * lightIntensity;
  finalColor = vec4(tint.rgb * light + skyColor * spec, tint.a);
}
`
)

const (
	specularPower    = float32(64)
	specularStrength = float32(0.25)
)

type hemiShader struct {
	shader rl.Shader
	locs   map[string]int32
}

func loadHemiShader() *hemiShader {
	sh := rl.LoadShaderFromMemory(hemiVS, hemiFS)
	if !rl.IsShaderValid(sh) {
		return nil
	}
	h := &hemiShader{shader: sh, locs: make(map[string]int32)}
	for _, name := range []string{"viewPos", "lightDir", "skyColor", "groundColor", "lightIntensity", "specularPower", "specularStrength"} {
		h.locs[name] = rl.GetShaderLocation(sh, name)
	}
	return h
}

func (h *hemiShader) vec3(name string, v [3]float32) {
	if loc := h.locs[name]; loc >= 0 {
		rl.SetShaderValueV(h.shader, loc, v[:], rl.ShaderUniformVec3, 1)
	}
}

func (h *hemiShader) float(name string, v float32) {
	if loc := h.locs[name]; loc >= 0 {
		rl.SetShaderValue(h.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

// apply uploads the per-frame light and camera uniforms.
func (h *hemiShader) apply(light scene.HemisphericLight, viewPos rl.Vector3) {
	h.vec3("viewPos", [3]float32{viewPos.X, viewPos.Y, viewPos.Z})
	h.vec3("lightDir", [3]float32{light.Direction.X, light.Direction.Y, light.Direction.Z})
	h.vec3("skyColor", [3]float32{float32(light.Diffuse.R), float32(light.Diffuse.G), float32(light.Diffuse.B)})
	h.vec3("groundColor", [3]float32{float32(light.Ground.R), float32(light.Ground.G), float32(light.Ground.B)})
	h.float("lightIntensity", light.Intensity)
	h.float("specularPower", specularPower)
	h.float("specularStrength", specularStrength)
}

func (h *hemiShader) unload() {
	rl.UnloadShader(h.shader)
}
