package primitives

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// mesh holds the GPU mesh and lit material of one shape. Created lazily on first Draw.
type mesh struct {
	mesh rl.Mesh
	mtl  rl.Material
	// offset moves the mesh in model space so position is the shape's center.
	offset mgl32.Vec3
}

// Registry draws unit-sized lit shapes ("cube", "cylinder") with a per-draw tint. Meshes are created
// on first use so GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	meshes   map[string]*mesh
	shader   rl.Shader
	viewPos  mgl32.Vec3
	lightDir mgl32.Vec3
}

func NewRegistry() *Registry {
	return &Registry{
		meshes:   make(map[string]*mesh),
		lightDir: mgl32.Vec3{0.5, 1, 0.5},
	}
}

// SetView sets the camera position and direction to the light. Call once per frame before Draw.
func (r *Registry) SetView(viewPos, lightDir mgl32.Vec3) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Registry) ensure(shape string) *mesh {
	if m, ok := r.meshes[shape]; ok {
		return m
	}
	var m *mesh
	switch shape {
	case "cube":
		m = &mesh{mesh: rl.GenMeshCube(1, 1, 1)}
	case "cylinder":
		// raylib cylinders stand on Y=0.
		m = &mesh{mesh: rl.GenMeshCylinder(0.5, 1, cylinderSlices), offset: mgl32.Vec3{0, -0.5, 0}}
	default:
		return nil
	}
	if !rl.IsShaderValid(r.shader) {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
	}
	m.mtl = rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		m.mtl.Shader = r.shader
	}
	r.meshes[shape] = m
	return m
}

const cylinderSlices = 16

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// Lighting defaults.
var (
	ambient    = [4]float32{0.2, 0.22, 0.26, 1.0}
	lightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	lightIntensity   = float32(0.75)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

func (r *Registry) setUniforms() {
	if !rl.IsShaderValid(r.shader) {
		return
	}
	sh := r.shader
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb, lc := ambient, lightColor
	vec3 := map[string][]float32{"viewPos": viewPos[:], "lightDir": lightDir[:], "lightColor": lc[:]}
	for name, v := range vec3 {
		if loc := rl.GetShaderLocation(sh, name); loc >= 0 {
			rl.SetShaderValueV(sh, loc, v, rl.ShaderUniformVec3, 1)
		}
	}
	if loc := rl.GetShaderLocation(sh, "ambient"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	scalars := map[string]float32{
		"lightIntensity":   lightIntensity,
		"specularPower":    specularPower,
		"specularStrength": specularStrength,
	}
	for name, v := range scalars {
		if loc := rl.GetShaderLocation(sh, name); loc >= 0 {
			rl.SetShaderValue(sh, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
}

// Draw draws shape centered at position with scale (zero components mean 1) and tint.
// Must be called between BeginMode3D and EndMode3D. Unknown shapes are skipped.
func (r *Registry) Draw(shape string, position, scale mgl32.Vec3, tint color.RGBA) {
	m := r.ensure(shape)
	if m == nil {
		return
	}
	r.setUniforms()
	for i := range scale {
		if scale[i] == 0 {
			scale[i] = 1
		}
	}
	if albedo := m.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	transform := rl.MatrixMultiply(
		rl.MatrixMultiply(
			rl.MatrixTranslate(m.offset[0], m.offset[1], m.offset[2]),
			rl.MatrixScale(scale[0], scale[1], scale[2])),
		rl.MatrixTranslate(position[0], position[1], position[2]))
	rl.DrawMesh(m.mesh, m.mtl, transform)
}

// DrawWires outlines the bounding box of a shape, e.g. for hover feedback.
func DrawWires(position, scale mgl32.Vec3, c color.RGBA) {
	rl.DrawCubeWires(rl.NewVector3(position[0], position[1], position[2]), scale[0], scale[1], scale[2], c)
}
