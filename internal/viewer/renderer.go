package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/brickmesh/internal/logger"
	"github.com/Faultbox/brickmesh/internal/scene"
	"github.com/Faultbox/brickmesh/internal/viewer/shaders"
	"github.com/Faultbox/brickmesh/pkg/math"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// gpuMesh is a definition uploaded to the GPU.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer draws an imported scene.
type Renderer struct {
	scn     *scene.Scene
	program uint32
	meshes  map[string]*gpuMesh

	uProjection int32
	uView       int32
	uModel      int32
	uColor      int32
	uLightDir   int32
	uCameraPos  int32
}

// NewRenderer initializes OpenGL state and uploads every definition
// of the scene. Must be called with a current GL context.
func NewRenderer(scn *scene.Scene) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	program, err := compileProgram(shaders.BrickVertexShader, shaders.BrickFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("compiling brick shader: %w", err)
	}

	r := &Renderer{
		scn:         scn,
		program:     program,
		meshes:      make(map[string]*gpuMesh),
		uProjection: getUniform(program, "uProjection"),
		uView:       getUniform(program, "uView"),
		uModel:      getUniform(program, "uModel"),
		uColor:      getUniform(program, "uColor"),
		uLightDir:   getUniform(program, "uLightDir"),
		uCameraPos:  getUniform(program, "uCameraPos"),
	}

	for _, def := range scn.Definitions() {
		r.meshes[def.Name] = uploadMesh(def.Mesh)
	}
	logger.Log.Info("scene uploaded",
		zap.Int("definitions", len(r.meshes)),
		zap.Int("instances", len(scn.Instances)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)

	return r, nil
}

// uploadMesh packs positions and normals interleaved with a
// triangle index buffer.
func uploadMesh(m *mesh.Mesh) *gpuMesh {
	verts := make([]float32, 0, len(m.Vertices)*6)
	for i, v := range m.Vertices {
		var n math.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		verts = append(verts, v.X, v.Y, v.Z, n.X, n.Y, n.Z)
	}

	tris := m.Triangles()
	indices := make([]uint32, 0, len(tris)*3)
	for _, t := range tris {
		indices = append(indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}

	g := &gpuMesh{indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	return g
}

// Draw renders all instances. Transparent materials draw after opaque
// ones with blending enabled.
func (r *Renderer) Draw(width, height int, cam *OrbitCamera) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)

	aspect := float32(width) / float32(height)
	proj := math.Perspective(math.DegToRad(45), aspect, 0.5, 50000)
	view := cam.ViewMatrix()
	eye := cam.Position()

	gl.UniformMatrix4fv(r.uProjection, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.uView, 1, false, view.Ptr())
	gl.Uniform3f(r.uLightDir, -0.4, -1.0, -0.3)
	gl.Uniform3f(r.uCameraPos, eye.X, eye.Y, eye.Z)

	gl.Disable(gl.BLEND)
	r.drawPass(false)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	r.drawPass(true)
	gl.DepthMask(true)
}

func (r *Renderer) drawPass(transparent bool) {
	for _, inst := range r.scn.Instances {
		mat := r.scn.MaterialFor(inst.ColorCode)
		if (mat.Opacity < 1.0) != transparent {
			continue
		}
		g, ok := r.meshes[inst.Definition]
		if !ok {
			continue
		}

		model := inst.Transform
		gl.UniformMatrix4fv(r.uModel, 1, false, model.Ptr())
		gl.Uniform4f(r.uColor, mat.R, mat.G, mat.B, mat.Opacity)

		gl.BindVertexArray(g.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	for _, g := range r.meshes {
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		gl.DeleteVertexArrays(1, &g.vao)
	}
	gl.DeleteProgram(r.program)
}
