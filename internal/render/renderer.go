package render

import (
	_ "embed"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

//go:embed shaders/fog.vs
var fogVS string

//go:embed shaders/fog.fs
var fogFS string

// Drawable is something the renderer can cull and draw.
type Drawable interface {
	Draw()
	Bounds() (min, max rl.Vector3)
}

const (
	nearPlane float32 = 0.05
	// cullMargin keeps boxes a little past full fog, where they are already
	// the clear colour.
	cullMargin float32 = 0.5
)

// Renderer draws the 3D scene with distance fog into an offscreen target,
// then presents it tinted by the screen brightness. It implements
// player.RenderSink; SetFog and SetBrightness may be called before
// Initialize.
type Renderer struct {
	Shader   rl.Shader
	Target   rl.RenderTexture2D
	FogColor rl.Color

	fogNear    float32
	fogFar     float32
	brightness rl.Color
	loaded     bool
	drawn      int
	culled     int
	log        logrus.FieldLogger

	viewPosLoc  int32
	fogRangeLoc int32
	fogColorLoc int32
}

func NewRenderer(log logrus.FieldLogger) *Renderer {
	return &Renderer{
		FogColor:   rl.Black,
		fogNear:    1,
		fogFar:     3,
		brightness: rl.White,
		log:        log,
	}
}

// Initialize loads the fog shader and an offscreen target of the given size.
// Needs a window.
func (r *Renderer) Initialize(width, height int32) {
	r.Shader = rl.LoadShaderFromMemory(fogVS, fogFS)
	r.viewPosLoc = rl.GetShaderLocation(r.Shader, "viewPos")
	r.fogRangeLoc = rl.GetShaderLocation(r.Shader, "fogRange")
	r.fogColorLoc = rl.GetShaderLocation(r.Shader, "fogColor")
	r.Target = rl.LoadRenderTexture(width, height)
	r.loaded = true
	r.updateShaderUniforms()

	if r.log != nil {
		r.log.WithFields(logrus.Fields{
			"width":  width,
			"height": height,
			"shader": r.Shader.ID,
		}).Debug("render: initialized")
	}
}

// Resize recreates the offscreen target when the window size changes.
func (r *Renderer) Resize(width, height int32) {
	if !r.loaded || (r.Target.Texture.Width == width && r.Target.Texture.Height == height) {
		return
	}
	rl.UnloadRenderTexture(r.Target)
	r.Target = rl.LoadRenderTexture(width, height)
}

// SetFog sets where fog starts and where it becomes opaque.
func (r *Renderer) SetFog(near, far float32) {
	r.fogNear, r.fogFar = near, far
	r.updateShaderUniforms()
}

func (r *Renderer) Fog() (near, far float32) {
	return r.fogNear, r.fogFar
}

// SetBrightness sets the colour the finished frame is multiplied by.
func (r *Renderer) SetBrightness(c rl.Color) {
	r.brightness = c
}

func (r *Renderer) Brightness() rl.Color {
	return r.brightness
}

// Stats returns how many drawables the last frame drew and culled.
func (r *Renderer) Stats() (drawn, culled int) {
	return r.drawn, r.culled
}

func (r *Renderer) updateShaderUniforms() {
	if !r.loaded {
		return
	}
	rl.SetShaderValue(r.Shader, r.fogRangeLoc, []float32{r.fogNear, r.fogFar}, rl.ShaderUniformVec2)
	c := rl.ColorNormalize(r.FogColor)
	rl.SetShaderValue(r.Shader, r.fogColorLoc, []float32{c.X, c.Y, c.Z, c.W}, rl.ShaderUniformVec4)
}

// DrawScene renders every visible drawable from camera into the offscreen
// target.
func (r *Renderer) DrawScene(camera rl.Camera3D, drawables []Drawable) {
	rl.BeginTextureMode(r.Target)
	rl.ClearBackground(r.FogColor)
	rl.BeginMode3D(camera)

	pos := camera.Position
	rl.SetShaderValue(r.Shader, r.viewPosLoc, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3)
	rl.BeginShaderMode(r.Shader)

	aspect := float32(r.Target.Texture.Width) / float32(max(r.Target.Texture.Height, 1))
	visible := r.Cull(camera, aspect, drawables)
	for _, d := range visible {
		d.Draw()
	}

	rl.EndShaderMode()
	rl.EndMode3D()
	rl.EndTextureMode()
}

// Cull keeps the drawables inside the camera frustum and nearer than full
// fog.
func (r *Renderer) Cull(camera rl.Camera3D, aspect float32, drawables []Drawable) []Drawable {
	far := r.fogFar + cullMargin
	f := ExtractFrustum(camera, aspect, nearPlane, far)

	visible := drawables[:0:0]
	for _, d := range drawables {
		min, max := d.Bounds()
		if !f.ContainsBox(min, max) || boxDistance(camera.Position, min, max) > far {
			continue
		}
		visible = append(visible, d)
	}
	r.drawn = len(visible)
	r.culled = len(drawables) - len(visible)
	return visible
}

// Present draws the offscreen target to the screen, multiplied by the
// brightness. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Present() {
	src := rl.Rectangle{
		Width:  float32(r.Target.Texture.Width),
		Height: -float32(r.Target.Texture.Height),
	}
	rl.DrawTextureRec(r.Target.Texture, src, rl.Vector2{}, r.brightness)
}

func (r *Renderer) Unload() {
	if !r.loaded {
		return
	}
	rl.UnloadShader(r.Shader)
	rl.UnloadRenderTexture(r.Target)
	r.loaded = false
}

// boxDistance is the distance from p to the nearest point of the box.
func boxDistance(p, min, max rl.Vector3) float32 {
	dx := math32.Max(math32.Max(min.X-p.X, 0), p.X-max.X)
	dy := math32.Max(math32.Max(min.Y-p.Y, 0), p.Y-max.Y)
	dz := math32.Max(math32.Max(min.Z-p.Z, 0), p.Z-max.Z)
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}
