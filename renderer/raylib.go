package renderer

import (
	_ "embed"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/glow.fs
var glowShaderSrc string

// Raylib is a GPU surface. Frames are accumulated in a render texture so
// the surface can draw itself; EndFrame presents it to the window.
//
// Must be created after rl.InitWindow.
type Raylib struct {
	stateStack

	width, height int32
	target        rl.RenderTexture2D
	scratch       rl.RenderTexture2D

	shader        rl.Shader
	resolutionLoc int32
	blurLoc       int32
	brightnessLoc int32

	inFrame bool
}

// NewRaylib creates a raylib surface of the given size.
func NewRaylib(width, height int) *Raylib {
	r := &Raylib{}
	r.shader = rl.LoadShaderFromMemory("", glowShaderSrc)
	r.resolutionLoc = rl.GetShaderLocation(r.shader, "resolution")
	r.blurLoc = rl.GetShaderLocation(r.shader, "blur")
	r.brightnessLoc = rl.GetShaderLocation(r.shader, "brightness")
	r.Resize(width, height)
	return r
}

// Resize reallocates both render textures; contents are discarded.
func (r *Raylib) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if r.target.ID != 0 {
		rl.UnloadRenderTexture(r.target)
		rl.UnloadRenderTexture(r.scratch)
	}
	r.width, r.height = int32(width), int32(height)
	r.target = rl.LoadRenderTexture(r.width, r.height)
	r.scratch = rl.LoadRenderTexture(r.width, r.height)

	resolution := []float32{float32(width), float32(height)}
	rl.SetShaderValue(r.shader, r.resolutionLoc, resolution, rl.ShaderUniformVec2)
}

// Size returns the surface dimensions.
func (r *Raylib) Size() (int, int) { return int(r.width), int(r.height) }

// BeginFrame starts accumulating into the render texture.
func (r *Raylib) BeginFrame() {
	rl.BeginTextureMode(r.target)
	r.inFrame = true
}

// EndFrame stops accumulating and presents the frame to the window.
func (r *Raylib) EndFrame() {
	r.Finish()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	r.DrawAt(0, 0)
	rl.EndDrawing()
}

// Finish stops accumulating without presenting, for callers that compose
// the frame into their own window layout.
func (r *Raylib) Finish() {
	if r.inFrame {
		rl.EndTextureMode()
		r.inFrame = false
	}
}

// DrawAt draws the finished frame with its top-left corner at (x, y).
// Call between rl.BeginDrawing and rl.EndDrawing.
func (r *Raylib) DrawAt(x, y float32) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: -float32(r.height)}
	rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{X: x, Y: y}, rl.White)
}

// Clear replaces the frame with bg.
func (r *Raylib) Clear(bg color.Color) {
	rl.ClearBackground(toRL(bg))
}

// FillCircle fills a circle.
func (r *Raylib) FillCircle(x, y, radius float64, c color.Color) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(radius), toRL(c))
}

// StrokeLine strokes a segment with round end caps.
func (r *Raylib) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	col := toRL(c)
	a := rl.Vector2{X: float32(x1), Y: float32(y1)}
	b := rl.Vector2{X: float32(x2), Y: float32(y2)}
	rl.DrawLineEx(a, b, float32(width), col)
	rl.DrawCircleV(a, float32(width/2), col)
	rl.DrawCircleV(b, float32(width/2), col)
}

// DrawSelf copies the frame to a scratch texture, then draws it back
// through the glow shader with the active blend mode.
func (r *Raylib) DrawSelf() {
	if r.inFrame {
		rl.EndTextureMode()
	}

	rl.BeginTextureMode(r.scratch)
	rl.ClearBackground(rl.Blank)
	r.blit(r.target)
	rl.EndTextureMode()

	rl.BeginTextureMode(r.target)
	if r.cur.composite == CompositeLighter {
		rl.BeginBlendMode(rl.BlendAdditive)
	}
	rl.SetShaderValue(r.shader, r.blurLoc, []float32{float32(r.cur.filter.Blur)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.brightnessLoc, []float32{float32(r.cur.filter.Factor())}, rl.ShaderUniformFloat)
	rl.BeginShaderMode(r.shader)
	r.blit(r.scratch)
	rl.EndShaderMode()
	if r.cur.composite == CompositeLighter {
		rl.EndBlendMode()
	}

	if !r.inFrame {
		rl.EndTextureMode()
	}
}

// Unload frees GPU resources.
func (r *Raylib) Unload() {
	rl.UnloadShader(r.shader)
	rl.UnloadRenderTexture(r.target)
	rl.UnloadRenderTexture(r.scratch)
}

// blit draws a render texture at the origin. Render textures are stored
// upside down, hence the negative source height.
func (r *Raylib) blit(tex rl.RenderTexture2D) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: -float32(r.height)}
	rl.DrawTextureRec(tex.Texture, src, rl.Vector2{}, rl.White)
}

func toRL(c color.Color) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
