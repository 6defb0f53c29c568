package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 235)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent = rl.NewColor(108, 99, 255, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

func initOverlayStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// Overlay is the F1 debug panel: live stats plus sliders that drive the
// controller the same way gameplay does.
type Overlay struct {
	Visible bool
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

const (
	panelX  = 10
	panelY  = 10
	panelW  = 320
	labelW  = 110
	fieldW  = 180
	fieldH  = 20
	rowStep = 26
)

// Lines are the stat rows at the top of the panel.
func (o *Overlay) Lines(g *Game, fps int32) []string {
	ctrl := g.Controller
	pos := g.Player.WorldPosition()
	look := ctrl.Orientation()
	drawn, culled := g.Renderer.Stats()

	state := "alive"
	if ctrl.IsDead() {
		state = fmt.Sprintf("dead (tint %.2f)", ctrl.DeathTint())
	}
	anim := "none"
	if name := g.anims.Current(); name != "" {
		anim = fmt.Sprintf("%s %.2f s", name, g.anims.Position())
	}
	return []string{
		fmt.Sprintf("FPS %d  update %.2f ms  draw %.2f ms", fps, g.updateMs, g.drawMs),
		fmt.Sprintf("Floor %d  %s", ctrl.Floor(), state),
		fmt.Sprintf("Pos (%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z),
		fmt.Sprintf("Pitch %.1f  Yaw %.1f", look.Pitch, look.Yaw),
		fmt.Sprintf("Bob phase %.2f s", ctrl.HeadBobPhase()),
		fmt.Sprintf("Drawn %d  culled %d  colliders %d", drawn, culled, g.World.ColliderCount()),
		"Animation " + anim,
	}
}

func (o *Overlay) Draw(g *Game) {
	lines := o.Lines(g, rl.GetFPS())
	height := int32(len(lines)*20 + 5*rowStep + 24)
	rl.DrawRectangle(panelX, panelY, panelW, height, colorBgPanel)
	rl.DrawRectangleLines(panelX, panelY, panelW, height, colorAccent)

	y := int32(panelY + 8)
	for _, line := range lines {
		rl.DrawText(line, panelX+8, y, 16, colorTextSecondary)
		y += 20
	}
	y += 4

	ctrl := g.Controller
	s := ctrl.Settings()

	tint := o.slider(&y, "Death tint", ctrl.DeathTint(), 0, 1)
	if tint != ctrl.DeathTint() {
		ctrl.SetDeathTint(tint)
	}

	near, far := g.Renderer.Fog()
	newNear := o.slider(&y, "Fog near", near, 0, far-0.1)
	newFar := o.slider(&y, "Fog far", far, newNear+0.1, 30)
	if newNear != near || newFar != far {
		ctrl.SetFogRange(newNear, newFar)
	}

	sens := o.slider(&y, "Mouse", s.MouseSensitivity, 0, 1)
	invert := gui.CheckBox(rl.Rectangle{X: panelX + 8 + labelW, Y: float32(y), Width: fieldH, Height: fieldH}, "Invert Y", s.InvertY)
	if sens != s.MouseSensitivity || invert != s.InvertY {
		s.MouseSensitivity, s.InvertY = sens, invert
		if err := ctrl.ApplySettings(s); err != nil {
			g.log.WithError(err).Warn("overlay: rejected settings")
		}
	}
}

func (o *Overlay) slider(y *int32, label string, value, lo, hi float32) float32 {
	rl.DrawText(label, panelX+8, *y+3, 15, colorTextMuted)
	bounds := rl.Rectangle{X: panelX + 8 + labelW, Y: float32(*y), Width: fieldW, Height: fieldH}
	value = gui.Slider(bounds, "", fmt.Sprintf("%.2f", value), value, lo, hi)
	*y += rowStep
	return value
}
