package gui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/collisim/internal/sim"
)

const (
	windowWidth  = 1200
	windowHeight = 675
	margin       = 24
	maxFrameDt   = 0.1
	// speed at which particles are drawn fully hot
	hotSpeed = 2.0
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColBorder  = rl.NewColor(60, 60, 60, 255)
	ColCold    = rl.NewColor(0, 200, 255, 255)
	ColHot     = rl.NewColor(255, 80, 200, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColCursor  = rl.NewColor(255, 255, 255, 60)
)

type App struct {
	world  *sim.World
	logger *log.Logger
	view   Viewport

	Running bool
	ShowHUD bool
	err     error
}

func NewApp(world *sim.World, logger *log.Logger) *App {
	return &App{
		world:   world,
		logger:  logger,
		view:    Fit(windowWidth, windowHeight, margin),
		Running: true,
		ShowHUD: true,
	}
}

// Run opens the window and drives the world until it is closed.
func Run(world *sim.World, logger *log.Logger, fps int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "collisim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(fps))

	app := NewApp(world, logger)
	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
	return app.err
}

func (a *App) Update() {
	a.view = Fit(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), margin)

	if rl.IsKeyPressed(rl.KeyUp) {
		a.world.SetGravity(false)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		a.world.SetGravity(true)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.world.Reset()
		a.err = nil
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	if !a.Running || a.err != nil {
		return
	}

	m := rl.GetMousePosition()
	in := sim.Input{
		Impulse: rl.IsKeyDown(rl.KeySpace),
		Repel:   rl.IsMouseButtonDown(rl.MouseLeftButton),
		Attract: rl.IsMouseButtonDown(rl.MouseRightButton),
		Mouse:   a.view.ToWorld(float64(m.X), float64(m.Y)),
	}

	dt := min(float64(rl.GetFrameTime()), maxFrameDt)
	if dt <= 0 {
		return
	}
	if _, err := a.world.Frame(dt, in); err != nil {
		a.err = err
		a.logger.Error("frame failed", "err", err)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(ColBg)

	v := a.view
	rl.DrawRectangleLines(int32(v.X), int32(v.Y), int32(v.Size), int32(v.Size), ColBorder)

	p := a.world.Params()
	r := float32(max(v.Scale(p.Radius), 1))
	for i, pos := range a.world.Set.Pos {
		x, y := v.ToScreen(pos)
		vel := a.world.Set.Vel[i]
		c := lerpColor(ColCold, ColHot, Heat(vel.Len(), hotSpeed))
		rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), r, c)
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) || rl.IsMouseButtonDown(rl.MouseRightButton) {
		m := rl.GetMousePosition()
		rl.DrawCircleLines(int32(m.X), int32(m.Y), float32(v.Scale(p.MouseRadius)), ColCursor)
	}

	if a.ShowHUD {
		a.drawHUD()
	}
}

func (a *App) drawHUD() {
	gravity := "off"
	if a.world.Gravity() {
		gravity = "on"
	}
	lines := []string{
		fmt.Sprintf("particles  %d", a.world.Set.Len()),
		fmt.Sprintf("backend    %s", a.world.Backend().Name()),
		fmt.Sprintf("frame      %d", a.world.Frames()),
		fmt.Sprintf("time       %.2fs", a.world.Time()),
		fmt.Sprintf("gravity    %s", gravity),
	}
	for i, l := range lines {
		rl.DrawText(l, 12, int32(40+i*20), 16, ColText)
	}
	rl.DrawFPS(12, 12)

	status := "space kick  up/down gravity  p pause  r reset  h hud  esc quit"
	if !a.Running {
		status = "PAUSED  " + status
	}
	rl.DrawText(status, 12, int32(rl.GetScreenHeight())-24, 14, ColTextDim)

	if a.err != nil {
		rl.DrawText(a.err.Error(), 12, int32(rl.GetScreenHeight())-48, 16, rl.Red)
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return rl.NewColor(mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A))
}
