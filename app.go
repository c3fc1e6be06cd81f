package main

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"attitude-hud/internal/command"
	"attitude-hud/internal/config"
	"attitude-hud/internal/hud"
	"attitude-hud/internal/render"
)

// Options are the process-level settings from the command line.
type Options struct {
	DataDir    string
	Width      int
	Height     int
	Fullscreen bool
	Vehicles   []string
	Stdout     io.Writer // extra sink for command output, nil for none
}

// App is the demo host: it owns the world, the HUD config and the
// attitude gauge, and runs them inside the ebiten loop.
type App struct {
	cfg *config.Config

	world   *SimWorld
	frame   *hud.FrameController
	interp  *command.Interpreter
	console *Console
	fonts   *render.Fonts

	// Lines from stdin, dispatched on the update goroutine
	lines chan string

	width      int
	height     int
	fullscreen bool

	showHelp bool
	lastSave time.Time
	quit     bool

	// Colors
	skyColor    color.RGBA
	groundColor color.RGBA
	lineColor   color.RGBA
}

// NewApp loads the config and wires the HUD components. It is the single
// initialization point for the overlay.
func NewApp(opts Options) (*App, error) {
	fonts, err := render.NewFonts()
	if err != nil {
		return nil, err
	}

	path := config.DefaultPath(opts.DataDir)
	cfg := config.Load(path, config.Default())

	app := &App{
		cfg:         &cfg,
		world:       NewSimWorld(opts.Vehicles...),
		fonts:       fonts,
		lines:       make(chan string, 16),
		width:       opts.Width,
		height:      opts.Height,
		fullscreen:  opts.Fullscreen,
		skyColor:    color.RGBA{70, 130, 180, 255}, // Steel blue
		groundColor: color.RGBA{139, 90, 43, 255},  // Brown
		lineColor:   color.RGBA{255, 255, 255, 255},
	}

	app.console = NewConsole(app.dispatch)
	var out io.Writer = app.console
	if opts.Stdout != nil {
		out = io.MultiWriter(app.console, opts.Stdout)
	}

	app.frame = hud.NewFrameController(hud.NewGauge(app.cfg))
	app.interp = command.New(app.cfg, path, out)
	app.interp.OnSave(func() { app.lastSave = time.Now() })

	log.Printf("Attitude indicator loaded, config %s", path)
	return app, nil
}

// Lines returns the channel feeding external console lines into the app
func (a *App) Lines() chan<- string {
	return a.lines
}

// Run starts the ebiten loop
func (a *App) Run() error {
	ebiten.SetWindowSize(a.width, a.height)
	ebiten.SetWindowTitle("Attitude HUD")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if a.fullscreen {
		ebiten.SetFullscreen(true)
	}

	return ebiten.RunGame(a)
}

// Shutdown requests the loop to exit after the current tick
func (a *App) Shutdown() {
	a.quit = true
}

// dispatch plays the host console: it tokenizes a line and routes the
// attui verb to the interpreter.
func (a *App) dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch {
	case command.IsVerb(fields[0]):
		a.interp.Run(fields[1:])
	case strings.EqualFold(fields[0], "help"):
		a.console.Println("commands: " + strings.Join(command.Verbs, ", ") + ", help")
	default:
		a.console.Println(fmt.Sprintf("Unknown command %q", fields[0]))
	}
}

// Update handles input and logic updates
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	// External console lines
	for drained := false; !drained; {
		select {
		case line := <-a.lines:
			a.console.Submit(line)
		default:
			drained = true
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyGraveAccent) || inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		a.console.Toggle()
		return nil
	}

	if a.console.IsOpen() {
		a.console.Update()
		return nil
	}

	a.handleKeyboard()
	return nil
}

func (a *App) handleKeyboard() {
	// Boarding
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.world.SelectNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if a.world.Current() != nil {
			a.world.Leave()
		} else {
			a.world.Board()
		}
	}

	// Session
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		a.world.SetLoaded(!a.world.Loaded())
	}

	// Steer the boarded vehicle
	if v := a.world.Current(); v != nil && v.Kind() == hud.KindVehicle {
		var dPitch, dYaw float64
		if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
			dPitch += pitchRate
		}
		if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
			dPitch -= pitchRate
		}
		if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
			dYaw -= yawRate
		}
		if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
			dYaw += yawRate
		}
		v.Steer(dPitch, dYaw)
	}

	// Toggle help
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) || inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		a.showHelp = !a.showHelp
	}

	// Fullscreen toggle
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// Quit
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.Shutdown()
	}
}

// Draw renders the application
func (a *App) Draw(screen *ebiten.Image) {
	a.drawWorld(screen)

	// The overlay decides on its own whether there is anything to show
	a.frame.Frame(a.world, render.NewSurface(screen, a.fonts))

	a.drawStatusBar(screen)
	a.console.Draw(screen)

	if a.showHelp {
		a.drawHelp(screen)
	}
}

// drawWorld draws a horizon seen from the boarded vehicle
func (a *App) drawWorld(screen *ebiten.Image) {
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())

	if !a.world.Loaded() {
		screen.Fill(color.RGBA{20, 20, 25, 255})
		ebitenutil.DebugPrintAt(screen, "No game loaded (L to load)", int(w/2)-80, int(h/2))
		return
	}

	pitch := 0.0
	if v := a.world.Current(); v != nil {
		pitch = v.Pitch
	}

	// Pixels per degree, 60 degrees visible
	horizonY := h/2 + float32(pitch)*h/60
	if horizonY < 0 {
		horizonY = 0
	} else if horizonY > h {
		horizonY = h
	}

	screen.Fill(a.groundColor)
	vector.DrawFilledRect(screen, 0, 0, w, horizonY, a.skyColor, false)
	vector.StrokeLine(screen, 0, horizonY, w, horizonY, 2, a.lineColor, true)
}

func (a *App) drawStatusBar(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	barH := 24
	barY := h - barH

	vector.DrawFilledRect(screen, 0, float32(barY), float32(w), float32(barH), color.RGBA{0, 0, 0, 200}, false)

	seat := "On foot"
	if v := a.world.Current(); v != nil {
		seat = "In " + v.Label
	}

	hudStr := "HUD: idle"
	if a.frame.Active() {
		hudStr = "HUD: " + hud.FormatPitch(a.frame.LastPitch())
	}

	saveStr := ""
	if !a.lastSave.IsZero() && time.Since(a.lastSave) < 3*time.Second {
		saveStr = " | saved"
	}

	next := a.world.Selected()
	nextStr := next.Label
	if next.Boarded {
		nextStr += " (boarded)"
	}

	status := fmt.Sprintf(" %s | Next: %s | %s | ` console | F1=Help%s", seat, nextStr, hudStr, saveStr)
	ebitenutil.DebugPrintAt(screen, status, 5, barY+5)
}

func (a *App) drawHelp(screen *ebiten.Image) {
	help := []string{
		"=== Attitude HUD ===",
		"",
		"Tab       Select vehicle",
		"E         Board / leave",
		"W/S Up/Dn Pitch",
		"A/D Lf/Rt Yaw",
		"L         Load / unload world",
		"` or F2   Console (attui ...)",
		"F11       Toggle fullscreen",
		"F1/?      Toggle this help",
		"Q/Esc     Quit",
	}

	panelW := 250
	panelH := len(help)*16 + 20
	panelX := 10
	panelY := 10

	vector.DrawFilledRect(screen, float32(panelX), float32(panelY), float32(panelW), float32(panelH), color.RGBA{0, 0, 0, 200}, false)

	y := panelY + 10
	for _, line := range help {
		ebitenutil.DebugPrintAt(screen, line, panelX+10, y)
		y += 16
	}
}

// Layout returns the screen dimensions
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
