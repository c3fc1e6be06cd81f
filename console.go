package main

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	consoleLines      = 12
	consoleScrollback = 200
	consoleLineHeight = 16
)

// Console is the in-game command console. It collects output written to
// it and hands submitted lines to submit.
type Console struct {
	open    bool
	input   []rune
	lines   []string
	history []string
	histPos int
	submit  func(line string)

	// Colors
	bgColor     color.RGBA
	promptColor color.RGBA
}

// NewConsole creates a closed console that passes lines to submit
func NewConsole(submit func(line string)) *Console {
	return &Console{
		submit:      submit,
		bgColor:     color.RGBA{0, 0, 0, 200},
		promptColor: color.RGBA{0, 200, 255, 255},
	}
}

// Write appends output lines; it lets the console act as an io.Writer
// for command output.
func (c *Console) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		c.Println(line)
	}
	return len(p), nil
}

// Println appends one line to the scrollback
func (c *Console) Println(line string) {
	c.lines = append(c.lines, line)
	if len(c.lines) > consoleScrollback {
		c.lines = c.lines[len(c.lines)-consoleScrollback:]
	}
}

// IsOpen reports whether the console takes keyboard input
func (c *Console) IsOpen() bool {
	return c.open
}

// Toggle opens or closes the console.
func (c *Console) Toggle() {
	c.open = !c.open
	c.input = c.input[:0]
	c.histPos = len(c.history)
}

// Submit echoes line, records it in history and runs it.
func (c *Console) Submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	c.Println("> " + line)
	if len(c.history) == 0 || c.history[len(c.history)-1] != line {
		c.history = append(c.history, line)
	}
	c.histPos = len(c.history)
	c.submit(line)
}

// Update handles typing while the console is open
func (c *Console) Update() {
	if !c.open {
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r == '`' || r == '~' {
			continue
		}
		c.input = append(c.input, r)
	}

	if repeating(ebiten.KeyBackspace) && len(c.input) > 0 {
		c.input = c.input[:len(c.input)-1]
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		line := string(c.input)
		c.input = c.input[:0]
		c.Submit(line)
	}

	// History
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) && c.histPos > 0 {
		c.histPos--
		c.input = []rune(c.history[c.histPos])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && c.histPos < len(c.history) {
		c.histPos++
		if c.histPos == len(c.history) {
			c.input = c.input[:0]
		} else {
			c.input = []rune(c.history[c.histPos])
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.Toggle()
	}
}

// repeating reports a key press with auto-repeat after half a second
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

// Draw renders the console across the top of the screen
func (c *Console) Draw(screen *ebiten.Image) {
	if !c.open {
		return
	}

	w := screen.Bounds().Dx()
	h := (consoleLines+1)*consoleLineHeight + 10
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), c.bgColor, true)

	start := len(c.lines) - consoleLines
	if start < 0 {
		start = 0
	}
	y := 5
	for _, line := range c.lines[start:] {
		ebitenutil.DebugPrintAt(screen, line, 8, y)
		y += consoleLineHeight
	}

	// Prompt
	promptY := h - consoleLineHeight - 3
	vector.DrawFilledRect(screen, 0, float32(promptY-2), float32(w), 1, c.promptColor, true)
	ebitenutil.DebugPrintAt(screen, "> "+string(c.input)+"_", 8, promptY)
}
