package ebitenrender

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/arbor"
)

// ErrWrongRenderer is returned by Run when the canvas was not created with a
// *Renderer from this package.
var ErrWrongRenderer = errors.New("ebitenrender: canvas renderer is not an ebitenrender.Renderer")

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Resizable  bool
	UpdateFunc func() error // called once per tick before input is processed
}

// NewCanvas creates a canvas that draws through a new Renderer.
func NewCanvas(opts arbor.Options) *arbor.Canvas {
	return arbor.NewCanvas(New(), opts)
}

// Run opens a window sized to the canvas and blocks until it is closed.
func Run(c *arbor.Canvas, cfg RunConfig) error {
	r, ok := c.Renderer().(*Renderer)
	if !ok {
		return ErrWrongRenderer
	}
	size := c.Size()
	ebiten.SetWindowSize(int(size.Width), int(size.Height))
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g := &game{canvas: c, renderer: r, update: cfg.UpdateFunc}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenrender: %w", err)
	}
	return nil
}

type game struct {
	canvas   *arbor.Canvas
	renderer *Renderer
	update   func() error

	keys  []ebiten.Key
	chars []rune
}

func (g *game) Update() error {
	if g.update != nil {
		if err := g.update(); err != nil {
			return err
		}
	}
	// Injected events replace real input for the tick they are consumed in.
	if g.canvas.ProcessInjected() {
		return nil
	}
	g.canvas.SetModifiers(readModifiers())
	g.canvas.Layout()
	p := g.processMouse()

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		g.canvas.HandleScroll(p, arbor.Point{X: wx, Y: wy})
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.canvas.HandleKey(arbor.Key(k.String()), true)
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.canvas.HandleKey(arbor.Key(k.String()), false)
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, ch := range g.chars {
		g.canvas.HandleText(ch)
	}
	return nil
}

// processMouse feeds pointer 0 and returns the cursor position. The button
// that started a press is used until release.
func (g *game) processMouse() arbor.Point {
	mx, my := ebiten.CursorPosition()
	p := arbor.Point{X: float64(mx), Y: float64(my)}

	var pressed bool
	var button arbor.MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = arbor.MouseButtonLeft
		case right:
			button = arbor.MouseButtonRight
		default:
			button = arbor.MouseButtonMiddle
		}
	}
	g.canvas.HandlePointer(0, p, pressed, button)
	return p
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.SetTarget(screen)
	g.canvas.Render()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.canvas.SetSize(arbor.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	return outsideWidth, outsideHeight
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() arbor.KeyModifiers {
	var mods arbor.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= arbor.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= arbor.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= arbor.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= arbor.ModMeta
	}
	return mods
}
