// Package preview plays the badge animation in a window.
package preview

import (
	"errors"
	"fmt"
	"time"

	"github.com/vasalvit/badge"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"
)

// game plays the badge timeline once and keeps the last frame on screen.
// Escape or Q quits.
type game struct {
	player *badge.Player
	side   int
	scale  float64

	frame *ebiten.Image
	shown time.Duration
	err   error
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.player.Tick() && g.player.Done() {
		log.Debug().Dur("elapsed", g.player.Elapsed()).Msg("preview finished")
	}
	return nil
}

// render rasterizes the current frame unless it is already on screen.
func (g *game) render() error {
	if g.frame != nil && g.shown == g.player.Elapsed() {
		return nil
	}
	s, err := g.player.Frame()
	if err != nil {
		return err
	}
	img, err := s.Rasterize(g.scale)
	if err != nil {
		return err
	}
	if g.frame != nil {
		g.frame.Deallocate()
	}
	g.frame = ebiten.NewImageFromImage(img)
	g.shown = g.player.Elapsed()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if err := g.render(); err != nil {
		g.err = fmt.Errorf("render frame at %s: %w", g.player.Elapsed(), err)
		return
	}
	screen.DrawImage(g.frame, nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s / %s", g.player.Elapsed(), g.player.Total()))
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.side, g.side
}

// Run opens a window and plays the animation until the window is closed.
func Run(b *badge.Badge, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", scale)
	}
	g := &game{
		player: b.NewPlayer(time.Second / time.Duration(ebiten.TPS())),
		side:   int(b.Config().Width * scale),
		scale:  scale,
		shown:  -1,
	}
	ebiten.SetWindowSize(g.side, g.side)
	ebiten.SetWindowTitle("Badge preview - Esc/Q: quit")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
