package game

import (
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

// Parallax factor of the background relative to the obstacles.
const backgroundFactor = 0.5

const (
	readyText  = "Ready to play"
	readyHint  = "press space to flap"
	launchHint = "press space to start"
)

// Render draws the session into dst through the camera.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	art, _ := s.Art()
	cam := s.camera.Viewport(dst.Width(), dst.Height())

	if s.setupErr != nil {
		y := dst.Height() / 2
		dst.DrawTextCentered(y, "world setup failed", core.ColorRed)
		dst.DrawTextCentered(y+2, s.setupErr.Error(), core.ColorGray)
		return
	}

	switch s.phase {
	case PhaseLoading():
		s.renderLoading(dst)
		return
	case PhaseReadyToLaunch():
		dst.DrawTextCentered(dst.Height()/2-1, "F L A P P Y", core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/2+1, launchHint, core.ColorGray)
		return
	}

	s.renderBackground(dst, cam, art.Background)
	s.renderObstacles(dst, cam, art.Obstacle)
	s.renderGround(dst, cam, art.Ground)
	s.renderPlayer(dst, cam, art.Player)

	if s.readyPrompt {
		dst.DrawTextCentered(dst.Height()/3, readyText, core.ColorBrightWhite)
		dst.DrawTextCentered(dst.Height()/3+1, readyHint, core.ColorGray)
	}
	if s.scoreVisible {
		renderScore(dst, art.Digits, s.score.Value())
	}
}

func (s *Session) renderLoading(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Loading...", core.ColorWhite)
	for i, path := range s.failed {
		dst.DrawTextCentered(y+2+i, "failed: "+path, core.ColorRed)
	}
}

func (s *Session) renderBackground(dst *core.Screen, cam Camera, bg assets.Sprite) {
	width := bg.Width()
	if width == 0 {
		return
	}
	offset := 0
	if per := cam.UnitsPerCol(); per > 0 {
		offset = int(s.gen.Traveled() * backgroundFactor / per)
	}
	color := colorOr(bg.Color, core.ColorWhite)
	for row, line := range bg.Lines {
		runes := []rune(line)
		for x := 0; x < dst.Width(); x++ {
			i := (x + offset) % width
			if i >= len(runes) || runes[i] == ' ' {
				continue
			}
			dst.SetColor(x, row+1, runes[i], color)
		}
	}
}

func (s *Session) renderObstacles(dst *core.Screen, cam Camera, sp assets.Sprite) {
	fill := sp.FillRune('█')
	capRune := sp.CapRune(fill)
	color := colorOr(sp.Color, core.ColorBrightGreen)

	s.world.Obstacles.Each(func(e ecs.Entity, o *Obstacle) {
		if o.Kind != KindLethalMoving {
			return
		}
		t, ok := s.world.Transforms.Get(e)
		if !ok {
			return
		}
		r := cam.Rect(core.Box{Center: t.Pos, Half: o.Half})
		dst.DrawRect(r, fill, color)
		capY := r.Y // bottom pipe: cap faces up
		if t.Pos.Y > 0 {
			capY = r.Bottom() - 1
		}
		dst.DrawRect(core.NewRect(r.X, capY, r.W, 1), capRune, color)
	})
}

func (s *Session) renderGround(dst *core.Screen, cam Camera, sp assets.Sprite) {
	fill := sp.FillRune('░')
	color := colorOr(sp.Color, core.ColorOrange)

	s.world.Grounds.Each(func(e ecs.Entity, g *Ground) {
		t, ok := s.world.Transforms.Get(e)
		if !ok {
			return
		}
		box := core.NewBox(core.V(t.Pos.X-g.Width/2, t.Pos.Y), g.Width/2, g.Height/2)
		r := cam.Rect(box)
		for x := r.X; x < r.Right(); x++ {
			dst.SetColor(x, r.Y, sp.PatternAt(x-r.X), color)
		}
		if r.H > 1 {
			dst.DrawRect(core.NewRect(r.X, r.Y+1, r.W, r.H-1), fill, color)
		}
	})
}

func (s *Session) renderPlayer(dst *core.Screen, cam Camera, sp assets.Sprite) {
	e, ok := s.world.Player()
	if !ok {
		return
	}
	t, _ := s.world.Transforms.Get(e)
	x, y := cam.Cell(t.Pos)
	color := colorOr(sp.Color, core.ColorBrightYellow)

	lines := sp.Lines
	if len(lines) == 0 {
		lines = []string{"●▶"}
	}
	w := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > w {
			w = n
		}
	}
	top := y - len(lines)/2
	for i, l := range lines {
		dst.DrawTextColor(x-w/2, top+i, l, color)
	}
}

func renderScore(dst *core.Screen, font assets.Font, score uint64) {
	text := strconv.FormatUint(score, 10)
	if font.Height == 0 {
		dst.DrawTextCentered(1, text, core.ColorBrightWhite)
		return
	}
	for i, row := range font.Render(text) {
		dst.DrawTextCentered(1+i, row, core.ColorBrightWhite)
	}
}

func colorOr(c, fallback core.Color) core.Color {
	if c == core.ColorDefault {
		return fallback
	}
	return c
}
