package pizza

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/pizza-time/internal/config"
	"github.com/vovakirdan/pizza-time/internal/core"
)

// Glyphs per entity kind.
const (
	PlayerChar    = '▲'
	CloneChar     = '△'
	EnemyChar     = '▼'
	ShotChar      = '|'
	EnemyShotChar = '•'
	SaltChar      = 'S'
	PepperChar    = 'P'
	ExplosionChar = '✸'
	NearStarChar  = '·'
	FarStarChar   = '.'
	LifeChar      = '♥'
)

// cellAspect is how many terminal columns match one row visually.
const cellAspect = 2.0

type sprite struct {
	h       Handle
	kind    Kind
	pu      PowerUpKind
	box     core.Box
	visible bool
}

// Presenter draws the playfield into a terminal screen buffer.
// It is the session's built-in Renderer and Overlay: it only knows what
// those calls told it.
type Presenter struct {
	field   config.Playfield
	sprites map[Handle]*sprite

	score     int
	highScore int
	life      int
	title     bool
	gameOver  bool
}

// NewPresenter creates a presenter for a playfield.
func NewPresenter(field config.Playfield) *Presenter {
	return &Presenter{
		field:   field,
		sprites: make(map[Handle]*sprite),
	}
}

// Create implements Renderer.
func (p *Presenter) Create(h Handle, kind Kind, box core.Box) {
	p.sprites[h] = &sprite{h: h, kind: kind, box: box, visible: true}
}

// Update implements Renderer.
func (p *Presenter) Update(h Handle, box core.Box, visible bool) {
	if s, ok := p.sprites[h]; ok {
		s.box = box
		s.visible = visible
	}
}

// Destroy implements Renderer.
func (p *Presenter) Destroy(h Handle) {
	delete(p.sprites, h)
}

// SetPowerUp records which pickup a sprite shows.
func (p *Presenter) SetPowerUp(h Handle, kind PowerUpKind) {
	if s, ok := p.sprites[h]; ok {
		s.pu = kind
	}
}

// UpdateScore implements Overlay.
func (p *Presenter) UpdateScore(score, highScore int) {
	p.score = score
	p.highScore = highScore
}

// UpdateLives implements Overlay.
func (p *Presenter) UpdateLives(life int) {
	p.life = life
}

// ShowTitle implements Overlay.
func (p *Presenter) ShowTitle() {
	p.title = true
	p.gameOver = false
}

// ShowGameOver implements Overlay.
func (p *Presenter) ShowGameOver() {
	p.title = false
	p.gameOver = true
}

// HideGameOver implements Overlay.
func (p *Presenter) HideGameOver() {
	p.title = false
	p.gameOver = false
}

// Sprites returns how many entities the presenter is tracking.
func (p *Presenter) Sprites() int {
	return len(p.sprites)
}

// viewport maps the playfield onto terminal cells below the HUD row.
type viewport struct {
	x, y   int
	w, h   int
	sx, sy float64 // cells per playfield unit
}

func (p *Presenter) layout(dst *core.Screen) viewport {
	availW := dst.Width()
	availH := dst.Height() - 1
	if availW < 1 || availH < 1 {
		return viewport{}
	}
	h := availH
	w := int(math.Round(float64(h) * p.field.Width / p.field.Height * cellAspect))
	if w > availW {
		w = availW
		h = int(math.Round(float64(w) * p.field.Height / p.field.Width / cellAspect))
		h = core.Clamp(h, 1, availH)
	}
	return viewport{
		x:  (availW - w) / 2,
		y:  1,
		w:  w,
		h:  h,
		sx: float64(w) / p.field.Width,
		sy: float64(h) / p.field.Height,
	}
}

// cell converts a playfield point to a screen cell.
func (v viewport) cell(x, y float64) (int, int) {
	return v.x + int(math.Floor(x*v.sx)), v.y + int(math.Floor(y*v.sy))
}

func (v viewport) contains(cx, cy int) bool {
	return cx >= v.x && cx < v.x+v.w && cy >= v.y && cy < v.y+v.h
}

// Draw renders the background, every visible sprite and the overlay.
func (p *Presenter) Draw(dst *core.Screen, bg *Background, paused bool) {
	dst.Clear()
	v := p.layout(dst)
	if v.w == 0 {
		return
	}

	if v.x > 0 {
		for y := v.y; y < v.y+v.h; y++ {
			dst.SetColored(v.x-1, y, '│', core.ColorDarkGray)
			if v.x+v.w < dst.Width() {
				dst.SetColored(v.x+v.w, y, '│', core.ColorDarkGray)
			}
		}
	}

	if bg != nil {
		bg.Each(func(s Star) {
			cx, cy := v.cell(s.X, s.Y)
			if !v.contains(cx, cy) {
				return
			}
			if s.Far {
				dst.SetColored(cx, cy, FarStarChar, core.ColorDarkGray)
			} else {
				dst.SetColored(cx, cy, NearStarChar, core.ColorGray)
			}
		})
	}

	sprites := make([]*sprite, 0, len(p.sprites))
	for _, s := range p.sprites {
		if s.visible {
			sprites = append(sprites, s)
		}
	}
	sort.Slice(sprites, func(i, j int) bool {
		if sprites[i].kind != sprites[j].kind {
			return drawOrder(sprites[i].kind) < drawOrder(sprites[j].kind)
		}
		return sprites[i].h.Index < sprites[j].h.Index
	})
	for _, s := range sprites {
		p.drawSprite(dst, v, s)
	}

	p.drawHUD(dst)

	switch {
	case p.title:
		drawPanel(dst, core.ColorBrightYellow, "PIZZA TIME", "", "ENTER start   Q quit")
	case p.gameOver:
		drawPanel(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("score %d   hi score %d", p.score, p.highScore),
			"ENTER continue   ESC quit")
	case paused:
		drawPanel(dst, core.ColorWhite, "PAUSED", "", "P resume")
	}
}

func drawOrder(k Kind) int {
	switch k {
	case KindPowerUp:
		return 0
	case KindEnemy:
		return 1
	case KindEnemyShot, KindShot:
		return 2
	case KindClone, KindPlayer:
		return 3
	default:
		return 4
	}
}

func (p *Presenter) drawSprite(dst *core.Screen, v viewport, s *sprite) {
	glyph, color := spriteStyle(s)

	switch s.kind {
	case KindShot, KindEnemyShot, KindExplosion:
		cx, cy := s.box.Center()
		x, y := v.cell(cx, cy)
		if v.contains(x, y) {
			dst.SetColored(x, y, glyph, color)
		}
		return
	}

	x0, y0 := v.cell(s.box.X, s.box.Y)
	x1, y1 := v.cell(s.box.Right(), s.box.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if v.contains(x, y) {
				dst.SetColored(x, y, glyph, color)
			}
		}
	}
}

func spriteStyle(s *sprite) (rune, core.Color) {
	switch s.kind {
	case KindPlayer:
		return PlayerChar, core.ColorBrightYellow
	case KindClone:
		return CloneChar, core.ColorYellow
	case KindEnemy:
		return EnemyChar, core.ColorRed
	case KindShot:
		return ShotChar, core.ColorBrightCyan
	case KindEnemyShot:
		return EnemyShotChar, core.ColorMagenta
	case KindPowerUp:
		if s.pu == PowerUpPepper {
			return PepperChar, core.ColorBrightGreen
		}
		return SaltChar, core.ColorBrightWhite
	case KindExplosion:
		return ExplosionChar, core.ColorOrange
	default:
		return '?', core.ColorDefault
	}
}

func (p *Presenter) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("score %d", p.score), core.ColorWhite)
	hi := fmt.Sprintf("hi score %d", p.highScore)
	dst.DrawTextCentered(0, hi, core.ColorGray)

	lives := strings.Repeat(string(LifeChar), core.Max(p.life, 0))
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(lives)-1, 0, lives, core.ColorBrightRed)
}

// drawPanel draws a framed message in the middle of the screen.
func drawPanel(dst *core.Screen, c core.Color, title, body, hint string) {
	lines := []string{title}
	if body != "" {
		lines = append(lines, body)
	}
	lines = append(lines, hint)

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, utf8.RuneCountInString(l))
	}
	boxW += 4
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	for i, l := range lines {
		lc := core.ColorWhite
		if i == 0 {
			lc = c
		}
		x := boxX + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, boxY+1+i*2, l, lc)
	}
}
