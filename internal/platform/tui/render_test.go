package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pizza-time/internal/core"
)

func TestScreenRendererPlainProfile(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "score 10")
	s.DrawTextColored(2, 1, "▲▲", core.ColorBrightYellow)
	s.SetColored(11, 2, '•', core.ColorDarkGray)

	// Output that is not a terminal gets no colours at all.
	sr := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))
	got := sr.Render(s)
	if got != s.String() {
		t.Errorf("Render() =\n%q\nexpected\n%q", got, s.String())
	}
}

func TestScreenRendererKeepsShape(t *testing.T) {
	s := core.NewScreen(30, 5)
	for x := range 30 {
		s.SetColored(x, 2, '#', core.Color(x%18))
	}

	out := NewScreenRenderer(nil).Render(s)
	if n := strings.Count(out, "\n"); n != 4 {
		t.Errorf("rendered %d line breaks, expected 4", n)
	}
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 30 {
			t.Errorf("line %d is %d cells wide, expected 30", i, w)
		}
	}
}

func TestEveryColorHasAStyle(t *testing.T) {
	sr := NewScreenRenderer(nil)
	for c := core.ColorRed; c <= core.ColorDarkGray; c++ {
		if _, ok := sr.styles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}
