package picker

import (
	"context"
	"os"
	"strings"
	"testing"

	"hyprconf/internal/format"
	"hyprconf/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLines = []string{
	"[hyprland] hyprland — main config | hyprland.conf (/h/hyprland.conf)",
	"[conf-d] a | a.conf (/h/conf.d/a.conf)",
	"[themes] mocha — catppuccin | mocha.conf (/h/themes/mocha.conf)",
}

// asLines wraps display strings as lines whose Plain is the same text
func asLines(display []string) []format.Line {
	lines := make([]format.Line, len(display))
	for i, d := range display {
		lines[i] = format.Line{Plain: d, Display: d}
	}
	return lines
}

func newTestModel(t *testing.T, lines []format.Line, spec string) model {
	t.Helper()
	theme, err := ParseTheme(spec)
	require.NoError(t, err)

	r := lipgloss.NewRenderer(os.Stderr)
	r.SetColorProfile(termenv.ANSI256)
	return newModel(lines, theme, Options{Prompt: "> ", HeightPercent: DefaultHeightPercent}, r)
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) []tea.KeyMsg {
	var keys []tea.KeyMsg
	for _, r := range s {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyCtrlG = tea.KeyMsg{Type: tea.KeyCtrlG}
	keyCtrlJ = tea.KeyMsg{Type: tea.KeyCtrlJ}
	keyCtrlK = tea.KeyMsg{Type: tea.KeyCtrlK}
)

func TestModel_EnterSelectsFirst(t *testing.T) {
	lines := asLines(testLines)
	m := press(t, newTestModel(t, lines, ""), keyEnter)
	assert.True(t, m.chosen)
	assert.Equal(t, 0, m.selected)

	line, err := result(m, lines)
	require.NoError(t, err)
	assert.Equal(t, lines[0], line)
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, asLines(testLines), "")

	m = press(t, m, keyDown, keyDown, keyDown)
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	m = press(t, m, keyUp)
	assert.Equal(t, 1, m.cursor)

	m = press(t, m, keyCtrlK, keyCtrlK)
	assert.Equal(t, 0, m.cursor, "cursor stops at the first row")

	m = press(t, m, keyCtrlJ, keyEnter)
	assert.Equal(t, 1, m.selected)
}

func TestModel_CancelKeys(t *testing.T) {
	for name, key := range map[string]tea.KeyMsg{"esc": keyEsc, "ctrl+c": keyCtrlC, "ctrl+g": keyCtrlG} {
		t.Run(name, func(t *testing.T) {
			lines := asLines(testLines)
			m := press(t, newTestModel(t, lines, ""), keyDown, key)
			assert.True(t, m.cancelled)
			assert.False(t, m.chosen)

			_, err := result(m, lines)
			assert.ErrorIs(t, err, ErrCancelled)
		})
	}
}

func TestModel_FuzzyFilter(t *testing.T) {
	m := press(t, newTestModel(t, asLines(testLines), ""), typeText("mocha")...)
	require.NotEmpty(t, m.rows)
	assert.Equal(t, 2, m.rows[0].index)
	assert.NotEmpty(t, m.rows[0].matched)

	m = press(t, m, keyEnter)
	assert.Equal(t, 2, m.selected)
}

func TestModel_NoMatchEnterIsNoop(t *testing.T) {
	m := press(t, newTestModel(t, asLines(testLines), ""), typeText("zzzzqqq")...)
	assert.Empty(t, m.rows)

	m = press(t, m, keyEnter)
	assert.False(t, m.chosen)
	assert.False(t, m.cancelled)
}

func TestModel_MatchesTextOfColouredLines(t *testing.T) {
	lines := asLines(testLines)
	for i := range lines {
		lines[i].Display = "\x1b[33m" + lines[i].Display + "\x1b[0m"
	}

	m := press(t, newTestModel(t, lines, ""), typeText("conf-d")...)
	assert.Equal(t, testLines[1], m.text[m.rows[0].index])
	m = press(t, m, keyEnter)

	line, err := result(m, lines)
	require.NoError(t, err)
	assert.Equal(t, testLines[1], line.Plain)
}

func TestModel_ReturnsPlainBytesOfUnprintablePath(t *testing.T) {
	// names holding an escape sequence and an invalid byte
	f := format.New(true)
	lines := []format.Line{
		f.Render(models.Entry{Path: "/h/scripts/\x1b[31mz", Category: models.CategoryScripts, Alias: "\x1b[31mz"}),
		f.Render(models.Entry{Path: "/h/conf.d/\xffbad.conf", Category: models.CategoryConfD, Alias: "\xffbad"}),
	}

	m := press(t, newTestModel(t, lines, ""), typeText("bad")...)
	require.NotEmpty(t, m.rows)
	m = press(t, m, keyEnter)

	line, err := result(m, lines)
	require.NoError(t, err)
	assert.Equal(t, lines[1].Plain, line.Plain)

	path, ok := format.ExtractPath(line.Plain)
	require.True(t, ok)
	assert.Equal(t, "/h/conf.d/\xffbad.conf", path)

	view := strings.Split(ansi.Strip(newTestModel(t, lines, "").View()), "\n")
	require.Len(t, view, 2+len(lines))
	assert.Contains(t, view[2], `\x1b[31mz`)
	assert.Contains(t, view[3], `\xffbad.conf`)
}

func TestModel_WindowHeight(t *testing.T) {
	m := newTestModel(t, asLines(testLines), "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = next.(model)
	assert.Equal(t, 22, m.height)
	assert.Equal(t, 80, m.width)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	assert.Equal(t, 1, next.(model).height)
}

func TestModel_ScrollKeepsCursorVisible(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = strings.Repeat("x", i+1)
	}
	m := newTestModel(t, asLines(lines), "none")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(model)
	require.Equal(t, 4, m.height)

	for range 6 {
		m = press(t, m, keyDown)
	}
	assert.Equal(t, 6, m.cursor)
	assert.Equal(t, 3, m.offset)

	view := ansi.Strip(m.View())
	rows := strings.Split(view, "\n")
	assert.Len(t, rows, 2+4)
}

func TestModel_ViewShowsPromptAboveList(t *testing.T) {
	m := newTestModel(t, asLines(testLines), "")
	view := strings.Split(ansi.Strip(m.View()), "\n")
	require.GreaterOrEqual(t, len(view), 2+len(testLines))

	assert.True(t, strings.HasPrefix(view[0], "> "))
	assert.Contains(t, view[1], "3/3")
	assert.Contains(t, view[2], "hyprland.conf")
	assert.Contains(t, view[4], "mocha.conf")
}

func TestModel_ViewEmptyAfterQuit(t *testing.T) {
	m := press(t, newTestModel(t, asLines(testLines), ""), keyEnter)
	assert.Equal(t, "", m.View())
}

func TestHighlight(t *testing.T) {
	r := lipgloss.NewRenderer(os.Stderr)
	r.SetColorProfile(termenv.ANSI256)
	base := r.NewStyle()
	hl := r.NewStyle().Underline(true)

	out := highlight("a—bc", []int{0, 4}, base, hl)
	assert.Equal(t, "a—bc", ansi.Strip(out))
	assert.Contains(t, out, hl.Render("a"))
	assert.Contains(t, out, hl.Render("b"))
}

func TestPick_NoLines(t *testing.T) {
	p := New(Options{})
	_, err := p.Pick(context.Background(), nil, Theme{})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPick_NoTerminal(t *testing.T) {
	p := New(Options{})
	p.isTerminal = func(uintptr) bool { return false }

	_, err := p.Pick(context.Background(), asLines(testLines), Theme{})
	assert.ErrorIs(t, err, ErrNoTerminal)
}

func TestNew_Defaults(t *testing.T) {
	p := New(Options{HeightPercent: 250})
	assert.Equal(t, "> ", p.opts.Prompt)
	assert.Equal(t, DefaultHeightPercent, p.opts.HeightPercent)
	assert.Equal(t, os.Stdin, p.opts.Input)
	assert.Equal(t, os.Stdout, p.opts.Output)
}
