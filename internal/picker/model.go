package picker

import (
	"fmt"
	"strings"

	"hyprconf/internal/format"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

const defaultListHeight = 10

type styles struct {
	normal       lipgloss.Style
	current      lipgloss.Style
	matched      lipgloss.Style
	currentMatch lipgloss.Style
	cursor       lipgloss.Style
	prompt       lipgloss.Style
	info         lipgloss.Style
	border       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, t Theme) styles {
	s := styles{
		normal:       r.NewStyle(),
		current:      r.NewStyle().Bold(true),
		matched:      r.NewStyle(),
		currentMatch: r.NewStyle().Bold(true),
		cursor:       r.NewStyle().Bold(true),
		prompt:       r.NewStyle(),
		info:         r.NewStyle(),
		border:       r.NewStyle(),
	}
	if !t.Colors {
		s.current = s.current.Reverse(true)
		s.matched = s.matched.Underline(true)
		s.currentMatch = s.currentMatch.Reverse(true).Underline(true)
		return s
	}

	s.normal = s.normal.Foreground(orNone(t.Fg)).Background(orNone(t.Bg))
	s.current = s.current.Foreground(orNone(t.Current)).Background(orNone(t.CurrentBg))
	s.matched = s.matched.Foreground(orNone(t.Matched)).Background(orNone(t.Bg))
	s.currentMatch = s.currentMatch.Foreground(orNone(t.CurrentMatch)).Background(orNone(t.CurrentBg))
	s.cursor = s.cursor.Foreground(orNone(t.Cursor)).Background(orNone(t.CurrentBg))
	s.prompt = s.prompt.Foreground(orNone(t.Prompt))
	s.info = s.info.Foreground(orNone(t.Info))
	s.border = s.border.Foreground(orNone(t.Border))
	return s
}

func orNone(c lipgloss.TerminalColor) lipgloss.TerminalColor {
	if c == nil {
		return lipgloss.NoColor{}
	}
	return c
}

// row is one visible candidate
type row struct {
	index   int   // into model.display / model.text
	matched []int // byte offsets into model.text
}

// model is the bubbletea model behind FuzzyPicker
type model struct {
	display []string // what is shown while the query is empty
	text    []string // display without attributes; what is matched

	input  textinput.Model
	query  string
	rows   []row
	cursor int
	offset int

	height        int
	width         int
	heightPercent int
	styles        styles

	selected  int // index of the confirmed line
	chosen    bool
	cancelled bool
}

func newModel(lines []format.Line, theme Theme, opts Options, r *lipgloss.Renderer) model {
	st := newStyles(r, theme)

	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.PromptStyle = st.prompt
	ti.Cursor.Style = st.cursor
	ti.Focus()

	display := make([]string, len(lines))
	text := make([]string, len(lines))
	for i, l := range lines {
		display[i] = l.Display
		text[i] = ansi.Strip(l.Display)
	}

	m := model{
		display:       display,
		text:          text,
		selected:      -1,
		input:         ti,
		height:        defaultListHeight,
		heightPercent: opts.HeightPercent,
		styles:        st,
	}
	m.refilter()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// prompt and info lines take two rows
		m.height = max(1, msg.Height*m.heightPercent/100-2)
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+g", "ctrl+q", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if len(m.rows) == 0 {
				return m, nil
			}
			m.selected = m.rows[m.cursor].index
			m.chosen = true
			return m, tea.Quit

		case "up", "ctrl+k", "ctrl+p", "shift+tab":
			m.move(-1)
			return m, nil

		case "down", "ctrl+j", "ctrl+n", "tab":
			m.move(1)
			return m, nil

		case "pgup":
			m.move(-m.height)
			return m, nil

		case "pgdown":
			m.move(m.height)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.query {
		m.query = m.input.Value()
		m.refilter()
	}
	return m, cmd
}

// refilter recomputes the visible rows for the current query
func (m *model) refilter() {
	if m.query == "" {
		m.rows = make([]row, len(m.text))
		for i := range m.text {
			m.rows[i] = row{index: i}
		}
	} else {
		matches := fuzzy.Find(m.query, m.text)
		m.rows = make([]row, len(matches))
		for i, match := range matches {
			m.rows[i] = row{index: match.Index, matched: match.MatchedIndexes}
		}
	}
	m.cursor = 0
	m.offset = 0
}

func (m *model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.clampOffset()
}

func (m *model) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m model) View() string {
	if m.chosen || m.cancelled {
		return ""
	}

	var lines []string
	lines = append(lines, m.input.View())

	info := fmt.Sprintf("  %d/%d", len(m.rows), len(m.text))
	rule := ""
	if m.width > len(info)+1 {
		rule = " " + strings.Repeat("─", m.width-len(info)-1)
	}
	lines = append(lines, m.styles.info.Render(info)+m.styles.border.Render(rule))

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor))
	}

	return strings.Join(lines, "\n")
}

func (m model) renderRow(r row, current bool) string {
	prefix := "  "
	base, hl := m.styles.normal, m.styles.matched
	if current {
		prefix = m.styles.cursor.Render(">") + m.styles.current.Render(" ")
		base, hl = m.styles.current, m.styles.currentMatch
	}

	var text string
	switch {
	case len(r.matched) > 0:
		text = highlight(m.text[r.index], r.matched, base, hl)
	case current:
		text = base.Render(m.text[r.index])
	default:
		text = m.display[r.index]
	}

	line := prefix + text
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line
}

// highlight renders s with the runes at the matched byte offsets in hl
func highlight(s string, matched []int, base, hl lipgloss.Style) string {
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b, run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHit {
			b.WriteString(hl.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}

	for i, r := range s {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}
