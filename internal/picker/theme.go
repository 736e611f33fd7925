package picker

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidTheme is wrapped by every ParseTheme failure
var ErrInvalidTheme = errors.New("invalid color spec")

// DefaultThemeName is used when no spec is given
const DefaultThemeName = "dark"

// Theme holds the picker colours. A zero colour means terminal default.
type Theme struct {
	Name   string
	Colors bool // false renders without any colour, using bold/reverse only

	Fg           lipgloss.TerminalColor
	Bg           lipgloss.TerminalColor
	Matched      lipgloss.TerminalColor
	Current      lipgloss.TerminalColor
	CurrentBg    lipgloss.TerminalColor
	CurrentMatch lipgloss.TerminalColor
	Prompt       lipgloss.TerminalColor
	Cursor       lipgloss.TerminalColor
	Info         lipgloss.TerminalColor
	Border       lipgloss.TerminalColor
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func baseTheme(name string) (Theme, bool) {
	none := lipgloss.NoColor{}
	switch name {
	case "dark":
		return Theme{
			Name: name, Colors: true,
			Fg: none, Bg: none,
			Matched:      lipgloss.Color("108"),
			Current:      lipgloss.Color("254"),
			CurrentBg:    lipgloss.Color("236"),
			CurrentMatch: lipgloss.Color("151"),
			Prompt:       lipgloss.Color("110"),
			Cursor:       lipgloss.Color("161"),
			Info:         lipgloss.Color("144"),
			Border:       lipgloss.Color("59"),
		}, true
	case "light":
		return Theme{
			Name: name, Colors: true,
			Fg: lipgloss.Color("241"), Bg: none,
			Matched:      lipgloss.Color("66"),
			Current:      lipgloss.Color("237"),
			CurrentBg:    lipgloss.Color("251"),
			CurrentMatch: lipgloss.Color("66"),
			Prompt:       lipgloss.Color("25"),
			Cursor:       lipgloss.Color("161"),
			Info:         lipgloss.Color("101"),
			Border:       lipgloss.Color("145"),
		}, true
	case "16":
		return Theme{
			Name: name, Colors: true,
			Fg: none, Bg: none,
			Matched:      lipgloss.Color("2"),
			Current:      lipgloss.Color("15"),
			CurrentBg:    lipgloss.Color("0"),
			CurrentMatch: lipgloss.Color("10"),
			Prompt:       lipgloss.Color("4"),
			Cursor:       lipgloss.Color("1"),
			Info:         lipgloss.Color("3"),
			Border:       lipgloss.Color("8"),
		}, true
	case "none", "bw":
		return Theme{
			Name: "none",
			Fg:   none, Bg: none,
			Matched: none, Current: none, CurrentBg: none, CurrentMatch: none,
			Prompt: none, Cursor: none, Info: none, Border: none,
		}, true
	}
	return Theme{}, false
}

// ParseTheme reads a colour spec: an optional base scheme (dark, light, 16,
// none) followed by comma separated key:colour overrides, for example
// "dark,current_bg:24,matched:#00FF00". Colours are ANSI numbers 0-255 or
// hex codes.
func ParseTheme(spec string) (Theme, error) {
	theme, _ := baseTheme(DefaultThemeName)

	for i, raw := range strings.Split(spec, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}

		key, value, isPair := strings.Cut(token, ":")
		if !isPair {
			base, ok := baseTheme(strings.ToLower(token))
			if !ok || i != 0 {
				return Theme{}, fmt.Errorf("%w: unknown scheme %q", ErrInvalidTheme, token)
			}
			theme = base
			continue
		}

		color, err := parseColor(strings.TrimSpace(value))
		if err != nil {
			return Theme{}, fmt.Errorf("%w: %s: %v", ErrInvalidTheme, key, err)
		}
		slot := theme.slot(strings.ToLower(strings.TrimSpace(key)))
		if slot == nil {
			return Theme{}, fmt.Errorf("%w: unknown key %q", ErrInvalidTheme, key)
		}
		*slot = color
		theme.Colors = true
	}

	return theme, nil
}

// slot maps an override key (skim and fzf spellings) to its field
func (t *Theme) slot(key string) *lipgloss.TerminalColor {
	switch key {
	case "fg", "normal":
		return &t.Fg
	case "bg":
		return &t.Bg
	case "matched", "hl":
		return &t.Matched
	case "current", "fg+":
		return &t.Current
	case "current_bg", "bg+":
		return &t.CurrentBg
	case "current_match", "hl+":
		return &t.CurrentMatch
	case "prompt", "query":
		return &t.Prompt
	case "cursor", "pointer":
		return &t.Cursor
	case "info":
		return &t.Info
	case "border":
		return &t.Border
	}
	return nil
}

func parseColor(s string) (lipgloss.TerminalColor, error) {
	if s == "" {
		return nil, errors.New("empty color")
	}
	if hexColor.MatchString(s) {
		return lipgloss.Color(strings.ToUpper(s)), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return nil, fmt.Errorf("%q is neither 0-255 nor #RRGGBB", s)
	}
	return lipgloss.Color(strconv.Itoa(n)), nil
}
