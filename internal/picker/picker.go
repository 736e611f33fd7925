// Package picker presents rendered lines in an interactive fuzzy finder and
// returns the one the user selects.
package picker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hyprconf/internal/format"
	"hyprconf/internal/logs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// ErrCancelled means the user left the picker without choosing
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoTerminal means there is no interactive terminal to draw on
	ErrNoTerminal = errors.New("no interactive terminal")
	// ErrUnavailable wraps failures of the picker program itself
	ErrUnavailable = errors.New("picker unavailable")
)

// DefaultHeightPercent is the share of the terminal the picker occupies
const DefaultHeightPercent = 60

// Picker lets the user choose one line. Matching runs on what is displayed;
// the returned Line is the caller's own, so Plain is untouched.
type Picker interface {
	Pick(ctx context.Context, lines []format.Line, theme Theme) (format.Line, error)
}

// Options configures a FuzzyPicker. Zero values fall back to defaults.
type Options struct {
	Prompt        string
	HeightPercent int
	Input         *os.File
	Output        *os.File
}

// FuzzyPicker is the bubbletea implementation of Picker
type FuzzyPicker struct {
	opts       Options
	isTerminal func(fd uintptr) bool
}

// New returns a FuzzyPicker reading keys from opts.Input (stdin) and drawing
// on opts.Output (stdout)
func New(opts Options) *FuzzyPicker {
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	if opts.HeightPercent <= 0 || opts.HeightPercent > 100 {
		opts.HeightPercent = DefaultHeightPercent
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &FuzzyPicker{opts: opts, isTerminal: IsTerminal}
}

// IsTerminal reports whether fd is an interactive terminal, Cygwin ptys
// included
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Pick runs the finder until the user confirms or aborts
func (p *FuzzyPicker) Pick(ctx context.Context, lines []format.Line, theme Theme) (format.Line, error) {
	if len(lines) == 0 {
		return format.Line{}, ErrCancelled
	}
	if !p.isTerminal(p.opts.Input.Fd()) || !p.isTerminal(p.opts.Output.Fd()) {
		return format.Line{}, ErrNoTerminal
	}

	r := lipgloss.NewRenderer(p.opts.Output)
	m := newModel(lines, theme, p.opts, r)

	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.opts.Input),
		tea.WithOutput(p.opts.Output),
	)

	logs.Logger.Debug("starting picker", "lines", len(lines), "theme", theme.Name)
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return format.Line{}, ErrCancelled
		}
		return format.Line{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return result(final, lines)
}

func result(final tea.Model, lines []format.Line) (format.Line, error) {
	fm, ok := final.(model)
	if !ok || !fm.chosen || fm.selected < 0 || fm.selected >= len(lines) {
		return format.Line{}, ErrCancelled
	}
	return lines[fm.selected], nil
}
