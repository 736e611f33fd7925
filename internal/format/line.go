// Package format renders scanned entries as single picker lines and maps a
// picked line back to its file.
package format

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"hyprconf/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	descSeparator = " — "
	fileSeparator = " | "
)

// Line is one rendered entry. Plain carries the path byte for byte and is
// what ExtractPath reads; Display is what the user sees, with control
// characters and invalid UTF-8 escaped so one entry is always one row.
type Line struct {
	Plain   string
	Display string
}

// Formatter renders entries in the shape
//
//	[category] alias — description | file (path)
type Formatter struct {
	segColors bool

	category lipgloss.Style
	alias    lipgloss.Style
	desc     lipgloss.Style
	file     lipgloss.Style
}

// New returns a Formatter. With segColors each segment carries its own
// ANSI colour; otherwise Display is Plain with unprintable bytes escaped.
func New(segColors bool) *Formatter {
	// Lines are rendered for the picker, not for whatever stdout is, so the
	// colour profile is fixed instead of detected.
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return &Formatter{
		segColors: segColors,
		category:  base.Foreground(lipgloss.Color("3")),
		alias:     base.Foreground(lipgloss.Color("#DA68EC")).Bold(true),
		desc:      base.Foreground(lipgloss.Color("#FF6A3D")),
		file:      base.Foreground(lipgloss.Color("15")),
	}
}

// Render formats a single entry
func (f *Formatter) Render(e models.Entry) Line {
	plain := f.compose(e, noStyle, noStyle, noStyle, noStyle)

	shown := e
	shown.Path = printable(e.Path)
	shown.FileName = printable(fileName(e))
	shown.Alias = printable(e.Alias)
	shown.Description = printable(e.Description)

	if !f.segColors {
		return Line{Plain: plain, Display: f.compose(shown, noStyle, noStyle, noStyle, noStyle)}
	}
	return Line{
		Plain:   plain,
		Display: f.compose(shown, f.category.Render, f.alias.Render, f.desc.Render, f.file.Render),
	}
}

// RenderAll formats entries in order
func (f *Formatter) RenderAll(entries []models.Entry) []Line {
	lines := make([]Line, len(entries))
	for i, e := range entries {
		lines[i] = f.Render(e)
	}
	return lines
}

type paint func(...string) string

func noStyle(s ...string) string { return strings.Join(s, " ") }

func (f *Formatter) compose(e models.Entry, cat, alias, desc, file paint) string {
	var b strings.Builder

	b.WriteString("[")
	b.WriteString(cat(e.Category.String()))
	b.WriteString("] ")
	b.WriteString(alias(e.Alias))

	if e.HasDescription() {
		b.WriteString(descSeparator)
		b.WriteString(desc(strings.TrimSpace(e.Description)))
	}

	b.WriteString(" ")
	b.WriteString(file("| " + fileName(e) + " (" + e.Path + ")"))
	return b.String()
}

func fileName(e models.Entry) string {
	if e.FileName != "" {
		return e.FileName
	}
	return filepath.Base(e.Path)
}

// printable escapes control characters and invalid UTF-8 so the text
// cannot move the cursor, recolour the terminal or span several rows
func printable(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			fmt.Fprintf(&b, "\\x%02x", s[i])
		case unicode.IsControl(r):
			fmt.Fprintf(&b, "\\x%02x", r)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// ExtractPath recovers the file path from a Line's Plain text. The path is
// the parenthesised tail and must agree with the file name segment in
// front of it. Candidates are tried from the right so a description that
// mimics the tail cannot win. Plain is not escaped, so the path comes back
// byte for byte.
func ExtractPath(plain string) (string, bool) {
	if !strings.HasSuffix(plain, ")") {
		return "", false
	}
	body := plain[:len(plain)-1]

	for end := len(body); end > 0; {
		at := strings.LastIndex(body[:end], " (")
		if at < 0 {
			break
		}
		path := body[at+2:]
		head := body[:at]
		if path != "" && strings.HasSuffix(head, fileSeparator+filepath.Base(path)) {
			return path, true
		}
		end = at
	}
	return "", false
}
