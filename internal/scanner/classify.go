package scanner

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"hyprconf/internal/logs"
	"hyprconf/internal/models"
)

// MaxReadAheadLines bounds how far Describe looks for a leading comment
const MaxReadAheadLines = 10

// commentMarkers are the comment styles found in Hyprland configs and scripts
var commentMarkers = []string{"#", "//", ";"}

func classify(path string, cat models.Category, opts Options) models.Entry {
	name := filepath.Base(path)
	alias := Alias(name, cat, opts.StripOrderPrefix)

	desc := Describe(path)
	if opts.TrimAliasEcho {
		desc = trimAliasEcho(alias, desc)
	}

	return models.Entry{
		Path:        path,
		FileName:    name,
		Category:    cat,
		Alias:       alias,
		Description: desc,
	}
}

// Alias derives the short name of a file: its name without the final
// extension. A dotfile with no other dot keeps its full name. With
// stripOrderPrefix, conf-d names also lose a leading "NN-" ordering prefix.
func Alias(name string, cat models.Category, stripOrderPrefix bool) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}

	if stripOrderPrefix && cat == models.CategoryConfD {
		if rest, ok := cutOrderPrefix(stem); ok {
			return rest
		}
	}
	return stem
}

// cutOrderPrefix splits "70-binds" into "binds"
func cutOrderPrefix(stem string) (string, bool) {
	prefix, rest, found := strings.Cut(stem, "-")
	if !found || prefix == "" || rest == "" {
		return "", false
	}
	for _, r := range prefix {
		if !unicode.IsDigit(r) {
			return "", false
		}
	}
	return rest, true
}

// Describe returns the first leading comment of the file at path, or "" if
// the file cannot be read or starts with something other than comments.
func Describe(path string) string {
	f, err := os.Open(path)
	if err != nil {
		logs.Logger.Debug("no description", "path", path, "err", err)
		return ""
	}
	defer f.Close()

	return describe(f)
}

func describe(r io.Reader) string {
	sc := bufio.NewScanner(r)
	for i := 0; i < MaxReadAheadLines && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())

		if i == 0 && strings.HasPrefix(line, "#!") {
			continue
		}
		if line == "" {
			continue
		}

		text, ok := stripComment(line)
		if !ok {
			// Code before any comment
			return ""
		}
		if text != "" {
			return text
		}
	}
	return ""
}

// stripComment removes a leading comment marker (repeated, e.g. "###") and
// the surrounding whitespace. ok is false when line is not a comment.
func stripComment(line string) (string, bool) {
	for _, marker := range commentMarkers {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		for strings.HasPrefix(line, marker) {
			line = line[len(marker):]
		}
		return strings.TrimSpace(line), true
	}
	return "", false
}

// trimAliasEcho drops a leading repeat of the alias from a description:
// "binds - keyboard shortcuts" on alias "binds" becomes "keyboard shortcuts".
func trimAliasEcho(alias, desc string) string {
	desc = strings.TrimSpace(desc)
	if alias == "" || len(desc) < len(alias) || !strings.EqualFold(desc[:len(alias)], alias) {
		return desc
	}

	rest := desc[len(alias):]
	if rest != "" && !isEchoSeparator(rune(rest[0])) && !strings.HasPrefix(rest, "—") && !strings.HasPrefix(rest, "–") {
		// "bindsfoo" is a different word
		return desc
	}

	rest = strings.TrimLeftFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || isEchoSeparator(r) || r == '—' || r == '–'
	})
	if rest == "" {
		return desc
	}
	return rest
}

func isEchoSeparator(r rune) bool {
	switch r {
	case '-', ':', '|', ' ', '\t':
		return true
	}
	return false
}
