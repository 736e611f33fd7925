package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned by ParseCategory for names outside the fixed set
var ErrUnknownCategory = errors.New("unknown category")

// Category is the fixed classification tag of a configuration file
type Category int

const (
	CategoryHyprland Category = iota
	CategoryUtility
	CategoryConfD
	CategoryThemes
	CategoryPlugins
	CategoryScripts
)

var categoryNames = [...]string{
	CategoryHyprland: "hyprland",
	CategoryUtility:  "utility",
	CategoryConfD:    "conf-d",
	CategoryThemes:   "themes",
	CategoryPlugins:  "plugins",
	CategoryScripts:  "scripts",
}

// Categories returns every category in scan order
func Categories() []Category {
	return []Category{
		CategoryHyprland,
		CategoryUtility,
		CategoryConfD,
		CategoryThemes,
		CategoryPlugins,
		CategoryScripts,
	}
}

// CategoryNames returns the flag spelling of every category in scan order
func CategoryNames() []string {
	names := make([]string, 0, len(categoryNames))
	for _, c := range Categories() {
		names = append(names, c.String())
	}
	return names
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// IsValid reports whether c is one of the fixed categories
func (c Category) IsValid() bool {
	return c >= 0 && int(c) < len(categoryNames)
}

// ParseCategory maps a flag value to a Category. The older "conf.d" and
// "confd" spellings are accepted for conf-d.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "conf.d", "confd", "conf_d":
		return CategoryConfD, nil
	}
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q (want one of %s)", ErrUnknownCategory, s, strings.Join(CategoryNames(), ", "))
}

// Entry is one discovered configuration file
type Entry struct {
	Path        string   // Absolute path at scan time
	FileName    string   // Base name of Path
	Category    Category // Location class the file was found in
	Alias       string   // Short identifier derived from the filename
	Description string   // First leading comment, "" when absent
}

// HasDescription returns true if a leading comment was found
func (e Entry) HasDescription() bool {
	return strings.TrimSpace(e.Description) != ""
}
