package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	"hyprconf/internal/logs"
	"hyprconf/internal/models"
)

// Options narrows and tunes a scan
type Options struct {
	Category         *models.Category // nil scans every category
	StripOrderPrefix bool             // "70-binds.conf" -> "binds" for conf-d
	TrimAliasEcho    bool             // "binds - keyboard" -> "keyboard"
}

// rule describes one location class under the root
type rule struct {
	category models.Category
	dir      string   // relative to root, "" for the root itself
	names    []string // fixed file names; nil means every file in dir
	ext      string   // required extension when names is nil
	exec     bool     // require an execute permission bit
}

// rules is visited in order; the order is the display order of categories
var rules = []rule{
	{category: models.CategoryHyprland, names: []string{"hyprland.conf"}},
	{category: models.CategoryUtility, names: []string{"hyprpaper.conf", "hyprlock.conf", "hypridle.conf"}},
	{category: models.CategoryConfD, dir: "conf.d", ext: ".conf"},
	{category: models.CategoryThemes, dir: "themes", ext: ".conf"},
	{category: models.CategoryPlugins, dir: "plugins", ext: ".conf"},
	{category: models.CategoryScripts, dir: "scripts", exec: true},
}

// Scan walks the well-known locations under rootDir and returns classified
// entries. Missing files and directories are not errors.
func Scan(rootDir string, opts Options) ([]models.Entry, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	var entries []models.Entry
	for _, r := range rules {
		if opts.Category != nil && *opts.Category != r.category {
			continue
		}

		paths := r.collect(absRoot)
		logs.Logger.Debug("scanned location", "category", r.category, "dir", r.dir, "files", len(paths))

		for _, path := range paths {
			entries = append(entries, classify(path, r.category, opts))
		}
	}

	return entries, nil
}

// collect returns the matching file paths of a rule sorted by file name
func (r rule) collect(root string) []string {
	dir := filepath.Join(root, r.dir)

	var names []string
	if r.names != nil {
		names = append(names, r.names...)
	} else {
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			if !isMissing(err) {
				logs.Logger.Warn("skipping unreadable directory", "dir", dir, "err", err)
			}
			return nil
		}
		for _, de := range dirEntries {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	var paths []string
	for _, name := range names {
		if r.ext != "" && !hasExt(name, r.ext) {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if !isMissing(err) {
				logs.Logger.Debug("skipping file", "path", path, "err", err)
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if r.exec && !isExecutable(info) {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// hasExt returns true if name ends in ext and has a non-empty stem
func hasExt(name, ext string) bool {
	return len(name) > len(ext) && filepath.Ext(name) == ext
}

// isExecutable returns true if any execute bit is set
func isExecutable(info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}

// isMissing treats "no such file" and "not a directory" alike
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
