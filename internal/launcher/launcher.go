// Package launcher ties the pieces together: it checks the root, scans it,
// lets the user pick an entry and opens that entry in the editor.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"hyprconf/internal/format"
	"hyprconf/internal/logs"
	"hyprconf/internal/models"
	"hyprconf/internal/picker"
	"hyprconf/internal/scanner"

	"github.com/fatih/color"
)

// ErrRootNotFound means the configuration root is missing or not a directory
var ErrRootNotFound = errors.New("configuration root not found")

// Config is everything a run needs, resolved once up front
type Config struct {
	Root             string
	Category         *models.Category
	Editor           string
	Theme            picker.Theme
	SegColors        bool
	StripOrderPrefix bool
	TrimAliasEcho    bool
}

// ScanFunc enumerates the entries under a root
type ScanFunc func(root string, opts scanner.Options) ([]models.Entry, error)

// Opener opens a file with an editor command
type Opener interface {
	Open(ctx context.Context, command, path string) error
}

// Deps are the collaborators of a Launcher. Nil fields are not allowed
// except Out, which defaults to stderr.
type Deps struct {
	Scan   ScanFunc
	Picker picker.Picker
	Opener Opener
	Out    io.Writer
}

// Launcher runs one scan-pick-open cycle
type Launcher struct {
	cfg  Config
	deps Deps
}

// New returns a Launcher
func New(cfg Config, deps Deps) *Launcher {
	if deps.Scan == nil {
		deps.Scan = scanner.Scan
	}
	if deps.Out == nil {
		deps.Out = os.Stderr
	}
	return &Launcher{cfg: cfg, deps: deps}
}

// CheckRoot returns ErrRootNotFound unless root is an existing directory
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}
	return nil
}

// Entries checks the root and scans it with the configured options
func (l *Launcher) Entries() ([]models.Entry, error) {
	if err := CheckRoot(l.cfg.Root); err != nil {
		return nil, err
	}

	entries, err := l.deps.Scan(l.cfg.Root, scanner.Options{
		Category:         l.cfg.Category,
		StripOrderPrefix: l.cfg.StripOrderPrefix,
		TrimAliasEcho:    l.cfg.TrimAliasEcho,
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.cfg.Root, err)
	}
	return entries, nil
}

// Run scans, asks the picker for a line and opens the chosen file. An empty
// scan, a cancelled pick and a picker that cannot run all end quietly.
func (l *Launcher) Run(ctx context.Context) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		l.notice("no configuration files found under %s", l.cfg.Root)
		return nil
	}

	lines := format.New(l.cfg.SegColors).RenderAll(entries)

	selected, err := l.deps.Picker.Pick(ctx, lines, l.cfg.Theme)
	switch {
	case errors.Is(err, picker.ErrCancelled):
		logs.Logger.Debug("selection cancelled")
		return nil
	case errors.Is(err, picker.ErrNoTerminal):
		logs.Logger.Debug("no terminal, nothing to pick")
		return nil
	case errors.Is(err, picker.ErrUnavailable):
		logs.Logger.Debug("picker could not run, nothing to pick", "err", err)
		return nil
	case err != nil:
		return fmt.Errorf("pick entry: %w", err)
	}

	path, ok := format.ExtractPath(selected.Plain)
	if !ok {
		return fmt.Errorf("cannot recover a file path from %q", selected.Plain)
	}

	logs.Logger.Debug("opening", "path", path, "editor", l.cfg.Editor)
	return l.deps.Opener.Open(ctx, l.cfg.Editor, path)
}

func (l *Launcher) notice(msg string, args ...any) {
	c := color.New(color.FgYellow)
	c.Fprintf(l.deps.Out, msg+"\n", args...)
}
