// Package editor resolves the user's editor command and runs it on a file.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"hyprconf/internal/logs"

	"mvdan.cc/sh/v3/shell"
)

// Fallback is used when neither a flag nor $EDITOR names an editor
const Fallback = "hx"

// ErrSpawn is wrapped by every SpawnError
var ErrSpawn = errors.New("failed to launch editor")

// SpawnError describes why the editor could not open a file
type SpawnError struct {
	Command string
	Path    string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%v %q on %s: %v", ErrSpawn, e.Command, e.Path, e.Err)
}

func (e *SpawnError) Unwrap() []error {
	return []error{ErrSpawn, e.Err}
}

// Resolve picks the editor command: flag, then $EDITOR, then Fallback
func Resolve(flagValue, envValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(envValue); v != "" {
		return v
	}
	return Fallback
}

// Editor runs editor commands attached to the given streams
type Editor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Terminal returns an Editor attached to the process's stdio
func Terminal() *Editor {
	return &Editor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Open splits command with shell word rules, appends path as the only file
// argument and waits for the editor to exit. A non-zero exit is an error.
func (e *Editor) Open(ctx context.Context, command, path string) error {
	fail := func(err error) error {
		return &SpawnError{Command: command, Path: path, Err: err}
	}

	argv, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return fail(fmt.Errorf("parse command: %w", err))
	}
	if len(argv) == 0 {
		return fail(errors.New("empty command"))
	}

	// The file may have gone away while the picker was open.
	if _, err := os.Stat(path); err != nil {
		return fail(err)
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	logs.Logger.Debug("opening editor", "argv", cmd.Args)
	if err := cmd.Run(); err != nil {
		return fail(err)
	}
	return nil
}
