package logs

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	// Logger is shared by every package
	Logger *log.Logger
	mu     sync.Mutex
)

// Warnings go to stderr until Initialize says otherwise.
func init() {
	Logger = newLogger(os.Stderr, false)
}

// Initialize points the logger at w. Verbose lowers the level to debug.
func Initialize(w io.Writer, verbose bool) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	Logger = newLogger(w, verbose)
	Logger.Debug("logger initialized", "verbose", verbose)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "hyprconf",
		Level:  level,
	})
}
