package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"hyprconf/internal/config"
	"hyprconf/internal/editor"
	"hyprconf/internal/launcher"
	"hyprconf/internal/logs"
	"hyprconf/internal/models"
	"hyprconf/internal/picker"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// Deps lets callers swap the interactive parts. Zero values use the
// terminal picker and editor.
type Deps struct {
	Picker picker.Picker
	Opener launcher.Opener
}

type rootFlags struct {
	config.CLIFlags
	verbose bool
}

// NewRootCommand creates the hyprconf command tree
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Picker == nil {
		deps.Picker = picker.New(picker.Options{})
	}
	if deps.Opener == nil {
		deps.Opener = editor.Terminal()
	}

	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "hyprconf",
		Short: "Search and edit Hypr config files",
		Long: `hyprconf scans a Hyprland configuration directory, lists every config
file, theme, plugin and script it finds in a fuzzy picker, and opens the
one you choose in your editor.

The root defaults to $XDG_CONFIG_HOME/hypr (or ~/.config/hypr). The editor
is --editor, else $EDITOR, else hx.`,
		Example: `  hyprconf
  hyprconf --category conf-d
  hyprconf -r ~/dotfiles/hypr --editor "code --wait"
  hyprconf --color "dark,current_bg:24,matched:#00FF00"
  hyprconf list --category scripts`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logs.Initialize(cmd.ErrOrStderr(), flags.verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.CLIFlags)
			if err != nil {
				return err
			}
			l := newLauncher(cfg, deps, cmd.ErrOrStderr())
			return l.Run(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Root, "root", "r", "", "root directory of the Hypr configuration (default $XDG_CONFIG_HOME/hypr)")
	pf.StringVar(&flags.Category, "category", "", "only show one category: "+strings.Join(models.CategoryNames(), ", "))
	pf.StringVar(&flags.Editor, "editor", "", "editor command to open the file with (default $EDITOR, else hx)")
	pf.StringVar(&flags.Color, "color", "", `picker colour scheme: dark, light, 16, none, or a spec like "dark,current_bg:24"`)
	pf.BoolVar(&flags.NoSegColors, "no-seg-colors", false, "disable per-segment colours in entry lines")
	pf.StringVar(&flags.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/hyprconf/config.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging on stderr")

	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return models.CategoryNames(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(newListCommand(flags))
	cmd.AddCommand(newConfigCommand(flags))

	return cmd
}

func newLauncher(cfg *config.Config, deps Deps, out io.Writer) *launcher.Launcher {
	return launcher.New(launcher.Config{
		Root:             cfg.Root,
		Category:         cfg.Category,
		Editor:           cfg.Editor,
		Theme:            cfg.Theme,
		SegColors:        cfg.SegColors,
		StripOrderPrefix: cfg.StripOrderPrefix,
		TrimAliasEcho:    cfg.TrimAliasEcho,
	}, launcher.Deps{
		Picker: deps.Picker,
		Opener: deps.Opener,
		Out:    out,
	})
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	err := fang.Execute(
		context.Background(),
		NewRootCommand(Deps{}),
		fang.WithVersion(Version),
	)
	if err != nil {
		return 1
	}
	return 0
}

// printf writes to the command's stdout; write errors are not actionable
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && picker.IsTerminal(f.Fd())
}
