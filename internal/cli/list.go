package cli

import (
	"hyprconf/internal/config"
	"hyprconf/internal/format"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the entries the picker would show",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.CLIFlags)
			if err != nil {
				return err
			}
			return runList(cmd, cfg)
		},
	}
}

func runList(cmd *cobra.Command, cfg *config.Config) error {
	l := newLauncher(cfg, Deps{}, cmd.ErrOrStderr())
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		printf(cmd, "No configuration files found.\n")
		return nil
	}

	tty := isTerminal(cmd.OutOrStdout())
	f := format.New(cfg.SegColors && tty)
	for _, line := range f.RenderAll(entries) {
		printf(cmd, "%s\n", line.Display)
	}

	footer := color.New(color.FgCyan)
	if !tty || !cfg.SegColors {
		footer.DisableColor()
	}
	printf(cmd, "\n%s\n", footer.Sprintf("%d file(s) under %s", len(entries), cfg.Root))
	return nil
}
