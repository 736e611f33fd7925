package cli

import (
	"hyprconf/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the hyprconf config file",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file unless one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := flags.ConfigFile
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return err
				}
			}

			created, err := config.EnsureConfigFile(path)
			if err != nil {
				return err
			}
			if created {
				printf(cmd, "Created %s\n", path)
			} else {
				printf(cmd, "%s already exists\n", path)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.CLIFlags)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				printf(cmd, "# from %s\n", cfg.File)
			}
			return cfg.Show(cmd.OutOrStdout())
		},
	})

	return cmd
}
