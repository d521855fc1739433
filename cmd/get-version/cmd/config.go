package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/get-version/internal/config"
)

// errSettingsExist is returned when the target settings file is already present.
var errSettingsExist = errors.New("settings file already exists, use --force to overwrite")

// attachConfigCommand attaches a `config` subcommand writing default settings.
func attachConfigCommand(root *cobra.Command) {
	var force bool

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Write a settings file with default values.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s: %w", path, errSettingsExist)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Settings written to", path)

			return nil
		},
	}

	configCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")
	root.AddCommand(configCmd)
}
