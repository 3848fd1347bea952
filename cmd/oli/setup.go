package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/oli/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create oli configuration file",
	Long: `Create an oli configuration file with default settings.

By default, creates a global config at ~/.config/oli/oli.yml.
Use --project to create oli.yml in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	if err := writeDefaults(setupFlags.project); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(out, "Run 'oli book' to get started.")
	return nil
}

func writeDefaults(project bool) error {
	var err error
	if project {
		err = config.WriteProject(config.Default())
	} else {
		err = config.WriteGlobal(config.Default())
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
