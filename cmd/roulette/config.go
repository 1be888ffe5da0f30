package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vmunix/roulette/internal/config"
)

func newConfigCmd(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Long:  "Writes a commented default config.toml. Defaults to the XDG config path.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}
			err := config.WriteDefault(path, force)
			if errors.Is(err, config.ErrExists) {
				return fmt.Errorf("%w, use --force to overwrite", err)
			}
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	testCmd := &cobra.Command{
		Use:   "test [path]",
		Short: "Validate configuration file",
		Long:  "Validates config.toml syntax, required fields, and environment variable substitution.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.configPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				found, err := config.Discover()
				var nf *config.NotFoundError
				if errors.As(err, &nf) {
					printNotFound(cmd.OutOrStdout(), nf)
					return err
				}
				if err != nil {
					return err
				}
				path = found
			}
			return runConfigTest(cmd.OutOrStdout(), path)
		},
	}

	cmd.AddCommand(initCmd, testCmd)
	return cmd
}

func runConfigTest(out io.Writer, path string) error {
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, problems, err := config.Inspect(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintln(out, "Configuration Summary:")
	for _, line := range cfg.Summary() {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintln(out)

	if problems.HasErrors() {
		printConfigErrors(out, problems)
		return fmt.Errorf("configuration invalid")
	}

	fmt.Fprintln(out, "Configuration valid!")
	return nil
}

func printConfigErrors(out io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(out, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(out, "  - %s\n", m)
		}
		fmt.Fprintln(out)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(out, "Validation errors:")
		grouped := e.BySection()
		for _, section := range e.Sections() {
			fmt.Fprintf(out, "  [%s]\n", section)
			for _, p := range grouped[section] {
				fmt.Fprintf(out, "    - %s: %s\n", p.Key, p.Message)
			}
		}
		fmt.Fprintln(out)
	}
}

func printNotFound(out io.Writer, e *config.NotFoundError) {
	fmt.Fprintf(out, "No config file found (%s unset). Checked:\n", config.EnvPath)
	for _, p := range e.Checked {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	fmt.Fprintln(out, "\nRun 'roulette config init' to create one.")
}
