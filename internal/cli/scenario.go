package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

// scenarioCommand creates the scenario command group.
func (c *CLI) scenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Create and check scenario files",
	}

	cmd.AddCommand(c.scenarioInitCommand())
	cmd.AddCommand(c.scenarioCheckCommand())

	return cmd
}

// scenarioInitCommand creates the "scenario init" subcommand.
func (c *CLI) scenarioInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a starter scenario as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			s := c.defaultScenario()
			if err := s.Save(path); err != nil {
				return fmt.Errorf("write scenario: %w", err)
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Wrote %s", path)
			p.detail("%s", s)
			p.nextStep("Place its controls", appName+" layout "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// scenarioCheckCommand creates the "scenario check" subcommand.
func (c *CLI) scenarioCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Validate scenario files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			var failed int
			for _, path := range args {
				s, err := scenario.Load(path)
				if err != nil {
					p.failure("%s: %v", path, err)
					failed++
					continue
				}
				p.success("%s", s)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios invalid", failed, len(args))
			}
			return nil
		},
	}
}
