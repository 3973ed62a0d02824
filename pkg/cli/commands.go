package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/backbee/bbinstall/pkg/installer"
)

func installCmd() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Run every installation step",
		Description: `Runs, in order:
  - structure: create cache, log and data directories
  - parameters: collect repository/Config/parameters.yml
  - bootstrap, doctrine: write the file unless it exists
  - services: add secret_key to services.yml unless set

When a step fails, a parameters.yml created by this run is removed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagKeepParameters,
				Value: true,
				Usage: "keep parameters.yml after a successful install",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStep(ctx, cmd, false, func(ctx context.Context, inst *installer.Installer) error {
				if err := inst.Install(ctx); err != nil {
					return err
				}
				if cmd.Bool(flagKeepParameters) {
					return nil
				}
				return inst.Run(ctx, installer.StepClear)
			})
		},
	}
}

func structureCmd() *cli.Command {
	return &cli.Command{
		Name:        "structure",
		Usage:       "Create the cache, log and data directories",
		Description: "Creates the runtime directories and records their absolute paths in services.yml.",
		Action: stepAction(installer.StepStructure),
	}
}

func parametersCmd() *cli.Command {
	return &cli.Command{
		Name:  "parameters",
		Usage: "Collect deployment parameters into parameters.yml",
		Description: `Asks for every parameter of parameters.yml.dist, or the built-in template,
that parameters.yml does not define yet. BACKBEE_<KEY> variables answer
without prompting. Nothing happens when every configuration file exists.`,
		Action: stepAction(installer.StepParameters),
	}
}

func bootstrapCmd() *cli.Command {
	return &cli.Command{
		Name:  "bootstrap",
		Usage: "Write repository/Config/bootstrap.yml",
		Action: stepAction(installer.StepBootstrap),
	}
}

func doctrineCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctrine",
		Usage: "Write repository/Config/doctrine.yml",
		Action: stepAction(installer.StepDoctrine),
	}
}

func servicesCmd() *cli.Command {
	return &cli.Command{
		Name:  "services",
		Usage: "Add secret_key to repository/Config/services.yml",
		Action: stepAction(installer.StepServices),
	}
}

func clearCmd() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Remove repository/Config/parameters.yml",
		Action: stepAction(installer.StepClear),
	}
}

func optionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "options",
		Usage: "Print the effective options",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			inst, err := s.installer(cmd)
			if err != nil {
				return err
			}
			return writeReport(ctx, cmd, format, map[string]any(inst.Options()))
		},
	}
}
