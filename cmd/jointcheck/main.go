// Package main checks joint kinematics against finite differences and steps configured worlds.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Aoi-hosizora/dart/logging"
)

const (
	// Flags.
	flagDebug          = "debug"
	flagSamples        = "samples"
	flagSeed           = "seed"
	flagTolerance      = "tolerance"
	flagStep           = "step"
	flagTypes          = "types"
	flagPrintJacobians = "print-jacobians"
	flagConfig         = "config"
	flagSteps          = "steps"
	flagCommands       = "commands"
	flagPrintTree      = "print-tree"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	var logger logging.Logger

	return &cli.App{
		Name:  "jointcheck",
		Usage: "verify joint kinematics and step simulated worlds",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logger = logging.NewDebugLogger("jointcheck")
			} else {
				logger = logging.NewLogger("jointcheck")
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:            "check",
				Usage:           "compare analytic joint Jacobians with finite differences",
				UsageText:       "jointcheck check [--types revolute --types ball] [--samples N] [--seed S]",
				HideHelpCommand: true,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagSamples,
						Value: 100,
						Usage: "random configurations per joint type",
					},
					&cli.Int64Flag{
						Name:  flagSeed,
						Value: 1,
						Usage: "seed of the random sampler",
					},
					&cli.Float64Flag{
						Name:  flagTolerance,
						Value: 1e-4,
						Usage: "largest accepted difference between analytic and numerical Jacobians",
					},
					&cli.Float64Flag{
						Name:  flagStep,
						Value: 1e-6,
						Usage: "finite difference step",
					},
					&cli.StringSliceFlag{
						Name:  flagTypes,
						Usage: "joint types to check, all by default",
					},
					&cli.BoolFlag{
						Name:  flagPrintJacobians,
						Usage: "print the Jacobians of the first sample of each joint type",
					},
				},
				Action: func(c *cli.Context) error {
					opts, err := checkOptionsFromContext(c)
					if err != nil {
						return err
					}
					return runChecks(c.Context, c.App.Writer, opts, logger)
				},
			},
			{
				Name:            "simulate",
				Usage:           "step a world described by a config file and print joint positions",
				UsageText:       "jointcheck simulate --config world.yaml [--steps N]",
				HideHelpCommand: true,
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:      flagConfig,
						Aliases:   []string{"c"},
						Required:  true,
						TakesFile: true,
						Usage:     "load the world from `FILE` (JSON or YAML)",
					},
					&cli.IntFlag{
						Name:  flagSteps,
						Value: 1000,
						Usage: "number of steps",
					},
					&cli.Float64SliceFlag{
						Name:  flagCommands,
						Usage: "commands applied before every step, in skeleton DoF order",
					},
					&cli.BoolFlag{
						Name:  flagPrintTree,
						Usage: "print the bodies and joints of every skeleton after the last step",
					},
				},
				Action: func(c *cli.Context) error {
					return runSimulation(c.App.Writer, simulateOptions{
						configPath: c.Path(flagConfig),
						steps:      c.Int(flagSteps),
						commands:   c.Float64Slice(flagCommands),
						printTree:  c.Bool(flagPrintTree),
					}, logger)
				},
			},
		},
	}
}
