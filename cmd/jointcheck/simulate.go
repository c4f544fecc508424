package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Aoi-hosizora/dart/kinematics"
	"github.com/Aoi-hosizora/dart/logging"
	"github.com/Aoi-hosizora/dart/simulation"
)

type simulateOptions struct {
	configPath string
	steps      int
	printTree  bool

	// commands are applied to the first skeleton before every step.
	commands []float64
}

func runSimulation(w io.Writer, opts simulateOptions, logger logging.Logger) error {
	cfg, err := simulation.ReadConfig(opts.configPath)
	if err != nil {
		return err
	}
	world, err := simulation.NewWorld(cfg, logger)
	if err != nil {
		return err
	}
	skeletons := world.Skeletons()
	if len(opts.commands) > 0 {
		if len(skeletons) == 0 {
			return errors.New("commands given but the world has no skeletons")
		}
		if n := skeletons[0].NumDoFs(); len(opts.commands) != n {
			return kinematics.NewIncorrectDoFError(len(opts.commands), n)
		}
	}

	for i := 0; i < opts.steps; i++ {
		if len(opts.commands) > 0 {
			if err := skeletons[0].SetCommands(opts.commands); err != nil {
				return err
			}
		}
		world.Step()
	}

	printf(w, "t = %.6g after %d steps", world.Time(), opts.steps)
	for _, skel := range skeletons {
		positions := lo.Map(skel.Positions(), func(q float64, _ int) string {
			return strconv.FormatFloat(q, 'g', 6, 64)
		})
		printf(w, "%s: [%s]", skel.Name(), strings.Join(positions, " "))
		if opts.printTree {
			printf(w, "%s", skel)
		}
	}
	return nil
}
