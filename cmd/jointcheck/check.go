package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/Aoi-hosizora/dart/kinematics"
	"github.com/Aoi-hosizora/dart/logging"
	"github.com/Aoi-hosizora/dart/spatialmath"
	"github.com/Aoi-hosizora/dart/utils"
)

type checkOptions struct {
	samples        int
	seed           int64
	tolerance      float64
	step           float64
	types          []kinematics.JointType
	printJacobians bool
}

func checkOptionsFromContext(c *cli.Context) (checkOptions, error) {
	opts := checkOptions{
		samples:        c.Int(flagSamples),
		seed:           c.Int64(flagSeed),
		tolerance:      c.Float64(flagTolerance),
		step:           c.Float64(flagStep),
		printJacobians: c.Bool(flagPrintJacobians),
		types:          kinematics.JointTypes,
	}
	if names := c.StringSlice(flagTypes); len(names) > 0 {
		opts.types = nil
		for _, name := range names {
			var jt kinematics.JointType
			if err := jt.UnmarshalText([]byte(name)); err != nil {
				return checkOptions{}, err
			}
			opts.types = append(opts.types, jt)
		}
	}
	if opts.samples <= 0 {
		return checkOptions{}, errors.Errorf("--%s must be positive, got %d", flagSamples, opts.samples)
	}
	if opts.step <= 0 {
		return checkOptions{}, errors.Errorf("--%s must be positive, got %v", flagStep, opts.step)
	}
	return opts, nil
}

// checkResult holds the per-sample disagreement between analytic and numerical Jacobians for one
// joint type.
type checkResult struct {
	dofs      int
	jacobian  []float64
	timeDeriv []float64
	finite    bool

	firstAnalytic spatialmath.Jacobian
	firstNumeric  spatialmath.Jacobian
}

func (r checkResult) passed(tol float64) bool {
	jacMax, _ := summarize(r.jacobian)
	derivMax, _ := summarize(r.timeDeriv)
	return r.finite && jacMax <= tol && derivMax <= tol
}

// summarize returns the max and mean of the errors, both zero when there are none.
func summarize(errs []float64) (float64, float64) {
	if len(errs) == 0 {
		return 0, 0
	}
	maxErr, err := stats.Max(errs)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	meanErr, err := stats.Mean(errs)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	return maxErr, meanErr
}

// runChecks compares analytic and numerical Jacobians for every requested joint type and
// returns an error if any type fails. Joint types are checked concurrently, each with its own
// sampler seeded from the configured seed and the type's position in the list.
func runChecks(ctx context.Context, w io.Writer, opts checkOptions, logger logging.Logger) error {
	results, err := utils.MapInParallel(ctx, len(opts.types), func(ctx context.Context, i int) (checkResult, error) {
		r := rand.New(rand.NewSource(opts.seed + int64(i)))
		return checkJointType(ctx, r, opts.types[i], opts, logger)
	})
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Type", "DoFs", "Jacobian max", "Jacobian mean", "Time deriv max", "Time deriv mean", "Status"})
	var failed []string
	for i, res := range results {
		jt := opts.types[i]
		status := "ok"
		if !res.passed(opts.tolerance) {
			status = "FAIL"
			failed = append(failed, jt.String())
		}
		jacMax, jacMean := summarize(res.jacobian)
		derivMax, derivMean := summarize(res.timeDeriv)
		t.AppendRow(table.Row{
			jt.String(),
			res.dofs,
			fmt.Sprintf("%.3e", jacMax),
			fmt.Sprintf("%.3e", jacMean),
			fmt.Sprintf("%.3e", derivMax),
			fmt.Sprintf("%.3e", derivMean),
			status,
		})
	}
	printf(w, "%s", t.Render())

	if opts.printJacobians {
		for i, res := range results {
			if res.firstAnalytic.Cols() == 0 {
				continue
			}
			printf(w, "%s analytic:\n%v", opts.types[i], mat.Formatted(res.firstAnalytic.Dense(), mat.Prefix(""), mat.Squeeze()))
			printf(w, "%s numerical:\n%v", opts.types[i], mat.Formatted(res.firstNumeric.Dense(), mat.Prefix(""), mat.Squeeze()))
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("joint types failed the check: %v", failed)
	}
	return nil
}

func checkJointType(ctx context.Context, r *rand.Rand, jt kinematics.JointType, opts checkOptions, logger logging.Logger) (checkResult, error) {
	cfg := kinematics.JointConfig{
		Name:                        jt.String(),
		Type:                        jt,
		Axis:                        spatialmath.RandomVector(r, -1, 1),
		Axis2:                       spatialmath.RandomVector(r, -1, 1),
		Pitch:                       r.Float64(),
		TransformFromParentBodyNode: spatialmath.NewPoseConfig(spatialmath.RandomTransform(r)),
		TransformFromChildBodyNode:  spatialmath.NewPoseConfig(spatialmath.RandomTransform(r)),
	}
	if jt == kinematics.PlanarJoint {
		cfg.Plane = kinematics.PlaneArbitrary
	}
	j, err := kinematics.NewJoint(cfg, logger.Sublogger(jt.String()))
	if err != nil {
		return checkResult{}, err
	}

	n := j.NumDoFs()
	res := checkResult{dofs: n, finite: true}
	for s := 0; s < opts.samples; s++ {
		if err := ctx.Err(); err != nil {
			return checkResult{}, err
		}
		q := sample(r, n, -math.Pi, math.Pi)
		dq := sample(r, n, -1, 1)

		analytic, err := j.LocalJacobianAt(q)
		if err != nil {
			return checkResult{}, err
		}
		numeric, err := kinematics.NumericalLocalJacobian(j, q, opts.step)
		if err != nil {
			return checkResult{}, err
		}
		analyticDeriv, err := j.LocalJacobianTimeDerivAt(q, dq)
		if err != nil {
			return checkResult{}, err
		}
		numericDeriv, err := kinematics.NumericalLocalJacobianTimeDeriv(j, q, dq, opts.step)
		if err != nil {
			return checkResult{}, err
		}

		if s == 0 {
			res.firstAnalytic, res.firstNumeric = analytic, numeric
		}
		dJac := analytic.MaxAbsDiff(numeric)
		dDeriv := analyticDeriv.MaxAbsDiff(numericDeriv)
		if math.IsNaN(dJac) || math.IsNaN(dDeriv) {
			res.finite = false
			logger.Warnw("non-finite jacobian", "type", jt, "positions", q)
			continue
		}
		res.jacobian = append(res.jacobian, dJac)
		res.timeDeriv = append(res.timeDeriv, dDeriv)
	}
	jacMax, _ := summarize(res.jacobian)
	logger.Debugw("checked joint type", "type", jt, "samples", opts.samples, "jacobian", jacMax)
	return res, nil
}

func sample(r *rand.Rand, n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = utils.SampleRandomFloat(lo, hi, r)
	}
	return out
}

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
