// Package simulation advances skeletons through time with a simple per degree of freedom stepper.
// Every coordinate is treated as an independent body of constant inertia; there is no coupling
// between degrees of freedom and no contact.
package simulation

import (
	"math"

	"github.com/pkg/errors"

	"github.com/Aoi-hosizora/dart/kinematics"
	"github.com/Aoi-hosizora/dart/logging"
	"github.com/Aoi-hosizora/dart/referenceframe"
	"github.com/Aoi-hosizora/dart/skeleton"
	"github.com/Aoi-hosizora/dart/utils"
)

// World owns a frame system and the skeletons stepped in it.
type World struct {
	cfg       Config
	frames    *referenceframe.FrameSystem
	skeletons []*skeleton.Skeleton
	logger    logging.Logger

	time  float64
	steps int
}

// NewWorld validates cfg and builds the world with every configured skeleton.
func NewWorld(cfg *Config, logger logging.Logger) (*World, error) {
	if err := cfg.Validate("simulation"); err != nil {
		return nil, err
	}
	w := &World{
		cfg:    *cfg,
		frames: referenceframe.NewFrameSystem(logger.Sublogger("frames")),
		logger: logger,
	}
	for _, skelCfg := range cfg.Skeletons {
		if _, err := w.buildSkeleton(skelCfg); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) buildSkeleton(cfg SkeletonConfig) (*skeleton.Skeleton, error) {
	skel := w.NewSkeleton(cfg.Name)
	for _, body := range cfg.Bodies {
		var parent *skeleton.BodyNode
		if body.Parent != "" {
			parent = skel.BodyNode(body.Parent)
			if parent == nil {
				return nil, skeleton.NewBodyNodeMissingError(body.Parent, cfg.Name)
			}
		}
		if _, _, err := skel.CreateJointAndBodyNodePair(parent, body.Joint, skeleton.BodyNodeConfig{Name: body.Name}); err != nil {
			return nil, errors.Wrapf(err, "cannot build skeleton %q", cfg.Name)
		}
	}
	return skel, nil
}

// NewSkeleton creates an empty skeleton in the world's frame system and adds it to the world.
func (w *World) NewSkeleton(name string) *skeleton.Skeleton {
	skel := skeleton.New(name, w.frames, w.logger.Sublogger(name))
	w.skeletons = append(w.skeletons, skel)
	return skel
}

// AddSkeleton adds a skeleton built elsewhere. It must live in the world's frame system.
func (w *World) AddSkeleton(skel *skeleton.Skeleton) error {
	if skel.FrameSystem() != w.frames {
		return errors.Errorf("skeleton %q belongs to a different frame system", skel.Name())
	}
	if w.Skeleton(skel.Name()) != nil {
		return errors.Errorf("skeleton %q already exists", skel.Name())
	}
	w.skeletons = append(w.skeletons, skel)
	return nil
}

// Skeleton returns the skeleton with the given name, or nil.
func (w *World) Skeleton(name string) *skeleton.Skeleton {
	for _, skel := range w.skeletons {
		if skel.Name() == name {
			return skel
		}
	}
	return nil
}

// Skeletons returns the skeletons in insertion order.
func (w *World) Skeletons() []*skeleton.Skeleton {
	return append([]*skeleton.Skeleton(nil), w.skeletons...)
}

// FrameSystem returns the frame system of the world.
func (w *World) FrameSystem() *referenceframe.FrameSystem {
	return w.frames
}

// TimeStep returns the duration of one step.
func (w *World) TimeStep() float64 {
	return w.cfg.TimeStep
}

// Time returns the simulated time.
func (w *World) Time() float64 {
	return w.time
}

// Step advances every skeleton by one time step. Commands and forces are consumed by the step
// and reset afterwards.
func (w *World) Step() {
	for _, skel := range w.skeletons {
		for _, j := range skel.Joints() {
			w.stepJoint(j)
		}
	}
	w.time += w.cfg.TimeStep
	w.steps++
}

func (w *World) stepJoint(j *kinematics.Joint) {
	dt := w.cfg.TimeStep
	n := j.NumDoFs()
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		d := j.DoF(i)
		v := w.nextVelocity(d, j.PositionLimitEnforced())
		if !utils.IsFinite(v) {
			w.logger.Warnw("non-finite velocity, stopping degree of freedom",
				"joint", j.Name(), "dof", i, "step", w.steps)
			v = 0
		}
		j.SetAcceleration(i, (v-d.Velocity)/dt)
		j.SetVelocity(i, v)
	}
	j.IntegratePositions(dt)

	if j.PositionLimitEnforced() {
		for i := 0; i < n; i++ {
			lim := j.Limit(kinematics.Position, i)
			if q := j.Position(i); !lim.Contains(q) {
				j.SetPosition(i, lim.Clamp(q))
			}
		}
	}
	j.ResetCommands()
	j.ResetForces()
}

// nextVelocity returns the velocity of d at the end of the step.
func (w *World) nextVelocity(d kinematics.DoF, limitPosition bool) float64 {
	dt := w.cfg.TimeStep
	m := w.cfg.inertia()

	var v float64
	switch d.Actuator {
	case kinematics.ActuatorLocked:
		return 0
	case kinematics.ActuatorVelocity:
		v = d.Command
	case kinematics.ActuatorAcceleration:
		v = d.Velocity + dt*d.Command
	case kinematics.ActuatorForce, kinematics.ActuatorPassive, kinematics.ActuatorServo:
		f := d.Force - d.SpringStiffness*(d.Position-d.RestPosition) - d.DampingCoefficient*d.Velocity
		v = applyFriction(d.Velocity+dt*f/m, d.CoulombFriction*dt/m)
		if d.Actuator == kinematics.ActuatorServo {
			lim := d.Limit(kinematics.Force)
			impulse := utils.Clamp(m*(d.Command-v), lim.Min*dt, lim.Max*dt)
			v += impulse / m
		}
	}
	v = d.Limit(kinematics.Velocity).Clamp(v)

	if limitPosition {
		lim := d.Limit(kinematics.Position)
		v = utils.Clamp(v, (lim.Min-d.Position)/dt, (lim.Max-d.Position)/dt)
	}
	return v
}

// applyFriction removes up to maxChange of velocity, never reversing its sign.
func applyFriction(v, maxChange float64) float64 {
	if math.Abs(v) <= maxChange {
		return 0
	}
	return v - math.Copysign(maxChange, v)
}
