package simulation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Aoi-hosizora/dart/kinematics"
	"github.com/Aoi-hosizora/dart/utils"
)

// Config describes a world and the skeletons in it.
type Config struct {
	TimeStep float64 `json:"time_step" yaml:"time_step"`
	// Inertia is the generalized inertia of every degree of freedom. Zero selects 1.
	Inertia   float64          `json:"inertia,omitempty" yaml:"inertia,omitempty"`
	Skeletons []SkeletonConfig `json:"skeletons,omitempty" yaml:"skeletons,omitempty"`
}

// SkeletonConfig describes a skeleton as a list of bodies. A body's parent must be listed before it.
type SkeletonConfig struct {
	Name   string       `json:"name" yaml:"name"`
	Bodies []BodyConfig `json:"bodies" yaml:"bodies"`
}

// BodyConfig describes a body and the joint connecting it to its parent. An empty parent makes
// the body a root.
type BodyConfig struct {
	Name   string                 `json:"name" yaml:"name"`
	Parent string                 `json:"parent,omitempty" yaml:"parent,omitempty"`
	Joint  kinematics.JointConfig `json:"joint" yaml:"joint"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.TimeStep == 0 {
		multierr.AppendInto(&err, utils.NewConfigValidationFieldRequiredError(path, "time_step"))
	} else if cfg.TimeStep < 0 || !utils.IsFinite(cfg.TimeStep) {
		multierr.AppendInto(&err, utils.NewConfigValidationError(path,
			errors.Errorf("time_step must be positive, got %v", cfg.TimeStep)))
	}
	if cfg.Inertia < 0 || !utils.IsFinite(cfg.Inertia) {
		multierr.AppendInto(&err, utils.NewConfigValidationError(path,
			errors.Errorf("inertia must be positive, got %v", cfg.Inertia)))
	}
	names := map[string]bool{}
	for i, skel := range cfg.Skeletons {
		skelPath := fmt.Sprintf("%s.skeletons.%d", path, i)
		multierr.AppendInto(&err, skel.Validate(skelPath))
		if names[skel.Name] {
			multierr.AppendInto(&err, utils.NewConfigValidationError(skelPath,
				errors.Errorf("duplicate skeleton name %q", skel.Name)))
		}
		names[skel.Name] = true
	}
	return err
}

// Validate ensures all parts of the config are valid.
func (cfg *SkeletonConfig) Validate(path string) error {
	var err error
	if cfg.Name == "" {
		multierr.AppendInto(&err, utils.NewConfigValidationFieldRequiredError(path, "name"))
	}
	seen := map[string]bool{}
	for i, body := range cfg.Bodies {
		bodyPath := fmt.Sprintf("%s.bodies.%d", path, i)
		if body.Name == "" {
			multierr.AppendInto(&err, utils.NewConfigValidationFieldRequiredError(bodyPath, "name"))
		}
		if body.Parent != "" && !seen[body.Parent] {
			multierr.AppendInto(&err, utils.NewConfigValidationError(bodyPath,
				errors.Errorf("parent %q must be listed before its children", body.Parent)))
		}
		multierr.AppendInto(&err, body.Joint.Validate(bodyPath+".joint"))
		seen[body.Name] = true
	}
	return err
}

// inertia returns the configured inertia, defaulting to 1.
func (cfg *Config) inertia() float64 {
	if cfg.Inertia == 0 {
		return 1
	}
	return cfg.Inertia
}

// ReadConfig reads and validates a config file. Files ending in .yaml or .yml are parsed as
// YAML, everything else as JSON.
func ReadConfig(path string) (*Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %q", path)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", path)
	}
	if err := cfg.Validate("simulation"); err != nil {
		return nil, err
	}
	return &cfg, nil
}
