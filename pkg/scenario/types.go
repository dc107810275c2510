// Package scenario defines the declarative scenario document: a named
// sequence of timed phases, each injecting one or more faults against a
// target, parsed from YAML, JSON, or TOML.
package scenario

import (
	"net"
	"strconv"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/target"
)

// Scenario is a complete chaos test: a name, total duration, optional
// ramp-up, and the ordered phases that make it up.
type Scenario struct {
	Name        string            `yaml:"name" json:"name" toml:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Seed        *int64            `yaml:"seed,omitempty" json:"seed,omitempty" toml:"seed,omitempty"`
	Duration    Duration          `yaml:"duration" json:"duration" toml:"duration"`
	RampUp      Duration          `yaml:"ramp_up,omitempty" json:"ramp_up,omitempty" toml:"ramp_up,omitempty"`
	Phases      []Phase           `yaml:"phases" json:"phases" toml:"phases"`
	Labels      map[string]string `yaml:"labels,omitempty" json:"labels,omitempty" toml:"labels,omitempty"`
}

// Phase is a single time slice of the scenario: a set of injections applied
// in order at the phase's start and removed at its end. If any phase sets
// Parallel, the runner runs all phases concurrently.
type Phase struct {
	Name       string            `yaml:"name" json:"name" toml:"name"`
	Duration   Duration          `yaml:"duration" json:"duration" toml:"duration"`
	Injections []InjectionConfig `yaml:"injections,omitempty" json:"injections,omitempty" toml:"injections,omitempty"`
	Parallel   bool              `yaml:"parallel,omitempty" json:"parallel,omitempty" toml:"parallel,omitempty"`
}

// InjectionConfig names one injector, the target it acts on, and its
// free-form parameters. The runner applies injections through
// Executor.Inject, which calls the injector's Apply, so these parameters
// do not reach the injector.
type InjectionConfig struct {
	Type       string                 `yaml:"type" json:"type" toml:"type"`
	Target     TargetConfig           `yaml:"target" json:"target" toml:"target"`
	Parameters map[string]interface{} `yaml:"parameters,omitempty" json:"parameters,omitempty" toml:"parameters,omitempty"`
}

// TargetConfig is the document-level representation of a target.Target;
// exactly one of its fields is expected to be set.
type TargetConfig struct {
	PID         *int   `yaml:"pid,omitempty" json:"pid,omitempty" toml:"pid,omitempty"`
	Address     string `yaml:"address,omitempty" json:"address,omitempty" toml:"address,omitempty"`
	ContainerID string `yaml:"container_id,omitempty" json:"container_id,omitempty" toml:"container_id,omitempty"`
	Pattern     string `yaml:"pattern,omitempty" json:"pattern,omitempty" toml:"pattern,omitempty"`
}

// ToTarget resolves a TargetConfig to a target.Target, checking fields in
// priority order: pid, address, container_id, pattern.
func (c TargetConfig) ToTarget() (target.Target, error) {
	if c.PID != nil {
		return target.Process(*c.PID), nil
	}
	if c.Address != "" {
		if _, _, err := net.SplitHostPort(c.Address); err != nil {
			return target.Target{}, chaoserr.New(chaoserr.InvalidConfig, "invalid address %q: %v", c.Address, err)
		}
		return target.Network(c.Address), nil
	}
	if c.ContainerID != "" {
		return target.Container(c.ContainerID), nil
	}
	if c.Pattern != "" {
		return target.ProcessPattern(c.Pattern), nil
	}
	return target.Target{}, chaoserr.New(chaoserr.InvalidConfig, "no target specified")
}

// TotalDuration sums every phase's duration; it ignores RampUp, which is
// distributed onto each phase by the scheduler rather than summed here.
func (s Scenario) TotalDuration() Duration {
	var total Duration
	for _, p := range s.Phases {
		total += p.Duration
	}
	return total
}

// Validate checks structural invariants, returning the first violation
// found. Error text intentionally matches the field being checked so a
// reader can trace a failure back to its line in the document.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return chaoserr.New(chaoserr.InvalidConfig, "scenario name cannot be empty")
	}
	if len(s.Phases) == 0 {
		return chaoserr.New(chaoserr.InvalidConfig, "scenario must have at least one phase")
	}

	for i, phase := range s.Phases {
		if phase.Name == "" {
			return chaoserr.New(chaoserr.InvalidConfig, "phase %d name cannot be empty", i)
		}
		if phase.Duration <= 0 {
			return chaoserr.New(chaoserr.InvalidConfig, "phase '%s' duration must be > 0", phase.Name)
		}
		for j, injection := range phase.Injections {
			if injection.Type == "" {
				return chaoserr.New(chaoserr.InvalidConfig, "injection %d in phase '%s' must have a type", j, phase.Name)
			}
			if _, err := injection.Target.ToTarget(); err != nil {
				return chaoserr.Wrap(chaoserr.InvalidConfig, err, "injection %d in phase '%s' has an invalid target", j, phase.Name)
			}
		}
	}
	return nil
}

// ParamInt reads an integer-valued parameter, accepting both JSON-decoded
// float64 and native int/int64 representations.
func ParamInt(params map[string]interface{}, key string) (int, bool) {
	switch v := params[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
