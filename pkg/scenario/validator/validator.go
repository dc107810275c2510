// Package validator runs structural and advisory checks over a parsed
// scenario document before it reaches the scheduler.
package validator

import (
	"fmt"
	"strings"

	"github.com/jihwankim/chaos-harness/pkg/scenario"
)

// knownInjectorTypes is kept here (not imported from pkg/injection) to avoid
// a dependency from the document layer onto the execution layer; it is kept
// in sync with pkg/injection/registry.go's canonical name constants.
var knownInjectorTypes = map[string]bool{
	"network_latency": true, "packet_loss": true, "tcp_reset": true,
	"cpu_starvation": true, "cpu_quota": true,
	"disk_slow": true, "disk_failure": true, "disk_space": true,
	"memory_pressure": true, "memory_leak": true, "oom_killer": true,
	"process_kill": true, "process_suspend": true,
}

// Validator accumulates warnings (non-fatal) and errors (fatal) across a
// full pass over a scenario, so a caller can report every problem at once
// instead of stopping at the first one.
type Validator struct {
	Warnings []string
	Errors   []string
}

func New() *Validator {
	return &Validator{Warnings: make([]string, 0), Errors: make([]string, 0)}
}

// Validate runs every check against s. It returns an error built from the
// accumulated Errors slice; call GetReport for the full human-readable
// breakdown including Warnings.
func (v *Validator) Validate(s *scenario.Scenario) error {
	v.Warnings = v.Warnings[:0]
	v.Errors = v.Errors[:0]

	if err := s.Validate(); err != nil {
		v.Errors = append(v.Errors, err.Error())
	}

	v.checkInjectorTypes(s)
	v.checkDangerousScenarios(s)
	v.checkAdvisoryDurations(s)

	if len(v.Errors) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(v.Errors))
	}
	return nil
}

func (v *Validator) HasWarnings() bool { return len(v.Warnings) > 0 }
func (v *Validator) HasErrors() bool   { return len(v.Errors) > 0 }

// GetReport renders the accumulated errors and warnings.
func (v *Validator) GetReport() string {
	var sb strings.Builder

	if len(v.Errors) > 0 {
		sb.WriteString("ERRORS:\n")
		for _, e := range v.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", e))
		}
	}
	if len(v.Warnings) > 0 {
		sb.WriteString("\nWARNINGS:\n")
		for _, w := range v.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}
	if len(v.Errors) == 0 && len(v.Warnings) == 0 {
		sb.WriteString("Validation passed with no issues.\n")
	}
	return sb.String()
}

func (v *Validator) checkInjectorTypes(s *scenario.Scenario) {
	for i, phase := range s.Phases {
		for j, injection := range phase.Injections {
			if injection.Type != "" && !knownInjectorTypes[injection.Type] {
				v.Warnings = append(v.Warnings, fmt.Sprintf(
					"phase[%d].injections[%d].type '%s' is not a recognized injector", i, j, injection.Type))
			}
		}
	}
}

func (v *Validator) checkDangerousScenarios(s *scenario.Scenario) {
	for i, phase := range s.Phases {
		for j, injection := range phase.Injections {
			if injection.Type != "packet_loss" {
				continue
			}
			rate, ok := scenario.ParamInt(injection.Parameters, "rate")
			if ok && rate >= 1 {
				v.Warnings = append(v.Warnings, fmt.Sprintf(
					"phase[%d].injections[%d] requests 100%% packet loss, which fully isolates the target", i, j))
			}
		}
	}
}

func (v *Validator) checkAdvisoryDurations(s *scenario.Scenario) {
	if s.Duration.Duration().Hours() > 24 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("scenario duration is very long (%.1f hours)", s.Duration.Duration().Hours()))
	}
	if s.TotalDuration().Duration().Hours() > 1 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("total phase duration is long (%.1f hours) - ensure this is intentional", s.TotalDuration().Duration().Hours()))
	}
}
