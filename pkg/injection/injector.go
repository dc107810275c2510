// Package injection provides the polymorphic fault-injection dispatch layer:
// the Injector contract, the name-keyed Registry, and the Executor that
// tracks active injections.
package injection

import (
	"context"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
)

// Injector is the capability set every fault kind implements. Target-type
// constraints (e.g. tcp_reset requires a Network target) are each injector's
// own responsibility, enforced inside Apply.
type Injector interface {
	Apply(ctx context.Context, t target.Target) (handle.Handle, error)
	Remove(ctx context.Context, h handle.Handle) error
	Name() string
	RequiredCapabilities() []string
}

// Validatable is an optional extension an Injector may implement for a
// pre-apply sanity check.
type Validatable interface {
	Validate(t target.Target) error
}
