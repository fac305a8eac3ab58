package pebblebuild

import (
	"context"

	"github.com/spf13/cobra"
)

// Options represents a struct that can define command-line flags, env vars,
// and config file keys for a build command.
//
// Types implementing this interface can be used with Define() to generate
// flags from struct fields during the options phase.
type Options interface {
	Attach(*cobra.Command) error
}

// ValidatableOptions extends Options with validation capabilities.
//
// The Validate method is called automatically during Unmarshal().
type ValidatableOptions interface {
	Validate(context.Context) []error
}

// TransformableOptions extends Options with transformation capabilities.
//
// The Transform method is called automatically during Unmarshal() before validation.
type TransformableOptions interface {
	Transform(context.Context) error
}
