// Package build runs the two-phase lifecycle of a build configuration:
// tools first declare their flags (options phase), then act on the parsed
// values by mutating a shared build environment (configure phase).
package build

import (
	"fmt"

	pebblebuild "github.com/YclepticStudios/pebble-build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Tool is a single build configuration step.
//
// Options is called once to declare the tool's flags on the command;
// Configure is called once per build invocation with the parsed values and
// the mutable environment. Tools append to the environment, never remove or
// read back.
type Tool interface {
	Name() string
	Options(c *cobra.Command) error
	Configure(ctx *Context) error
}

// Context carries the state of one configure run into tools.
//
// The environment is owned by the caller and shared across tools; each tool
// observes the mutations of the tools configured before it.
type Context struct {
	Command *cobra.Command
	Env     *buildenv.Env
	Logger  *zap.Logger
}

// Viper returns the command-scoped viper carrying the parsed option values.
func (ctx *Context) Viper() *viper.Viper {
	return pebblebuild.GetViper(ctx.Command)
}

// Runner holds an ordered list of tools and drives them through both phases.
type Runner struct {
	tools  []Tool
	byName map[string]bool
	logger *zap.Logger
}

// NewRunner creates a Runner logging through the given logger.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		byName: make(map[string]bool),
		logger: logger,
	}
}

// SetLogger swaps the runner's logger, typically once the logging options
// have been parsed.
func (r *Runner) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger = logger
}

// Register appends a tool to the run order. A tool name can be registered
// at most once.
func (r *Runner) Register(t Tool) error {
	if r.byName[t.Name()] {
		return fmt.Errorf("tool %q already registered", t.Name())
	}
	r.byName[t.Name()] = true
	r.tools = append(r.tools, t)

	return nil
}

// Tools returns the registered tools in run order.
func (r *Runner) Tools() []Tool {
	return r.tools
}

// RegisterOptions runs the options phase: every tool declares its flags on
// the command, in registration order.
func (r *Runner) RegisterOptions(c *cobra.Command) error {
	for _, t := range r.tools {
		if err := t.Options(c); err != nil {
			return fmt.Errorf("tool %q: options phase: %w", t.Name(), err)
		}
		r.logger.Debug("registered options", zap.String("tool", t.Name()))
	}

	return nil
}

// Configure runs the configure phase: every tool acts on its parsed options
// by mutating env, in registration order, stopping at the first error.
func (r *Runner) Configure(c *cobra.Command, env *buildenv.Env) error {
	ctx := &Context{
		Command: c,
		Env:     env,
		Logger:  r.logger,
	}

	for _, t := range r.tools {
		if err := t.Configure(ctx); err != nil {
			return fmt.Errorf("tool %q: configure phase: %w", t.Name(), err)
		}
		r.logger.Debug("configured", zap.String("tool", t.Name()))
	}

	return nil
}
