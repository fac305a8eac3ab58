// Package tool contains the build configuration tools: each one declares
// its flags during the options phase and mutates the build environment
// during the configure phase.
package tool

import (
	pebblebuild "github.com/YclepticStudios/pebble-build"
	"github.com/YclepticStudios/pebble-build/build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/spf13/cobra"
)

// DebugDefineSymbol is the preprocessor symbol marking a build that
// includes debug code.
const DebugDefineSymbol = "BUILD_DEBUG"

// DebugDefineOptions holds the debug-define tool's flags.
type DebugDefineOptions struct {
	BuildDebug bool `flag:"build-debug" flagdescr:"Mark a build to include debug code" flaggroup:"Build"`
}

// Attach makes DebugDefineOptions implement the Options interface.
func (o *DebugDefineOptions) Attach(c *cobra.Command) error {
	return pebblebuild.Define(c, o)
}

// DebugDefine appends BUILD_DEBUG to the environment's DEFINES when the
// --build-debug flag is set.
//
// The append happens once per configure call, after any prior entries, with
// no de-duplication: configuring twice appends the symbol twice.
type DebugDefine struct {
	opts *DebugDefineOptions
}

// NewDebugDefine creates the debug-define tool.
func NewDebugDefine() *DebugDefine {
	return &DebugDefine{
		opts: &DebugDefineOptions{},
	}
}

// Name implements build.Tool.
func (t *DebugDefine) Name() string {
	return "debug-define"
}

// Options implements build.Tool: it registers the --build-debug flag.
func (t *DebugDefine) Options(c *cobra.Command) error {
	return t.opts.Attach(c)
}

// Configure implements build.Tool: it reads the parsed flag value and, when
// true, appends the debug symbol to DEFINES. When false it does nothing.
func (t *DebugDefine) Configure(ctx *build.Context) error {
	if err := pebblebuild.Unmarshal(ctx.Command, t.opts); err != nil {
		return err
	}

	if t.opts.BuildDebug {
		ctx.Env.AppendValue(buildenv.Defines, DebugDefineSymbol)
	}

	return nil
}
