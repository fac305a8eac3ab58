package tool

import (
	pebblebuild "github.com/YclepticStudios/pebble-build"
	"github.com/YclepticStudios/pebble-build/build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/YclepticStudios/pebble-build/target"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// PlatformDefinesOptions holds the platform tool's flags.
type PlatformDefinesOptions struct {
	TargetPlatform target.Platform `flag:"target-platform" flagshort:"t" flagdescr:"Pebble hardware platform to configure the build for" flaggroup:"Build" flagenv:"true"`
}

// Attach makes PlatformDefinesOptions implement the Options interface.
func (o *PlatformDefinesOptions) Attach(c *cobra.Command) error {
	return pebblebuild.Define(c, o)
}

// PlatformDefines appends the SDK platform symbols (PBL_COLOR/PBL_BW,
// PBL_RECT/PBL_ROUND, PBL_PLATFORM_*) for the selected target platform.
type PlatformDefines struct {
	opts *PlatformDefinesOptions
}

// NewPlatformDefines creates the platform tool, targeting basalt by default.
func NewPlatformDefines() *PlatformDefines {
	return &PlatformDefines{
		opts: &PlatformDefinesOptions{
			TargetPlatform: target.Basalt,
		},
	}
}

// Name implements build.Tool.
func (t *PlatformDefines) Name() string {
	return "platform-defines"
}

// Options implements build.Tool: it registers the --target-platform enum flag.
func (t *PlatformDefines) Options(c *cobra.Command) error {
	return t.opts.Attach(c)
}

// Configure implements build.Tool: it appends the platform's symbols to DEFINES.
func (t *PlatformDefines) Configure(ctx *build.Context) error {
	if err := pebblebuild.Unmarshal(ctx.Command, t.opts); err != nil {
		return err
	}

	platform := t.opts.TargetPlatform
	ctx.Env.AppendValue(buildenv.Defines, platform.Defines()...)
	ctx.Logger.Info("targeting platform", zap.Stringer("platform", platform))

	return nil
}

// Platform returns the configured target platform.
func (t *PlatformDefines) Platform() target.Platform {
	return t.opts.TargetPlatform
}
