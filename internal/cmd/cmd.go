// Package internalcmd builds the pebble-build command tree.
package internalcmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	pebblebuild "github.com/YclepticStudios/pebble-build"
	"github.com/YclepticStudios/pebble-build/build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/YclepticStudios/pebble-build/tool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "pebble-build"

// DefaultAppVersion matches the version the appinfo manifest declares.
const DefaultAppVersion = "1.2"

// RootOptions holds the options shared by every subcommand.
type RootOptions struct {
	LogLevel zapcore.Level `flag:"log-level" flagdescr:"set the logging level" flaggroup:"Logging" flagenv:"true"`
	// Logger is computed state, initialized from LogLevel after unmarshalling.
	Logger *zap.Logger `flagignore:"true"`
}

// Attach makes RootOptions implement the Options interface.
func (o *RootOptions) Attach(c *cobra.Command) error {
	return pebblebuild.Define(c, o)
}

// Initialize creates the logger from the parsed logging options.
func (o *RootOptions) Initialize() error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(o.LogLevel)
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}
	o.Logger = logger

	return nil
}

type rootOptionsKey struct{}

// Context implements the setter part of context propagation.
func (o *RootOptions) Context(ctx context.Context) context.Context {
	return context.WithValue(ctx, rootOptionsKey{}, o)
}

// FromContext implements the getter part of context propagation.
func (o *RootOptions) FromContext(ctx context.Context) error {
	value, ok := ctx.Value(rootOptionsKey{}).(*RootOptions)
	if !ok {
		return fmt.Errorf("RootOptions not found in context")
	}
	*o = *value

	return nil
}

// NewRoot creates the pebble-build root command.
func NewRoot() (*cobra.Command, error) {
	rootOpts := &RootOptions{
		LogLevel: zapcore.InfoLevel,
	}

	rootC := &cobra.Command{
		Use:           appName,
		Short:         "Configure a Pebble watchapp build",
		Long:          "Two-phase build configuration: tools declare their flags, then mutate the build environment with the parsed values.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runner, err := NewRunner(zap.NewNop())
	if err != nil {
		return nil, err
	}
	configureC, err := newConfigureC(rootOpts, runner)
	if err != nil {
		return nil, err
	}
	rootC.AddCommand(configureC)

	if err := pebblebuild.SetupConfig(rootC, pebblebuild.ConfigOptions{}); err != nil {
		return nil, err
	}
	if err := pebblebuild.SetupDebug(rootC, pebblebuild.DebugOptions{Exit: true}); err != nil {
		return nil, err
	}

	return rootC, nil
}

// NewRunner assembles the configure tools in their run order.
func NewRunner(logger *zap.Logger) (*build.Runner, error) {
	runner := build.NewRunner(logger)
	tools := []build.Tool{
		tool.NewDebugDefine(),
		tool.NewPlatformDefines(),
		tool.NewBackgroundWorker(),
		tool.NewAppVersion(DefaultAppVersion),
	}
	for _, t := range tools {
		if err := runner.Register(t); err != nil {
			return nil, err
		}
	}

	return runner, nil
}

func newConfigureC(rootOpts *RootOptions, runner *build.Runner) (*cobra.Command, error) {
	configureC := &cobra.Command{
		Use:   "configure",
		Short: "Run the configure phase and print the resulting environment",
		PreRunE: func(c *cobra.Command, args []string) error {
			// The config file must be read before any Unmarshal so its
			// values reach the root options too, not only the tools
			inUse, message, err := pebblebuild.UseConfigSimple(c)
			if err != nil {
				return err
			}

			if err := pebblebuild.Unmarshal(c, rootOpts); err != nil {
				return err
			}
			if err := rootOpts.Initialize(); err != nil {
				return err
			}
			c.SetContext(rootOpts.Context(c.Context()))

			if inUse {
				rootOpts.Logger.Debug(message)
			}

			pebblebuild.UseDebug(c, c.OutOrStdout())

			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			logger := rootOpts.Logger
			runner.SetLogger(logger)

			env := buildenv.New()
			if err := runner.Configure(c, env); err != nil {
				return err
			}

			logger.Info("configured build environment",
				zap.Int("tools", len(runner.Tools())),
				zap.Strings("defines", env.Get(buildenv.Defines)),
			)

			var sb strings.Builder
			if err := env.Dump(&sb); err != nil {
				return err
			}
			fmt.Fprint(c.OutOrStdout(), sb.String())

			return nil
		},
	}

	if err := rootOpts.Attach(configureC); err != nil {
		return nil, err
	}
	if err := runner.RegisterOptions(configureC); err != nil {
		return nil, err
	}

	return configureC, nil
}

// Execute runs the CLI, returning the process exit code.
func Execute() int {
	rootC, err := NewRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 1
	}

	if err := rootC.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 1
	}

	return 0
}
