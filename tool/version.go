package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	pebblebuild "github.com/YclepticStudios/pebble-build"
	"github.com/YclepticStudios/pebble-build/build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

// AppVersionOptions holds the version tool's flags.
type AppVersionOptions struct {
	AppVersion string `flag:"app-version" flagdescr:"App version as major.minor" flaggroup:"Build" mod:"trim" validate:"required"`
}

// Attach makes AppVersionOptions implement the Options interface.
func (o *AppVersionOptions) Attach(c *cobra.Command) error {
	return pebblebuild.Define(c, o)
}

// Transform makes AppVersionOptions implement the TransformableOptions interface.
func (o *AppVersionOptions) Transform(ctx context.Context) error {
	return modifiers.New().Struct(ctx, o)
}

// Validate makes AppVersionOptions implement the ValidatableOptions interface.
func (o *AppVersionOptions) Validate(ctx context.Context) []error {
	var errs []error
	if err := validator.New().StructCtx(ctx, o); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrs {
				errs = append(errs, fieldErr)
			}
		} else {
			errs = append(errs, fmt.Errorf("validator.Struct() failed unexpectedly: %w", err))
		}
	}

	if _, _, err := parseVersion(o.AppVersion); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// AppVersion injects the app version into the environment as the
// APP_VERSION_MAJOR and APP_VERSION_MINOR symbols.
type AppVersion struct {
	opts *AppVersionOptions
}

// NewAppVersion creates the version tool with the given default version.
func NewAppVersion(defaultVersion string) *AppVersion {
	return &AppVersion{
		opts: &AppVersionOptions{
			AppVersion: defaultVersion,
		},
	}
}

// Name implements build.Tool.
func (t *AppVersion) Name() string {
	return "app-version"
}

// Options implements build.Tool: it registers the --app-version flag.
func (t *AppVersion) Options(c *cobra.Command) error {
	return t.opts.Attach(c)
}

// Configure implements build.Tool.
func (t *AppVersion) Configure(ctx *build.Context) error {
	if err := pebblebuild.Unmarshal(ctx.Command, t.opts); err != nil {
		return err
	}

	major, minor, err := parseVersion(t.opts.AppVersion)
	if err != nil {
		return err
	}

	ctx.Env.AppendValue(buildenv.Defines,
		fmt.Sprintf("APP_VERSION_MAJOR=%d", major),
		fmt.Sprintf("APP_VERSION_MINOR=%d", minor),
	)

	return nil
}

// parseVersion splits a major.minor version string.
func parseVersion(version string) (major, minor int, err error) {
	parts := strings.Split(version, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("app version %q must be major.minor", version)
	}
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("app version %q: invalid major: %w", version, err)
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("app version %q: invalid minor: %w", version, err)
	}

	return major, minor, nil
}
