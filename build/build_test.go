package build

import (
	"errors"
	"testing"

	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type RunnerSuite struct {
	suite.Suite
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

// fakeTool counts options runs and appends a marker to the env on configure.
type fakeTool struct {
	name         string
	optionsErr   error
	configureErr error
	optionsRuns  int
}

func (t *fakeTool) Name() string {
	return t.name
}

func (t *fakeTool) Options(c *cobra.Command) error {
	t.optionsRuns++

	return t.optionsErr
}

func (t *fakeTool) Configure(ctx *Context) error {
	if t.configureErr != nil {
		return t.configureErr
	}
	ctx.Env.AppendValue("CONFIGURED", t.name)

	return nil
}

func (suite *RunnerSuite) TestRegisterRejectsDuplicates() {
	r := NewRunner(zap.NewNop())

	suite.Require().NoError(r.Register(&fakeTool{name: "a"}))
	suite.ErrorContains(r.Register(&fakeTool{name: "a"}), "already registered")
	suite.Len(r.Tools(), 1)
}

func (suite *RunnerSuite) TestRegisterOptionsRunsEveryToolOnce() {
	r := NewRunner(zap.NewNop())
	a := &fakeTool{name: "a"}
	b := &fakeTool{name: "b"}
	suite.Require().NoError(r.Register(a))
	suite.Require().NoError(r.Register(b))

	suite.Require().NoError(r.RegisterOptions(&cobra.Command{Use: "configure"}))

	suite.Equal(1, a.optionsRuns)
	suite.Equal(1, b.optionsRuns)
}

func (suite *RunnerSuite) TestRegisterOptionsWrapsToolError() {
	r := NewRunner(zap.NewNop())
	suite.Require().NoError(r.Register(&fakeTool{name: "broken", optionsErr: errors.New("boom")}))

	err := r.RegisterOptions(&cobra.Command{Use: "configure"})

	suite.ErrorContains(err, `tool "broken": options phase: boom`)
}

func (suite *RunnerSuite) TestConfigureRunsInRegistrationOrder() {
	r := NewRunner(zap.NewNop())
	suite.Require().NoError(r.Register(&fakeTool{name: "first"}))
	suite.Require().NoError(r.Register(&fakeTool{name: "second"}))
	suite.Require().NoError(r.Register(&fakeTool{name: "third"}))

	env := buildenv.New()
	suite.Require().NoError(r.Configure(&cobra.Command{Use: "configure"}, env))

	suite.Equal([]string{"first", "second", "third"}, env.Get("CONFIGURED"))
}

func (suite *RunnerSuite) TestConfigureStopsAtFirstError() {
	r := NewRunner(zap.NewNop())
	suite.Require().NoError(r.Register(&fakeTool{name: "first"}))
	suite.Require().NoError(r.Register(&fakeTool{name: "broken", configureErr: errors.New("boom")}))
	suite.Require().NoError(r.Register(&fakeTool{name: "third"}))

	env := buildenv.New()
	err := r.Configure(&cobra.Command{Use: "configure"}, env)

	suite.ErrorContains(err, `tool "broken": configure phase: boom`)
	suite.Equal([]string{"first"}, env.Get("CONFIGURED"))
}

func (suite *RunnerSuite) TestNilLoggerFallsBackToNop() {
	r := NewRunner(nil)
	r.SetLogger(nil)

	env := buildenv.New()
	suite.Require().NoError(r.Configure(&cobra.Command{Use: "configure"}, env))
}
