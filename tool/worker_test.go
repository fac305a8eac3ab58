package tool

import (
	"testing"

	"github.com/YclepticStudios/pebble-build/build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type BackgroundWorkerSuite struct {
	suite.Suite
}

func TestBackgroundWorkerSuite(t *testing.T) {
	suite.Run(t, new(BackgroundWorkerSuite))
}

func (suite *BackgroundWorkerSuite) newConfigured(t build.Tool, args ...string) *build.Context {
	c := &cobra.Command{Use: "configure"}
	suite.Require().NoError(t.Options(c))
	suite.Require().NoError(c.ParseFlags(args))

	return &build.Context{
		Command: c,
		Env:     buildenv.New(),
		Logger:  zap.NewNop(),
	}
}

func (suite *BackgroundWorkerSuite) TestWorkerBuiltByDefault() {
	t := NewBackgroundWorker()
	ctx := suite.newConfigured(t)

	suite.Require().NoError(t.Configure(ctx))

	suite.Equal([]string{WorkerSymbol}, ctx.Env.Get(buildenv.Defines))
}

func (suite *BackgroundWorkerSuite) TestWorkerDisabled() {
	t := NewBackgroundWorker()
	ctx := suite.newConfigured(t, "--worker=false")

	suite.Require().NoError(t.Configure(ctx))

	suite.Nil(ctx.Env.Get(buildenv.Defines))
}
