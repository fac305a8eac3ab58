package tool

import (
	"testing"

	"github.com/YclepticStudios/pebble-build/build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type DebugDefineSuite struct {
	suite.Suite
}

func TestDebugDefineSuite(t *testing.T) {
	suite.Run(t, new(DebugDefineSuite))
}

// newConfigured registers the tool's options on a fresh command and applies
// the given command line.
func (suite *DebugDefineSuite) newConfigured(t build.Tool, args ...string) *build.Context {
	c := &cobra.Command{Use: "configure"}
	suite.Require().NoError(t.Options(c))
	suite.Require().NoError(c.ParseFlags(args))

	return &build.Context{
		Command: c,
		Env:     buildenv.New(),
		Logger:  zap.NewNop(),
	}
}

func (suite *DebugDefineSuite) TestRegistersFlag() {
	t := NewDebugDefine()
	c := &cobra.Command{Use: "configure"}
	suite.Require().NoError(t.Options(c))

	f := c.Flags().Lookup("build-debug")
	suite.Require().NotNil(f)
	suite.Equal("false", f.DefValue)
	suite.Equal("Mark a build to include debug code", f.Usage)
}

func (suite *DebugDefineSuite) TestFlagAbsentLeavesDefinesUntouched() {
	t := NewDebugDefine()
	ctx := suite.newConfigured(t)

	suite.Require().NoError(t.Configure(ctx))

	suite.Nil(ctx.Env.Get(buildenv.Defines))
}

func (suite *DebugDefineSuite) TestFlagSetAppendsAfterPriorEntries() {
	t := NewDebugDefine()
	ctx := suite.newConfigured(t, "--build-debug")
	ctx.Env.AppendValue(buildenv.Defines, "FOO")

	suite.Require().NoError(t.Configure(ctx))

	suite.Equal([]string{"FOO", "BUILD_DEBUG"}, ctx.Env.Get(buildenv.Defines))
}

func (suite *DebugDefineSuite) TestRepeatedConfigureAppendsTwice() {
	t := NewDebugDefine()
	ctx := suite.newConfigured(t, "--build-debug")

	suite.Require().NoError(t.Configure(ctx))
	suite.Require().NoError(t.Configure(ctx))

	suite.Equal([]string{"BUILD_DEBUG", "BUILD_DEBUG"}, ctx.Env.Get(buildenv.Defines))
}

func (suite *DebugDefineSuite) TestName() {
	suite.Equal("debug-define", NewDebugDefine().Name())
}
