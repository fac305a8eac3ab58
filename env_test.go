package pebblebuild

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
)

type EnvBindingSuite struct {
	suite.Suite
}

func TestEnvBindingSuite(t *testing.T) {
	suite.Run(t, new(EnvBindingSuite))
}

func (suite *EnvBindingSuite) TearDownTest() {
	SetEnvPrefix("PEBBLE_BUILD")
}

func (suite *EnvBindingSuite) TestEnvName() {
	suite.Equal("PEBBLE_BUILD_BUILD_DEBUG", envName("build-debug"))
	suite.Equal("PEBBLE_BUILD_BUILD_JOBS", envName("build.jobs"))
}

func (suite *EnvBindingSuite) TestSetEnvPrefix() {
	SetEnvPrefix("my-app")

	suite.Equal("MY_APP", EnvPrefix())
	suite.Equal("MY_APP_SDK_ROOT", envName("sdk-root"))
}

func (suite *EnvBindingSuite) TestBindEnvHonorsAnnotations() {
	c := &cobra.Command{Use: "configure"}
	c.Flags().String("sdk-root", "", "test flag")
	c.Flags().String("unbound", "", "test flag")
	suite.Require().NoError(c.Flags().SetAnnotation("sdk-root", FlagEnvsAnnotation, []string{"PEBBLE_BUILD_SDK_ROOT"}))

	bindEnv(c)

	s := GetScope(c)
	suite.True(s.IsEnvBound("sdk-root"))
	suite.False(s.IsEnvBound("unbound"))

	suite.T().Setenv("PEBBLE_BUILD_SDK_ROOT", "/opt/pebble-sdk")
	suite.Equal("/opt/pebble-sdk", s.Viper().GetString("sdk-root"))
}

func (suite *EnvBindingSuite) TestBindEnvIsIdempotent() {
	c := &cobra.Command{Use: "configure"}
	c.Flags().String("sdk-root", "", "test flag")
	suite.Require().NoError(c.Flags().SetAnnotation("sdk-root", FlagEnvsAnnotation, []string{"PEBBLE_BUILD_SDK_ROOT"}))

	bindEnv(c)
	bindEnv(c)

	suite.True(GetScope(c).IsEnvBound("sdk-root"))
}
