package pebblebuild

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (suite *ConfigSuite) TearDownTest() {
	SetEnvPrefix("PEBBLE_BUILD")
}

func (suite *ConfigSuite) TestSetupConfigCreatesFlag() {
	c := &cobra.Command{Use: "mytool"}

	suite.Require().NoError(SetupConfig(c, ConfigOptions{}))

	f := c.PersistentFlags().Lookup("config")
	suite.Require().NotNil(f)
	suite.Contains(f.Usage, "/etc/mytool")
}

func (suite *ConfigSuite) TestSetupConfigDerivesEnvPrefix() {
	c := &cobra.Command{Use: "mytool"}

	suite.Require().NoError(SetupConfig(c, ConfigOptions{}))

	suite.Equal("MYTOOL", EnvPrefix())
	suite.Equal("MYTOOL_SDK_ROOT", envName("sdk-root"))
}

func (suite *ConfigSuite) TestSetupConfigKeepsExplicitAppNamePrefix() {
	c := &cobra.Command{Use: "mytool"}

	suite.Require().NoError(SetupConfig(c, ConfigOptions{AppName: "othertool"}))

	suite.Equal("PEBBLE_BUILD", EnvPrefix())
}

func (suite *ConfigSuite) TestSetupConfigRejectsNonRoot() {
	root := &cobra.Command{Use: "mytool"}
	child := &cobra.Command{Use: "configure"}
	root.AddCommand(child)

	suite.Error(SetupConfig(child, ConfigOptions{}))
}
