package pebblebuild

import (
	"testing"

	pebblebuilderrors "github.com/YclepticStudios/pebble-build/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
)

type ScopeSuite struct {
	suite.Suite
}

func TestScopeSuite(t *testing.T) {
	suite.Run(t, new(ScopeSuite))
}

func (suite *ScopeSuite) TestGetScopeIsStablePerCommand() {
	c := &cobra.Command{Use: "configure"}

	first := GetScope(c)
	second := GetScope(c)

	suite.Same(first, second)
	suite.Same(first.Viper(), second.Viper())
}

func (suite *ScopeSuite) TestScopesAreIsolatedAcrossCommands() {
	a := &cobra.Command{Use: "a"}
	b := &cobra.Command{Use: "b"}

	suite.NotSame(GetScope(a), GetScope(b))
	suite.NotSame(GetViper(a), GetViper(b))
}

func (suite *ScopeSuite) TestEnvBoundBookkeeping() {
	s := GetScope(&cobra.Command{Use: "configure"})

	suite.False(s.IsEnvBound("build-debug"))
	s.SetBound("build-debug")
	suite.True(s.IsEnvBound("build-debug"))
}

func (suite *ScopeSuite) TestAddDefinedFlagRejectsDuplicates() {
	s := GetScope(&cobra.Command{Use: "configure"})

	suite.NoError(s.AddDefinedFlag("build-debug", "builddebug"))
	err := s.AddDefinedFlag("build-debug", "nested.builddebug")

	suite.ErrorIs(err, pebblebuilderrors.ErrDuplicateFlag)
}
