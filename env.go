package pebblebuild

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	envSep = "_"
	envRep = strings.NewReplacer("-", envSep, ".", envSep)
	prefix = "PEBBLE_BUILD" + envSep
)

const (
	// FlagEnvsAnnotation stores the environment variables bound to a flag.
	FlagEnvsAnnotation = "___pebblebuild_flagenvs"
)

// SetEnvPrefix overrides the default PEBBLE_BUILD prefix for bound
// environment variables.
func SetEnvPrefix(str string) {
	prefix = fmt.Sprintf("%s%s", strings.TrimSuffix(normEnv(str), envSep), envSep)
}

// EnvPrefix returns the current environment variable prefix, without the
// trailing separator.
func EnvPrefix() string {
	return strings.TrimSuffix(prefix, envSep)
}

// envName computes the environment variable bound to a flag name.
func envName(flagName string) string {
	return prefix + normEnv(flagName)
}

func normEnv(str string) string {
	return envRep.Replace(strings.ToUpper(str))
}

// bindEnv binds every flag carrying an env annotation to its environment
// variables in the command-scoped viper.
func bindEnv(c *cobra.Command) {
	s := GetScope(c)
	v := s.Viper()
	c.Flags().VisitAll(func(f *pflag.Flag) {
		envs, defineEnv := f.Annotations[FlagEnvsAnnotation]
		if !defineEnv || len(envs) == 0 {
			return
		}
		// Only bind once per flag per command
		if s.IsEnvBound(f.Name) {
			return
		}
		s.SetBound(f.Name)

		envBindingArgs := []string{f.Name}
		envBindingArgs = append(envBindingArgs, envs...)
		_ = v.BindEnv(envBindingArgs...)
	})
}
