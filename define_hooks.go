package pebblebuild

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/YclepticStudios/pebble-build/target"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"
	"go.uber.org/zap/zapcore"
)

// DefineHookFunc defines how to create a flag for a custom type.
//
// It receives the command, the struct field information, the field value,
// and the flag metadata to create specialized flag definitions beyond the
// standard kinds.
type DefineHookFunc func(c *cobra.Command, f reflect.StructField, field reflect.Value, name, short, descr string)

// Registry for predefined flag definition functions.
var defineHookRegistry = map[string]DefineHookFunc{
	"zapcore.Level":   DefineZapcoreLevelHookFunc(),
	"target.Platform": DefinePlatformHookFunc(),
}

// DefineZapcoreLevelHookFunc creates a flag definition function for zapcore.Level.
//
// It generates an enum flag with all valid log levels.
func DefineZapcoreLevelHookFunc() DefineHookFunc {
	return func(c *cobra.Command, f reflect.StructField, field reflect.Value, name, short, descr string) {
		if !field.CanAddr() {
			return
		}

		logLevels := map[zapcore.Level][]string{
			zapcore.DebugLevel: {"debug"},
			zapcore.InfoLevel:  {"info"},
			zapcore.WarnLevel:  {"warn"},
			zapcore.ErrorLevel: {"error"},
			zapcore.FatalLevel: {"fatal"},
		}

		keys := []int{}
		for k := range logLevels {
			keys = append(keys, int(k))
		}
		sort.Ints(keys)
		values := []string{}
		for _, k := range keys {
			values = append(values, logLevels[zapcore.Level(k)][0])
		}
		addendum := fmt.Sprintf(" {%s}", strings.Join(values, ","))

		fieldPtr := field.Addr().Interface().(*zapcore.Level)
		enumFlag := enumflag.New(fieldPtr, f.Type.String(), logLevels, enumflag.EnumCaseInsensitive)
		c.Flags().VarP(enumFlag, name, short, descr+addendum)
	}
}

// DefinePlatformHookFunc creates a flag definition function for target.Platform.
//
// It generates an enum flag accepting the Pebble platform names, with shell
// completion over them.
func DefinePlatformHookFunc() DefineHookFunc {
	return func(c *cobra.Command, f reflect.StructField, field reflect.Value, name, short, descr string) {
		if !field.CanAddr() {
			return
		}

		addendum := fmt.Sprintf(" {%s}", strings.Join(target.Names(), ","))

		fieldPtr := field.Addr().Interface().(*target.Platform)
		enumFlag := enumflag.New(fieldPtr, f.Type.String(), target.Ids, enumflag.EnumCaseInsensitive)
		c.Flags().VarP(enumFlag, name, short, descr+addendum)

		_ = c.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return target.Names(), cobra.ShellCompDirectiveNoFileComp
		})
	}
}

// inferDefineHooks checks if there's a predefined flag definition function
// for the given type.
func inferDefineHooks(c *cobra.Command, f reflect.StructField, field reflect.Value, name, short, descr string) bool {
	if defineFunc, ok := defineHookRegistry[f.Type.String()]; ok {
		defineFunc(c, f, field, name, short, descr)

		return true
	}

	return false
}
