package pebblebuild

import (
	"reflect"

	"github.com/YclepticStudios/pebble-build/target"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

const (
	// FlagDecodeHookAnnotation stores the decode hook names a flag needs at
	// unmarshalling time.
	FlagDecodeHookAnnotation = "___pebblebuild_flagdecodehooks"
)

var decodeHookRegistry = map[string]mapstructure.DecodeHookFunc{
	"StringToZapcoreLevelHookFunc": StringToZapcoreLevelHookFunc(),
	"StringToPlatformHookFunc":     StringToPlatformHookFunc(),
	"StringToSliceHookFunc":        mapstructure.StringToSliceHookFunc(","),
}

func inferDecodeHooks(c *cobra.Command, name, typename string) {
	switch typename {
	case "zapcore.Level":
		_ = c.Flags().SetAnnotation(name, FlagDecodeHookAnnotation, []string{"StringToZapcoreLevelHookFunc"})
	case "target.Platform":
		_ = c.Flags().SetAnnotation(name, FlagDecodeHookAnnotation, []string{"StringToPlatformHookFunc"})
	case "[]string":
		_ = c.Flags().SetAnnotation(name, FlagDecodeHookAnnotation, []string{"StringToSliceHookFunc"})
	}
}

// StringToZapcoreLevelHookFunc converts string input to a zapcore.Level.
func StringToZapcoreLevelHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(zapcore.DebugLevel) {
			return data, nil
		}

		return zapcore.ParseLevel(data.(string))
	}
}

// StringToPlatformHookFunc converts string input to a target.Platform.
func StringToPlatformHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(target.Aplite) {
			return data, nil
		}

		return target.Parse(data.(string))
	}
}
