package pebblebuild

import (
	"reflect"
	"strings"

	pebblebuilderrors "github.com/YclepticStudios/pebble-build/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Unmarshal decodes the parsed values (flags, environment variables, config
// file keys) into the options struct.
//
// It merges the global viper configuration (if any) into the command scope,
// applies the decode hooks the flags were annotated with, then runs
// Transform and Validate when the options implement them.
func Unmarshal(c *cobra.Command, o Options, hooks ...mapstructure.DecodeHookFunc) error {
	v := GetViper(c)

	// Merge the config map (if any) from the global viper singleton instance
	if err := v.MergeConfigMap(viper.AllSettings()); err != nil {
		return err
	}

	// Allow config keys to match either a field's name or its `flag` tag
	hooks = append(hooks, keyRemappingHook())

	// Collect the decode hooks the flag annotations ask for
	c.Flags().VisitAll(func(f *pflag.Flag) {
		decodeHooks, defineDecodeHooks := f.Annotations[FlagDecodeHookAnnotation]
		if !defineDecodeHooks {
			return
		}
		for _, decodeHook := range decodeHooks {
			if decodeHookFunc, ok := decodeHookRegistry[decodeHook]; ok {
				hooks = append(hooks, decodeHookFunc)
			}
		}
	})

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...))
	if err := v.Unmarshal(o, decodeHook); err != nil {
		return err
	}

	// Automatically transform options if feasible (before validation)
	if t, ok := o.(TransformableOptions); ok {
		if transformErr := t.Transform(c.Context()); transformErr != nil {
			return transformErr
		}
	}

	// Automatically run options validation if feasible
	if vo, ok := o.(ValidatableOptions); ok {
		if validationErrors := vo.Validate(c.Context()); len(validationErrors) > 0 {
			return pebblebuilderrors.NewValidationError(c.Name(), validationErrors)
		}
	}

	return nil
}

// keyRemappingHook allows map keys to match either a field's name or its
// `flag` tag when decoding a map into an options struct.
func keyRemappingHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		// Only when decoding a map into a struct...
		if f.Kind() != reflect.Map || t.Kind() != reflect.Struct {
			return data, nil
		}

		configMap, ok := data.(map[string]any)
		if !ok {
			return data, nil
		}

		// For every aliased field, make the alias value available under the
		// field name key (and vice versa) so the decoder can find it.
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			fieldNameKey := strings.ToLower(field.Name)
			alias := field.Tag.Get("flag")

			if alias == "" || alias == fieldNameKey {
				continue
			}
			if aliasValue, ok := configMap[alias]; ok {
				configMap[fieldNameKey] = aliasValue

				continue
			}
			if fieldNameValue, ok := configMap[fieldNameKey]; ok {
				configMap[alias] = fieldNameValue
			}
		}

		return configMap, nil
	}
}
