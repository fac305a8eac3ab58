// Package pebblebuild provides the options machinery for build commands:
// struct-tag-driven flag definition on cobra commands, environment variable
// binding, and viper-backed unmarshalling of parsed values.
package pebblebuild

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	pebblebuilderrors "github.com/YclepticStudios/pebble-build/errors"
	"github.com/spf13/cobra"
)

// Struct tags recognized by Define.
//
//	flag         alias for the flag name (defaults to the lowercased field path)
//	flagshort    single-character shorthand
//	flagdescr    usage string
//	flaggroup    group name for the usage template
//	flagenv      "true" binds a PEBBLE_BUILD_* environment variable
//	flagrequired "true" marks the flag required
//	flagignore   "true" skips the field
//	default      initial value, parsed per field type

// Define creates flags from struct field tags and binds them to the command.
//
// It processes struct tags to generate the appropriate cobra flags, handles
// environment variable binding, and configures the usage template.
func Define(c *cobra.Command, o Options) error {
	val, err := structValue(o)
	if err != nil {
		return err
	}

	s := GetScope(c)
	if err := define(c, s, val, "", "", false, false); err != nil {
		return err
	}

	// Bind flag values to the command-scoped viper
	v := s.Viper()
	if err := v.BindPFlags(c.Flags()); err != nil {
		return err
	}

	// Bind environment
	bindEnv(c)

	// Generate the usage message
	SetupUsage(c)

	return nil
}

// structValue returns the addressable struct value behind o.
func structValue(o any) (reflect.Value, error) {
	val := reflect.ValueOf(o)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return reflect.Value{}, fmt.Errorf("options must not be nil")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("options must be a struct or a pointer to one, got %T", o)
	}
	if !val.CanAddr() {
		return reflect.Value{}, fmt.Errorf("options must be addressable: pass a pointer to %T", o)
	}

	return val, nil
}

func define(c *cobra.Command, s *Scope, val reflect.Value, startingGroup, structPath string, defineEnv, mandatory bool) error {
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		// Ignore private fields
		if !field.CanInterface() || !field.CanAddr() {
			continue
		}

		f := val.Type().Field(i)
		path := strings.ToLower(f.Name)
		if structPath != "" {
			path = fmt.Sprintf("%s.%s", strings.ToLower(structPath), path)
		}

		ignore, err := boolTag(f, "flagignore")
		if err != nil {
			return err
		}
		if ignore {
			continue
		}

		alias := f.Tag.Get("flag")
		short := f.Tag.Get("flagshort")
		descr := f.Tag.Get("flagdescr")
		defval := f.Tag.Get("default")
		group := f.Tag.Get("flaggroup")
		if startingGroup != "" {
			group = startingGroup
		}

		if len(short) > 1 {
			return pebblebuilderrors.NewInvalidShorthandError(f.Name, short)
		}

		required, err := boolTag(f, "flagrequired")
		if err != nil {
			return err
		}
		required = required || mandatory

		fieldEnv, err := boolTag(f, "flagenv")
		if err != nil {
			return err
		}
		fieldEnv = fieldEnv || defineEnv

		if f.Type.Kind() == reflect.Struct && !isKnownType(f.Type) {
			if err := define(c, s, field, group, path, fieldEnv, required); err != nil {
				return err
			}

			continue
		}

		name := path
		if alias != "" {
			name = alias
		}
		if err := s.AddDefinedFlag(name, path); err != nil {
			return err
		}

		if err := defineFlag(c, f, field, name, short, descr, defval); err != nil {
			return err
		}

		if alias != "" && alias != path {
			s.Viper().RegisterAlias(path, alias)
		}

		if group != "" {
			_ = c.Flags().SetAnnotation(name, FlagGroupAnnotation, []string{group})
		}
		if required {
			_ = c.MarkFlagRequired(name)
		}
		if fieldEnv {
			_ = c.Flags().SetAnnotation(name, FlagEnvsAnnotation, []string{envName(name)})
		}
	}

	return nil
}

// defineFlag registers a single flag for the given struct field.
func defineFlag(c *cobra.Command, f reflect.StructField, field reflect.Value, name, short, descr, defval string) error {
	// Custom types (enum flags, etc.) take precedence over plain kinds
	if inferDefineHooks(c, f, field, name, short, descr) {
		inferDecodeHooks(c, name, f.Type.String())

		return nil
	}

	switch f.Type.Kind() {
	case reflect.Bool:
		ref := field.Addr().Interface().(*bool)
		if defval != "" {
			val, err := strconv.ParseBool(defval)
			if err != nil {
				return pebblebuilderrors.NewInvalidBooleanTagError(f.Name, "default", defval)
			}
			*ref = val
		}
		c.Flags().BoolVarP(ref, name, short, *ref, descr)

	case reflect.String:
		ref := field.Addr().Interface().(*string)
		if defval != "" {
			*ref = defval
		}
		c.Flags().StringVarP(ref, name, short, *ref, descr)

	case reflect.Int:
		ref := field.Addr().Interface().(*int)
		if defval != "" {
			val, err := strconv.Atoi(defval)
			if err != nil {
				return fmt.Errorf("field '%s': tag 'default=%s': %w", f.Name, defval, err)
			}
			*ref = val
		}
		c.Flags().IntVarP(ref, name, short, *ref, descr)

	case reflect.Int64:
		if f.Type == reflect.TypeOf(time.Duration(0)) {
			ref := field.Addr().Interface().(*time.Duration)
			if defval != "" {
				val, err := time.ParseDuration(defval)
				if err != nil {
					return fmt.Errorf("field '%s': tag 'default=%s': %w", f.Name, defval, err)
				}
				*ref = val
			}
			c.Flags().DurationVarP(ref, name, short, *ref, descr)

			break
		}
		ref := field.Addr().Interface().(*int64)
		if defval != "" {
			val, err := strconv.ParseInt(defval, 10, 64)
			if err != nil {
				return fmt.Errorf("field '%s': tag 'default=%s': %w", f.Name, defval, err)
			}
			*ref = val
		}
		c.Flags().Int64VarP(ref, name, short, *ref, descr)

	case reflect.Uint:
		ref := field.Addr().Interface().(*uint)
		if defval != "" {
			val, err := strconv.ParseUint(defval, 10, 0)
			if err != nil {
				return fmt.Errorf("field '%s': tag 'default=%s': %w", f.Name, defval, err)
			}
			*ref = uint(val)
		}
		c.Flags().UintVarP(ref, name, short, *ref, descr)

	case reflect.Float64:
		ref := field.Addr().Interface().(*float64)
		if defval != "" {
			val, err := strconv.ParseFloat(defval, 64)
			if err != nil {
				return fmt.Errorf("field '%s': tag 'default=%s': %w", f.Name, defval, err)
			}
			*ref = val
		}
		c.Flags().Float64VarP(ref, name, short, *ref, descr)

	case reflect.Slice:
		if f.Type.Elem().Kind() != reflect.String {
			return pebblebuilderrors.NewUnsupportedTypeError(f.Name, f.Type.String())
		}
		ref := field.Addr().Interface().(*[]string)
		if defval != "" {
			*ref = strings.Split(defval, ",")
		}
		c.Flags().StringSliceVarP(ref, name, short, *ref, descr)
		inferDecodeHooks(c, name, f.Type.String())

	default:
		return pebblebuilderrors.NewUnsupportedTypeError(f.Name, f.Type.String())
	}

	return nil
}

// isKnownType reports whether a struct type has a dedicated define hook and
// must not be recursed into.
func isKnownType(t reflect.Type) bool {
	_, ok := defineHookRegistry[t.String()]

	return ok
}

func boolTag(f reflect.StructField, tag string) (bool, error) {
	tagValue := f.Tag.Get(tag)
	if tagValue == "" {
		return false, nil
	}
	val, err := strconv.ParseBool(tagValue)
	if err != nil {
		return false, pebblebuilderrors.NewInvalidBooleanTagError(f.Name, tag, tagValue)
	}

	return val, nil
}
