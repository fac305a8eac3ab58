// Package buildenv holds the mutable environment a build configuration run
// produces: named, ordered lists of string values (DEFINES, CFLAGS, and so
// on) that later build steps consult.
package buildenv

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Well-known environment variables.
const (
	Defines   = "DEFINES"
	CFlags    = "CFLAGS"
	LinkFlags = "LINKFLAGS"
	Resources = "RESOURCES"
)

// Env is an ordered key/value-list build environment.
//
// It is owned by the caller and mutated in place by tools during the
// configure phase. Values keep insertion order. Env is not safe for
// concurrent use; a configure run is single-goroutine by contract.
type Env struct {
	vars map[string][]string
}

// New returns an empty environment.
func New() *Env {
	return &Env{
		vars: make(map[string][]string),
	}
}

// AppendValue appends values to the variable, after any prior entries.
//
// Duplicates are kept: appending the same value twice yields two entries.
// Tools that need set semantics use AppendUnique instead.
func (e *Env) AppendValue(key string, values ...string) {
	e.vars[key] = append(e.vars[key], values...)
}

// PrependValue inserts values before any prior entries of the variable.
func (e *Env) PrependValue(key string, values ...string) {
	e.vars[key] = append(slices.Clone(values), e.vars[key]...)
}

// AppendUnique appends only those values not already present, preserving
// the order of the appended values.
func (e *Env) AppendUnique(key string, values ...string) {
	for _, val := range values {
		if !e.Has(key, val) {
			e.vars[key] = append(e.vars[key], val)
		}
	}
}

// Get returns a copy of the variable's values, nil when unset.
func (e *Env) Get(key string) []string {
	if len(e.vars[key]) == 0 {
		return nil
	}

	return slices.Clone(e.vars[key])
}

// Has reports whether the variable contains the given value.
func (e *Env) Has(key, value string) bool {
	return slices.Contains(e.vars[key], value)
}

// Len returns the number of values the variable holds.
func (e *Env) Len(key string) int {
	return len(e.vars[key])
}

// Keys returns the names of all set variables, sorted.
func (e *Env) Keys() []string {
	keys := maps.Keys(e.vars)
	sort.Strings(keys)

	return keys
}

// Clone returns a deep copy of the environment.
func (e *Env) Clone() *Env {
	clone := New()
	for key, values := range e.vars {
		clone.vars[key] = slices.Clone(values)
	}

	return clone
}

// Dump writes the environment in a stable, human-readable form.
func (e *Env) Dump(w io.Writer) error {
	for _, key := range e.Keys() {
		if _, err := fmt.Fprintf(w, "%s = [%s]\n", key, strings.Join(e.vars[key], ", ")); err != nil {
			return err
		}
	}

	return nil
}
