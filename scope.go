package pebblebuild

import (
	"context"
	"sync"

	pebblebuilderrors "github.com/YclepticStudios/pebble-build/errors"
	"github.com/spf13/cobra"
	spf13viper "github.com/spf13/viper"
)

// scopeContextKey is used to store the scope in the command context.
type scopeContextKey struct{}

// Scope holds per-command state: the command-scoped viper instance, the set
// of environment variables already bound, and the flags defined so far.
type Scope struct {
	v            *spf13viper.Viper
	boundEnvs    map[string]bool
	definedFlags map[string]string
	mu           sync.RWMutex
}

// GetScope retrieves or creates a scope for the given command.
func GetScope(c *cobra.Command) *Scope {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if s, ok := ctx.Value(scopeContextKey{}).(*Scope); ok {
		return s
	}

	// Create new scope (ensures isolation even with context inheritance)
	s := &Scope{
		v:            spf13viper.New(),
		boundEnvs:    make(map[string]bool),
		definedFlags: make(map[string]string),
	}

	c.SetContext(context.WithValue(ctx, scopeContextKey{}, s))

	return s
}

// GetViper returns the viper instance scoped to the given command.
func GetViper(c *cobra.Command) *spf13viper.Viper {
	return GetScope(c).Viper()
}

// Viper returns the viper instance for the command.
func (s *Scope) Viper() *spf13viper.Viper {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.v
}

// IsEnvBound checks if an environment variable is already bound for this command.
func (s *Scope) IsEnvBound(flagName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.boundEnvs[flagName]
}

// SetBound marks an environment variable as bound for this command.
func (s *Scope) SetBound(flagName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boundEnvs[flagName] = true
}

// AddDefinedFlag adds a flag to the set of defined flags for this scope,
// returning an error if it's a duplicate.
func (s *Scope) AddDefinedFlag(name, fieldPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingPath, ok := s.definedFlags[name]; ok {
		return pebblebuilderrors.NewDuplicateFlagError(name, fieldPath, existingPath)
	}
	s.definedFlags[name] = fieldPath

	return nil
}
