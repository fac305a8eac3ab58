package pebblebuild

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	localGroupID  = "<local>"
	globalGroupID = "Global"
)

const (
	// FlagGroupAnnotation stores the usage group a flag belongs to.
	FlagGroupAnnotation = "___pebblebuild_flaggroups"
)

// Groups returns a map of flag groups for the given command.
//
// It organizes flags by their group annotation, with ungrouped flags placed
// in a default local group and persistent flags in the global group.
func Groups(c *cobra.Command) map[string]*pflag.FlagSet {
	groups := map[string]*pflag.FlagSet{}

	addTo := func(f *pflag.Flag, groupID string) {
		if groups[groupID] == nil {
			groups[groupID] = pflag.NewFlagSet(c.Name(), pflag.ContinueOnError)
		}
		groups[groupID].AddFlag(f)
	}

	c.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if annotations, ok := f.Annotations[FlagGroupAnnotation]; ok && len(annotations) > 0 {
			addTo(f, annotations[0])
		} else {
			addTo(f, localGroupID)
		}
	})

	if c.HasPersistentFlags() {
		c.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			addTo(f, globalGroupID)
		})
	}

	return groups
}
