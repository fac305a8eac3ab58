package pebblebuild

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SetupUsage generates and sets a dynamic usage function for the command.
//
// It groups flags based on the `flaggroup` annotation.
func SetupUsage(c *cobra.Command) {
	c.SetUsageFunc(func(c *cobra.Command) error {
		var b strings.Builder

		b.WriteString("Usage:")
		if c.Runnable() {
			b.WriteString("\n  ")
			b.WriteString(c.UseLine())
		}
		if c.HasAvailableSubCommands() {
			b.WriteString("\n  ")
			b.WriteString(c.CommandPath())
			b.WriteString(" [command]")
		}
		b.WriteString("\n")

		if len(c.Example) > 0 {
			b.WriteString("\nExamples:\n")
			b.WriteString(c.Example)
			b.WriteString("\n")
		}

		if c.HasAvailableSubCommands() {
			b.WriteString("\nAvailable Commands:\n")
			for _, cmd := range c.Commands() {
				if !cmd.IsAvailableCommand() && cmd.Name() != "help" {
					continue
				}
				b.WriteString(fmt.Sprintf("  %-*s %s\n", c.NamePadding(), cmd.Name(), cmd.Short))
			}
		}

		groups := Groups(c)

		// Default "Flags" group first, if it exists
		if lFlags, ok := groups[localGroupID]; ok && lFlags.HasFlags() {
			b.WriteString("\nFlags:\n")
			b.WriteString(flagUsages(lFlags))
			delete(groups, localGroupID)
		}

		// Then all custom groups, global flags last
		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, groupName := range groupKeys {
			if groupName == globalGroupID {
				continue
			}
			flags := groups[groupName]
			if flags.HasFlags() {
				b.WriteString(fmt.Sprintf("\n%s Flags:\n", groupName))
				b.WriteString(flagUsages(flags))
			}
		}

		if gFlags, ok := groups[globalGroupID]; ok && gFlags.HasFlags() {
			b.WriteString("\nGlobal Flags:\n")
			b.WriteString(flagUsages(gFlags))
		}

		if c.HasAvailableSubCommands() {
			b.WriteString(fmt.Sprintf("\nUse \"%s [command] --help\" for more information about a command.\n", c.CommandPath()))
		}

		_, err := c.OutOrStderr().Write([]byte(b.String()))

		return err
	})
}

// flagUsages generates the usage information for a set of flags, trimming
// trailing whitespace.
func flagUsages(f *pflag.FlagSet) string {
	return strings.TrimRight(f.FlagUsages(), " \n") + "\n"
}
