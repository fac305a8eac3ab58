package pebblebuild

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigOptions defines configuration file behavior.
type ConfigOptions struct {
	AppName    string // For default paths and env var name (defaults to the name of the root command)
	FlagName   string // Name of config flag (defaults to "config")
	ConfigName string // Config file name without extension (defaults to "config")
	EnvVar     string // Environment variable (defaults to {APPNAME}_CONFIG)
}

// SetupConfig creates the --config persistent flag and sets up viper search
// paths: /etc/{app}, $HOME/.{app}, and $PWD/.{app}.
func SetupConfig(rootC *cobra.Command, cfgOpts ConfigOptions) error {
	if rootC.Parent() != nil {
		return fmt.Errorf("SetupConfig must be called on the root command")
	}

	appName := cfgOpts.AppName
	if appName == "" {
		appName = rootC.Name()
	}
	if appName == "" {
		return fmt.Errorf("couldn't determine the app name")
	}

	// Automatically use the app name as the environment prefix
	if cfgOpts.AppName == "" {
		SetEnvPrefix(appName)
	}

	if cfgOpts.FlagName == "" {
		cfgOpts.FlagName = "config"
	}
	if cfgOpts.ConfigName == "" {
		cfgOpts.ConfigName = "config"
	}
	if cfgOpts.EnvVar == "" {
		cfgOpts.EnvVar = fmt.Sprintf("%s_CONFIG", normEnv(appName))
	} else {
		cfgOpts.EnvVar = normEnv(cfgOpts.EnvVar)
	}

	descr := fmt.Sprintf("config file (fallbacks to: {/etc/%s,$HOME/.%s,$PWD/.%s}/%s.{yaml,json,toml})", appName, appName, appName, cfgOpts.ConfigName)
	configFile := ""

	rootC.PersistentFlags().StringVar(&configFile, cfgOpts.FlagName, configFile, descr)

	// Add filename completion
	extensions := []string{"yaml", "yml", "json", "toml"}
	if err := rootC.MarkPersistentFlagFilename(cfgOpts.FlagName, extensions...); err != nil {
		return fmt.Errorf("couldn't set filename completion: %w", err)
	}

	// Point viper at the config file right before the command chain runs,
	// keeping the state tied to this root rather than to process globals
	prev := rootC.PersistentPreRunE
	rootC.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		setupConfig(configFile, appName, cfgOpts)
		if prev != nil {
			return prev(c, args)
		}

		return nil
	}

	// Store cleanup function
	cobra.OnFinalize(func() {
		viper.Reset()
	})

	return nil
}

// setupConfig handles the viper initialization.
func setupConfig(configFile string, appName string, opts ConfigOptions) {
	if cfgFile := strings.TrimSpace(configFile); cfgFile != "" {
		// Use explicit config file
		viper.SetConfigFile(cfgFile)

		return
	}

	if envConfigPath := strings.TrimSpace(os.Getenv(opts.EnvVar)); envConfigPath != "" {
		viper.SetConfigFile(envConfigPath)

		return
	}

	viper.AddConfigPath(path.Join("/etc", appName))
	if home, _ := os.UserHomeDir(); home != "" {
		viper.AddConfigPath(path.Join(home, fmt.Sprintf(".%s", appName)))
	}
	if pwd, _ := os.Getwd(); pwd != "" {
		viper.AddConfigPath(path.Join(pwd, fmt.Sprintf(".%s", appName)))
	}

	// Viper will automatically try different extensions
	viper.SetConfigName(opts.ConfigName)
}

// UseConfig attempts to read the configuration file in, when readWhen allows it.
func UseConfig(readWhen func() bool) (inUse bool, message string, err error) {
	if readWhen != nil && !readWhen() {
		return false, "", nil
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, ignore...
			return false, "Running without a configuration file", nil
		}
		// Config file was found but another error was produced
		return false, "", fmt.Errorf("error running with config file: %s: %w", viper.ConfigFileUsed(), err)
	}

	return true, fmt.Sprintf("Using config file: %s", viper.ConfigFileUsed()), nil
}

// UseConfigSimple is a simpler version of UseConfig that uses
// c.IsAvailableCommand() as the readWhen function.
//
// It does not check for the config file when the command is not available (eg., help).
func UseConfigSimple(c *cobra.Command) (inUse bool, message string, err error) {
	return UseConfig(func() bool {
		return c.IsAvailableCommand()
	})
}
