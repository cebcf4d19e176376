// Package cmd provides the root command and CLI setup for makelift.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// verboseFlag echoes the make invocations and their raw output, and raises
// the log level to debug.
var verboseFlag bool

const rootLongDescription = `Makelift converts legacy Makefile-based project trees into declarative
CMake build files. It resolves each directory's variables through make
itself, so the legacy variable-substitution language never has to be
re-implemented, and emits one CMakeLists.txt per component plus the
project-level CMakeLists.txt.

Requires the shared build rules installation to be available via the
IDF_PATH environment variable.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "makelift",
		Short: "Makefile to CMake build file converter",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v",
		viper.GetBool(logVerboseKey), "echo make invocations and raw output, log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
