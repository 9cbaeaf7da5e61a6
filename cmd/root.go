package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/reggen/cmd/gen"
	"github.com/Manu343726/reggen/cmd/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "reggen",
	Short: "Register bank and register class table generator",
	Long: `reggen models the register banks and register classes of target ISAs and generates
the static tables a register allocator needs: per class unit masks, subclass masks,
top-level classes and absolute unit offsets, all cross-referenced by dense indices.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, gen.GenerateCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reggen.yaml)")
	RootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	RootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")

	cobra.CheckErr(viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log.file", RootCmd.PersistentFlags().Lookup("log-file")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".reggen" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".reggen")
	}

	// REGGEN_OUTPUT_DIR, REGGEN_LOG_LEVEL, ...
	viper.SetEnvPrefix("reggen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
