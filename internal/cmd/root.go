// Package cmd implements the texsnip command line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/texsnip/texsnip/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "texsnip",
	Short: "Helper tool for the texsnip LaTeX-snippet extension",
	Long: `texsnip provides the plumbing the LaTeX-snippet extension uses when
invoking an external LaTeX renderer from the host drawing application:
settings storage, scratch-directory scoping, subprocess execution, and
log inspection.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/texsnip/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/texsnip")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TEXSNIP")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TEXSNIP_RENDERER_COMMAND for renderer.command
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
