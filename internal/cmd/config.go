package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/texsnip/texsnip/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify texsnip configuration",
	Long: `View or modify texsnip configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  texsnip config set renderer.command xelatex
  texsnip config set logging.level debug

Valid keys:
  renderer.command          - Renderer executable name or path
  renderer.timeout_seconds  - Max runtime of one renderer invocation (0 = none)
  renderer.expect_status    - Exit status the renderer reports on success
  logging.enabled           - Enable debug logging (true/false)
  logging.level             - Log level (debug/info/warn/error)
  logging.max_size_mb       - Log file size before rotation
  logging.max_backups       - Rotated log files to keep
  logging.buffer_capacity   - Recent records retained for deferred display
  paths.log_dir             - Log directory override`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/texsnip/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("renderer:")
	fmt.Printf("  command: %s\n", cfg.Renderer.Command)
	fmt.Printf("  timeout_seconds: %d\n", cfg.Renderer.TimeoutSeconds)
	fmt.Printf("  expect_status: %d\n", cfg.Renderer.ExpectStatus)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Printf("  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Printf("  buffer_capacity: %d\n", cfg.Logging.BufferCapacity)

	fmt.Println("paths:")
	fmt.Printf("  log_dir: %s\n", cfg.Paths.ResolveLogDir())

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists and parse the value to its expected type
	validKeys := map[string]string{
		"renderer.command":         "string",
		"renderer.timeout_seconds": "int",
		"renderer.expect_status":   "int",
		"logging.enabled":          "bool",
		"logging.level":            "string",
		"logging.max_size_mb":      "int",
		"logging.max_backups":      "int",
		"logging.buffer_capacity":  "int",
		"paths.log_dir":            "string",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}

	var parsed any
	switch keyType {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value for %s must be true or false", key)
		}
		parsed = b
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value for %s must be an integer", key)
		}
		parsed = n
	default:
		parsed = value
	}

	if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
		return fmt.Errorf("invalid log level %q (valid: %s)", value, strings.Join(config.ValidLogLevels(), ", "))
	}

	viper.Set(key, parsed)

	// Reject values the typed config would refuse to load
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := writeConfigFile(); err != nil {
		return err
	}

	fmt.Printf("Set %s = %v\n", key, parsed)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigFile()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeConfigFile(); err != nil {
		return err
	}

	fmt.Printf("Created config file at %s\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigFile())
	return nil
}

// writeConfigFile persists the current viper state to the user's config file,
// creating the config directory if needed.
func writeConfigFile() error {
	path := config.ConfigFile()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
