package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/config"
	"github.com/teranos/consentlens/errors"
)

// ConfigCmd groups the configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, validate or locate configuration",
	Long: `Display and manage consentlens configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CONSENTLENS_* prefix, .env is loaded first)
3. --config file
4. Project config (nearest consentlens.toml)
5. User config (~/.consentlens/config.toml)
6. System config (/etc/consentlens/config.toml)
7. Default values

Examples:
  consentlens config show                # Effective configuration as TOML
  consentlens config show --format yaml
  consentlens config validate
  consentlens config where               # Cascade and per-setting origin
  consentlens config init                # Write ./consentlens.toml with defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade, which files exist, and the layer that
set each effective value.`,
	RunE: runConfigWhere,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a file",
	Long: `Write the effective configuration as TOML to [path] (default ./consentlens.toml).
An existing file is kept as .back1, shifting older backups up to .back3.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	format, _ := cmd.Flags().GetString("format")
	data, err := config.Marshal(cfg, format)
	if err != nil {
		return err
	}
	if format != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "# consentlens configuration")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration cascade (lowest precedence first):")
	for _, f := range config.Where() {
		mark := "✗"
		if f.Exists {
			mark = "✓"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %-8s %s\n", mark, f.Source, f.Path)
	}

	settings, err := config.Introspect()
	if err != nil {
		return err
	}

	bySource := make(map[config.ConfigSource][]config.SettingInfo)
	for _, s := range settings {
		bySource[s.Source] = append(bySource[s.Source], s)
	}
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, string(s))
	}
	sort.Strings(sources)

	for _, source := range sources {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", source)
		for _, s := range bySource[config.ConfigSource(source)] {
			origin := ""
			if s.SourcePath != "" && config.ConfigSource(source) != config.SourceDefault {
				origin = fmt.Sprintf("  (%s)", s.SourcePath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %v%s\n", s.Key, s.Value, origin)
		}
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectFileName
	if len(args) == 1 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := config.WriteFile(abs, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", abs)
	return nil
}
