package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flint/internal/project"
)

// loadConfig returns the settings for a command: --config when given,
// otherwise the nearest config file above the working directory, otherwise
// the defaults. Flags set on the command line override file values.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	cfg := project.Defaults()

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return cfg, fmt.Errorf("failed to get config flag: %w", err)
	}
	var manifest *project.Manifest
	if path != "" {
		manifest, err = project.Load(path)
		if err != nil {
			return cfg, err
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("failed to get working directory: %w", err)
		}
		m, ok, err := project.LoadNearest(wd)
		if err != nil {
			return cfg, err
		}
		if ok {
			manifest = m
		}
	}
	if manifest != nil {
		cfg = manifest.Config
	}

	if err := applyFlagOverrides(cmd, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFlagOverrides копирует в cfg только явно заданные флаги.
func applyFlagOverrides(cmd *cobra.Command, cfg *project.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("max-line-length") {
		if cfg.MaxLineLength, err = flags.GetInt("max-line-length"); err != nil {
			return fmt.Errorf("failed to get max-line-length flag: %w", err)
		}
	}
	if flags.Changed("max-doc-length") {
		if cfg.MaxDocLength, err = flags.GetInt("max-doc-length"); err != nil {
			return fmt.Errorf("failed to get max-doc-length flag: %w", err)
		}
	}
	if flags.Changed("hang-closing") {
		if cfg.HangClosing, err = flags.GetBool("hang-closing"); err != nil {
			return fmt.Errorf("failed to get hang-closing flag: %w", err)
		}
	}
	if flags.Changed("indent-size") {
		if cfg.IndentSize, err = flags.GetInt("indent-size"); err != nil {
			return fmt.Errorf("failed to get indent-size flag: %w", err)
		}
	}
	if flags.Changed("show-source") {
		if cfg.ShowSource, err = flags.GetBool("show-source"); err != nil {
			return fmt.Errorf("failed to get show-source flag: %w", err)
		}
	}
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if flags.Changed("output-file") {
		if cfg.OutputFile, err = flags.GetString("output-file"); err != nil {
			return fmt.Errorf("failed to get output-file flag: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if cfg.Jobs, err = flags.GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("exclude") {
		if cfg.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return fmt.Errorf("failed to get exclude flag: %w", err)
		}
	}
	if flags.Changed("filename") {
		if cfg.Filename, err = flags.GetStringSlice("filename"); err != nil {
			return fmt.Errorf("failed to get filename flag: %w", err)
		}
	}
	if flags.Changed("cache") {
		if cfg.Cache, err = flags.GetBool("cache"); err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	return nil
}
