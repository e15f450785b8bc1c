package main

import (
	stderrors "errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toaster/internal/config"
	"github.com/vango-dev/toaster/internal/errors"
)

func configCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the toaster configuration",
	}

	cmd.AddCommand(configInitCmd(), configShowCmd(configPath))

	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a config file with default values.

Examples:
  toaster config init
  toaster config init --format=yaml
  toaster config init --dir=./deploy --format=toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := configFileName(format)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			if _, err := config.Create(path); err != nil {
				return err
			}
			success(cmd, "Created %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "File format: json, toml or yaml")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write the config file to")

	return cmd
}

func configShowCmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults are applied.

Without a config file the defaults are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Format()
			}
			if format == "" {
				format = "json"
			}
			if _, err := configFileName(format); err != nil {
				return err
			}
			data, err := cfg.Encode(format)
			if err != nil {
				return err
			}
			if p := cfg.Path(); p != "" {
				info(cmd, "# %s", p)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, toml or yaml (default: format of the loaded file)")

	return cmd
}

// loadConfig reads the config from path, or from the working directory when
// path is empty. A missing file in the working directory yields defaults.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
		var te *errors.ToasterError
		if stderrors.As(err, &te) && te.Code == "E100" {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFileName(format string) (string, error) {
	switch format {
	case "json", "toml", "yaml":
		return "toaster." + format, nil
	}
	return "", errors.New("E120").
		WithDetail("--format is \"" + format + "\"").
		WithSuggestion("Use json, toml or yaml")
}
