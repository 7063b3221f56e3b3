package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martin-lopez25/appbrechas/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Administra config.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Escribe un config.toml con los valores por defecto",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "sobrescribir un config.toml existente")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.ConfigFileName
	}
	if err := writeDefaultConfig(path, configForce); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// writeDefaultConfig 写入默认配置（应用命令行的 data_dir / dev 覆盖）
func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}
	if devMode {
		cfg.Server.DevMode = true
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
