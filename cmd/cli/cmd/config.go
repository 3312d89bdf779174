package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/cosim-input/pkg/config"
	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the cosim config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	RunE:  showConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings and regions",
	RunE:  initConfigFile,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func showConfig(_ *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func initConfigFile(_ *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		overwrite, err := utils.Confirm(fmt.Sprintf("%s exists. Overwrite?", path), false)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Config file left unchanged")
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	logger.Successf("%s Wrote %s", logger.IconConfig, path)
	return nil
}
