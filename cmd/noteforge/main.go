// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the noteforge CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteforge/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, then the named secret,
// then the environment variable envKey.
func secretDefault(key, envKey, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return os.Getenv(envKey)
}

// rootCmd is the base command for the noteforge CLI.
var rootCmd = &cobra.Command{
	Use:   "noteforge",
	Short: "Turn video transcripts into typeset study notes",
	Long: `noteforge is a linear content pipeline: fetch a YouTube transcript (or
read one from a file), have a language model turn it into structured study
notes, enhance the notes, save them as Markdown, and optionally render
them to PDF through LaTeX.

Each pipeline stage is a subcommand: transcript, notes, latex, and render.
The run command composes them end to end, and history queries past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadEnv(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./noteforge.yaml or ~/.config/noteforge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("noteforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "noteforge"))
		}
	}

	viper.SetEnvPrefix("NOTEFORGE")
	viper.AutomaticEnv()

	viper.SetDefault("notes_dir", filepath.Join("output", "notes"))
	viper.SetDefault("tex_dir", filepath.Join("output", "tex"))
	viper.SetDefault("data_dir", "data")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
