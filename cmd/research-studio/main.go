// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-studio CLI. It hosts the
// use case research workflow (research, usecases, resources, export-pdf) and
// the text-to-video tools (chunk, video, probe, serve, status).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-studio/internal/logger"
	"github.com/pdiddy/research-studio/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the research-studio CLI.
var rootCmd = &cobra.Command{
	Use:   "research-studio",
	Short: "Use case research reports and narrated text-to-video",
	Long: `research-studio hosts two tools.

Use case research: research an industry or company on the web, generate AI use
cases for it, collect dataset links per use case into outputs/resources.md, and
export the report to PDF.

Text to video: split text into sentence-aligned chunks, narrate each chunk with
a text-to-speech service, and composite the narration with text overlays into
one MP4. The serve command exposes this as an HTTP job API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Info("loaded secrets: %v", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-studio.yaml or ~/.config/research-studio/research-studio.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print diagnostic logging to stderr")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-studio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-studio"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("RESEARCH_STUDIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
