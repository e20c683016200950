// Package cmd implements the foldertree CLI, grounded on freyjadb's
// cmd/freyja/cmd package layout: a persistent root command carrying
// shared flags, with one subcommand per operation.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/foldertree/foldertree/internal/config"
)

var (
	configPath string
	maxNameLen int
	cfg        *config.Config
	log        = logrus.StandardLogger()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "foldertree",
	Short: "An in-memory, concurrency-safe directory tree",
	Long: `foldertree is a CLI and REPL over an in-memory hierarchical
directory tree. Each one-shot subcommand (list, create, rm, mv) opens a
fresh tree, performs a single operation and exits - the tree itself is
never persisted. "foldertree repl" keeps one tree alive across a whole
session and is where concurrent operations are actually exercised.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			cfg = config.DefaultConfig()
		} else {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a foldertree.yaml config file")
	rootCmd.PersistentFlags().IntVar(&maxNameLen, "max-name-length", 0, "override the configured maximum folder name length (0 = use config/default)")
}

func effectiveMaxNameLen() int {
	if maxNameLen > 0 {
		return maxNameLen
	}
	if cfg != nil && cfg.MaxFolderNameLength > 0 {
		return cfg.MaxFolderNameLength
	}
	return config.DefaultConfig().MaxFolderNameLength
}
