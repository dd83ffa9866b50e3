// Root command for the kagproj CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/kagworks/kagproj/internal/paths"
	"github.com/kagworks/kagproj/pkg/kagproj"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all
// subcommands can use them.
var (
	configDataDir     string
	configProjectsDir string
)

var rootCmd = &cobra.Command{
	Use:     "kagproj",
	Short:   "Kagproj scaffolds and tracks Kaggle competition projects",
	Long: `Kagproj creates the standard competition project layout (data/raw,
data/processed, data/submissions, notebooks, src) with starter files,
and keeps a local registry of projects and their submissions.`,
	Version:      kagproj.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configProjectsDir = cfg.GetString(cfgKeyProjectsDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "registry data directory (default: $(CWD)/.kagproj-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(submissionCmd)
	rootCmd.AddCommand(deleteCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > KAGPROJ_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the registry data directory following the
// precedence: --data-dir flag > config.yaml data_dir > KAGPROJ_DATA_DIR env
// > default $(CWD)/.kagproj-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveProjectsDir returns the base directory under which new project
// trees are scaffolded.
func resolveProjectsDir() (string, error) {
	return paths.ResolveProjectsDir(configProjectsDir)
}
