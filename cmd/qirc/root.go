package main

import (
	"os"

	"github.com/spf13/cobra"

	"qirc/internal/config"
	"qirc/internal/logging"
	"qirc/internal/version"
)

var (
	// rootFlag points commands at a working directory other than cwd
	rootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "qirc",
	Short: "qirc - quantum circuit IR toolkit",
	Long: `qirc manipulates the intermediate representation of quantum circuits:
Pauli-exponential boxes and their lowering to gate sequences, and hardware
connectivity architectures with the distance and pruning queries placement
passes rely on.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("qirc version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"Working directory holding the .qirc configuration (default: cwd)")
}

// workingRoot resolves the directory configuration and the store live
// under. Precedence: --root flag > QIRC_ROOT env var > cwd.
func workingRoot() string {
	if rootFlag != "" {
		return rootFlag
	}
	if env := os.Getenv("QIRC_ROOT"); env != "" {
		return env
	}
	return "."
}

// loadSetup loads the configuration and builds the logger it asks for.
func loadSetup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.LoadConfig(workingRoot())
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
	return cfg, logger, nil
}
