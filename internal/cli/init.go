package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/paths"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize addressbook storage",
		Long:  "Create the configuration and data directories, write a default config.yaml,\nand initialize the contact store.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configDir := a.cfg.GetString(cfgKeyConfigDir)
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return systemError("resolve data dir", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return systemError("create config directory", err)
	}

	configPath := filepath.Join(configDir, paths.ConfigFileName)
	written, err := writeConfigIfMissing(configPath, configFile{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	})
	if err != nil {
		return systemError("write config", err)
	}
	if written {
		a.log.Info("wrote config", "path", configPath)
	}

	// Attach creates the data directory and the empty contacts file.
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	if err := backend.Detach(); err != nil {
		return systemError("finalize storage", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Address book initialized in %s\n", dataDir)
	return nil
}
