package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"qirc/internal/archstore"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local architecture catalog",
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Save an architecture JSON file under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoreSave,
}

var storeLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a stored architecture as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreLoad,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored architectures",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored architecture",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

var storeExportCmd = &cobra.Command{
	Use:   "export <archive> <name>...",
	Short: "Export stored architectures to a zstd archive",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runStoreExport,
}

var storeImportCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Import architectures from a zstd archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreImport,
}

func init() {
	storeCmd.AddCommand(storeSaveCmd)
	storeCmd.AddCommand(storeLoadCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeDeleteCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeImportCmd)
	rootCmd.AddCommand(storeCmd)
}

// openStore builds the store from the loaded configuration. Relative
// store paths are anchored at the working root.
func openStore() (*archstore.Store, error) {
	cfg, logger, err := loadSetup()
	if err != nil {
		return nil, err
	}
	path := cfg.Store.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(workingRoot(), path)
	}
	return archstore.Open(path, logger)
}

func runStoreSave(cmd *cobra.Command, args []string) error {
	arch, err := readArchitecture(args[1])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(args[0], arch)
}

func runStoreLoad(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	arch, err := store.Load(args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(arch, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runStoreList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	entries, err := store.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", e.Name, e.UpdatedAt)
	}
	return nil
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Delete(args[0])
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.ExportArchive(args[0], args[1:])
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	names, err := store.ImportArchive(args[0])
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
