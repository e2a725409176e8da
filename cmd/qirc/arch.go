package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qirc/internal/architecture"
)

var (
	archLineLengths []int
	archPruneCount  int
)

var archCmd = &cobra.Command{
	Use:   "arch",
	Short: "Inspect and transform architecture graphs",
}

var archInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarise an architecture JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchInfo,
}

var archLinesCmd = &cobra.Command{
	Use:   "lines <file>",
	Short: "Extract vertex-disjoint lines from an architecture",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchLines,
}

var archPruneCmd = &cobra.Command{
	Use:   "prune <file>",
	Short: "Remove the worst-connected nodes from an architecture",
	Long: `Remove nodes one at a time, always dropping a minimum-degree node
that is not an articulation point, so the remaining graph stays
connected. The pruned architecture is printed as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchPrune,
}

func init() {
	archLinesCmd.Flags().IntSliceVarP(&archLineLengths, "lengths", "l", nil,
		"Requested line lengths, e.g. -l 5,3,2")
	archPruneCmd.Flags().IntVarP(&archPruneCount, "count", "n", 1,
		"Number of nodes to remove")
	archCmd.AddCommand(archInfoCmd)
	archCmd.AddCommand(archLinesCmd)
	archCmd.AddCommand(archPruneCmd)
	rootCmd.AddCommand(archCmd)
}

func readArchitecture(path string) (*architecture.Architecture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	arch := architecture.New()
	if err := json.Unmarshal(data, arch); err != nil {
		return nil, err
	}
	return arch, nil
}

func runArchInfo(cmd *cobra.Command, args []string) error {
	arch, err := readArchitecture(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "nodes:       %d\n", arch.NNodes())
	fmt.Fprintf(out, "connections: %d\n", len(arch.Connections()))
	if diameter, err := arch.Diameter(); err == nil {
		fmt.Fprintf(out, "diameter:    %d\n", diameter)
	} else {
		fmt.Fprintf(out, "diameter:    n/a (%v)\n", err)
	}
	if aps := arch.ArticulationPoints(); len(aps) > 0 {
		names := make([]string, len(aps))
		for i, nd := range aps {
			names[i] = nd.String()
		}
		fmt.Fprintf(out, "cut nodes:   %s\n", strings.Join(names, ", "))
	}
	return nil
}

func runArchLines(cmd *cobra.Command, args []string) error {
	if len(archLineLengths) == 0 {
		return fmt.Errorf("at least one line length is required (use -l)")
	}
	arch, err := readArchitecture(args[0])
	if err != nil {
		return err
	}
	lines, err := arch.Lines(archLineLengths)
	if err != nil {
		return err
	}
	for _, line := range lines {
		names := make([]string, len(line))
		for i, nd := range line {
			names[i] = nd.String()
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " - "))
	}
	return nil
}

func runArchPrune(cmd *cobra.Command, args []string) error {
	arch, err := readArchitecture(args[0])
	if err != nil {
		return err
	}
	removed, err := arch.RemoveWorstNodes(archPruneCount)
	if err != nil {
		return err
	}
	for _, nd := range removed {
		fmt.Fprintf(cmd.ErrOrStderr(), "removed %s\n", nd)
	}
	data, err := json.MarshalIndent(arch, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
