package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"qirc/internal/architecture"
)

var topoCmd = &cobra.Command{
	Use:   "topo <kind> <dims>...",
	Short: "Generate a canonical topology",
	Long: `Generate a canonical architecture and print it as JSON.

Kinds:
  fc <n>                    fully connected over n nodes
  ring <n>                  n-cycle
  grid <rows> <cols> [l]    square grid, optionally layered

Examples:
  qirc topo ring 8
  qirc topo grid 3 4
  qirc topo grid 2 2 2`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTopo,
}

func init() {
	rootCmd.AddCommand(topoCmd)
}

func intArgs(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("dimension %q must be a non-negative integer", a)
		}
		out[i] = n
	}
	return out, nil
}

func runTopo(cmd *cobra.Command, args []string) error {
	dims, err := intArgs(args[1:])
	if err != nil {
		return err
	}

	var arch *architecture.Architecture
	switch args[0] {
	case "fc":
		if len(dims) != 1 {
			return fmt.Errorf("fc takes one dimension")
		}
		arch = architecture.NewFullyConnected(dims[0])
	case "ring":
		if len(dims) != 1 {
			return fmt.Errorf("ring takes one dimension")
		}
		arch = architecture.NewRing(dims[0])
	case "grid":
		switch len(dims) {
		case 2:
			arch = architecture.NewSquareGrid(dims[0], dims[1], 1).Architecture
		case 3:
			arch = architecture.NewSquareGrid(dims[0], dims[1], dims[2]).Architecture
		default:
			return fmt.Errorf("grid takes two or three dimensions")
		}
	default:
		return fmt.Errorf("unknown topology kind %q (want fc, ring or grid)", args[0])
	}

	data, err := json.MarshalIndent(arch, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
