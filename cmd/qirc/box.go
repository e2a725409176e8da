package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"qirc/internal/boxes"
	"qirc/internal/circuit"
)

var boxLower bool

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Inspect and transform Pauli-exponential boxes",
}

var boxInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Describe a box JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoxInfo,
}

var boxRoundtripCmd = &cobra.Command{
	Use:   "roundtrip <file>",
	Short: "Decode a box JSON file and re-encode it",
	Long: `Decode a box JSON file and print its canonical re-encoding. The box
identity survives the round trip, so the output decodes to a box equal
to the input.`,
	Args: cobra.ExactArgs(1),
	RunE: runBoxRoundtrip,
}

var boxDaggerCmd = &cobra.Command{
	Use:   "dagger <file>",
	Short: "Print the adjoint of a box as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoxDagger,
}

func init() {
	boxInfoCmd.Flags().BoolVar(&boxLower, "lower", false,
		"Also lower the box and report its gate counts")
	boxCmd.AddCommand(boxInfoCmd)
	boxCmd.AddCommand(boxRoundtripCmd)
	boxCmd.AddCommand(boxDaggerCmd)
	rootCmd.AddCommand(boxCmd)
}

func readBox(path string) (boxes.Box, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return boxes.FromJSON(data)
}

func runBoxInfo(cmd *cobra.Command, args []string) error {
	box, err := readBox(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "type:     %s\n", box.TypeTag())
	fmt.Fprintf(out, "id:       %s\n", box.ID())
	fmt.Fprintf(out, "qubits:   %d\n", box.NQubits())
	fmt.Fprintf(out, "clifford: %v\n", box.IsClifford())
	if syms := box.FreeSymbols(); len(syms) > 0 {
		fmt.Fprintf(out, "symbols:  %s\n", strings.Join(syms, ", "))
	}
	if boxLower {
		circ, err := box.ToCircuit()
		if err != nil {
			return err
		}
		if err := circ.DecomposeBoxesRecursively(); err != nil {
			return err
		}
		counts := circ.OpCounts()
		ops := make([]string, 0, len(counts))
		for op := range counts {
			ops = append(ops, string(op))
		}
		sort.Strings(ops)
		for _, op := range ops {
			fmt.Fprintf(out, "  %-10s %d\n", op, counts[circuit.OpType(op)])
		}
	}
	return nil
}

func runBoxRoundtrip(cmd *cobra.Command, args []string) error {
	box, err := readBox(args[0])
	if err != nil {
		return err
	}
	data, err := boxes.ToJSON(box)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runBoxDagger(cmd *cobra.Command, args []string) error {
	box, err := readBox(args[0])
	if err != nil {
		return err
	}
	data, err := boxes.ToJSON(box.Dagger())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
